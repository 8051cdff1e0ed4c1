package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type EventsCfg struct {
	Enabled bool
	Brokers []string
	Topic   string
	Queue   int
}

type Config struct {
	Addr               string
	LogLevel           string
	LogConsole         bool
	LogSampleN         int
	DataFile           string
	DataSheet          string
	H3Res              int
	ClusterRes         int
	ProvinceChartAllow []string
	ViewCacheSize      int
	RedisEnabled       bool
	RedisAddr          string
	CacheTTL           time.Duration
	CacheOpTimeout     time.Duration
	Events             EventsCfg
}

func FromEnv() Config {
	res := getint("H3_RES", 6)
	if res < 0 || res > 15 {
		res = 6
	}

	return Config{
		Addr:               getenv("ADDR", ":8090"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogConsole:         getbool("LOG_CONSOLE", false),
		LogSampleN:         getint("LOG_SAMPLE_N", 0),
		DataFile:           getenv("DATA_FILE", "Data PT.xlsx"),
		DataSheet:          getenv("DATA_SHEET", ""),
		H3Res:              res,
		ClusterRes:         getint("CLUSTER_RES", 0),
		ProvinceChartAllow: getlist("PROVINCE_CHART_ALLOW", []string{"Jawa Barat", "Banten"}),
		ViewCacheSize:      getint("VIEW_CACHE_SIZE", 256),
		RedisEnabled:       getbool("REDIS_ENABLED", false),
		RedisAddr:          getenv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:           getduration("CACHE_TTL", 5*time.Minute),
		CacheOpTimeout:     getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),
		Events: EventsCfg{
			Enabled: getbool("EVENTS_ENABLED", false),
			Brokers: getlist("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getenv("KAFKA_TOPIC", "dashboard-selections"),
			Queue:   getint("EVENTS_QUEUE", 1024),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// comma separated, blanks dropped; an all-blank value keeps the default
func getlist(k string, def []string) []string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for p := range strings.SplitSeq(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
