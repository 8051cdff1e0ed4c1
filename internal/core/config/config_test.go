package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "DATA_FILE", "H3_RES", "PROVINCE_CHART_ALLOW", "REDIS_ENABLED", "EVENTS_ENABLED", "KAFKA_BROKERS", "CACHE_TTL"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Addr != ":8090" || c.DataFile != "Data PT.xlsx" || c.H3Res != 6 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if !reflect.DeepEqual(c.ProvinceChartAllow, []string{"Jawa Barat", "Banten"}) {
		t.Fatalf("allow=%v", c.ProvinceChartAllow)
	}
	if c.RedisEnabled || c.Events.Enabled {
		t.Fatalf("optional backends must be off by default")
	}
	if c.CacheTTL != 5*time.Minute || c.Events.Topic != "dashboard-selections" {
		t.Fatalf("ttl=%v topic=%q", c.CacheTTL, c.Events.Topic)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("H3_RES", "9")
	t.Setenv("PROVINCE_CHART_ALLOW", " Banten , ,Jawa Timur")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("EVENTS_ENABLED", "yes")
	t.Setenv("CACHE_TTL", "90s")

	c := FromEnv()
	if c.H3Res != 9 {
		t.Fatalf("H3Res=%d want 9", c.H3Res)
	}
	if !reflect.DeepEqual(c.ProvinceChartAllow, []string{"Banten", "Jawa Timur"}) {
		t.Fatalf("allow=%v", c.ProvinceChartAllow)
	}
	if !c.Events.Enabled || len(c.Events.Brokers) != 2 {
		t.Fatalf("events=%+v", c.Events)
	}
	if c.CacheTTL != 90*time.Second {
		t.Fatalf("ttl=%v", c.CacheTTL)
	}
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("H3_RES", "42")
	t.Setenv("VIEW_CACHE_SIZE", "lots")
	t.Setenv("REDIS_ENABLED", "maybe")

	c := FromEnv()
	if c.H3Res != 6 || c.ViewCacheSize != 256 || c.RedisEnabled {
		t.Fatalf("bad values should keep defaults: %+v", c)
	}
}
