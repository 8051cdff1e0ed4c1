package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mohammed-shakir/pt-dashboard/internal/cache"
	"github.com/mohammed-shakir/pt-dashboard/internal/cache/redisstore"
	"github.com/mohammed-shakir/pt-dashboard/internal/cache/viewcache"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/config"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/health"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/observability"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/router"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/server"
	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
	"github.com/mohammed-shakir/pt-dashboard/internal/loader"
	"github.com/mohammed-shakir/pt-dashboard/internal/logger"
	"github.com/mohammed-shakir/pt-dashboard/internal/metrics"
	"github.com/mohammed-shakir/pt-dashboard/internal/selections"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env", ".env", "optional dotenv file")
	dataFile := flag.String("file", "", "spreadsheet to load (overrides DATA_FILE)")
	addr := flag.String("addr", "", "listen address (overrides ADDR)")
	flag.Parse()

	// a missing .env is normal; anything else is worth stopping for
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = os.Stderr.WriteString("load " + *envFile + ": " + err.Error() + "\n")
		return 1
	}

	cfg := config.FromEnv()
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		SampleN:   cfg.LogSampleN,
		Service:   "pt-dashboard",
		Component: "dashboard",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	appLog.Info("starting dashboard",
		"addr", cfg.Addr,
		"version", Version,
		"data_file", cfg.DataFile,
		"h3_res", cfg.H3Res)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, stats, err := loader.Load(ctx, cfg.DataFile, loader.Options{
		Sheet:  cfg.DataSheet,
		Logger: appLog.With("component", "loader"),
	})
	if err != nil {
		appLog.Error("dataset load failed", "file", cfg.DataFile, "err", err)
		return 1
	}
	appLog.Info("dataset loaded",
		"rows", stats.Rows,
		"skipped_empty", stats.SkippedEmpty,
		"coerced_cells", stats.CoercedCells,
		"elapsed", stats.Elapsed,
		"fingerprint", ds.Fingerprint())

	mp := metrics.Init(metrics.Config{Build: metrics.BuildInfo{Version: Version}})
	mp.SetDataset(ds.Source(), ds.Fingerprint())
	observability.SetDataset(stats.Rows, stats.CoercedCells)

	builder := dashboard.NewBuilder(ds, dashboard.Options{
		H3Res:         cfg.H3Res,
		ClusterRes:    cfg.ClusterRes,
		ProvinceAllow: cfg.ProvinceChartAllow,
	})

	checks := map[string]health.Check{}
	var shared cache.Store
	if cfg.RedisEnabled {
		rc, err := redisstore.New(ctx, cfg.RedisAddr)
		if err != nil {
			// the in-process tier still works; carry on without the shared one
			appLog.Warn("redis unavailable, shared view cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			defer func() { _ = rc.Close() }()
			shared = rc
			checks["redis"] = rc.Ping
		}
	}

	views, err := viewcache.New(builder, viewcache.Options{
		Size:      cfg.ViewCacheSize,
		Shared:    shared,
		TTL:       cfg.CacheTTL,
		OpTimeout: cfg.CacheOpTimeout,
		Logger:    appLog.With("component", "viewcache"),
	})
	if err != nil {
		appLog.Error("view cache setup failed", "err", err)
		return 1
	}

	var sink selections.Sink = selections.Nop{}
	if cfg.Events.Enabled {
		pub, err := selections.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, cfg.Events.Queue,
			appLog.With("component", "selections"))
		if err != nil {
			appLog.Warn("selection events disabled", "brokers", cfg.Events.Brokers, "err", err)
		} else {
			defer func() {
				if err := pub.Close(); err != nil {
					appLog.Warn("selection publisher close", "err", err)
				}
			}()
			sink = pub
		}
	}

	api := router.New(appLog.With("component", "api"), builder, views, sink)
	if err := server.Run(ctx, cfg, appLog, server.Deps{
		API:     api,
		Ready:   health.Readiness(ds, checks),
		Metrics: mp.Handler(),
	}); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}
