package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/config"
	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
	"github.com/mohammed-shakir/pt-dashboard/internal/filter"
	"github.com/mohammed-shakir/pt-dashboard/internal/loader"
	"github.com/mohammed-shakir/pt-dashboard/internal/logger"
	"github.com/mohammed-shakir/pt-dashboard/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	file := flag.String("file", cfg.DataFile, "spreadsheet (.xlsx or .csv)")
	sheet := flag.String("sheet", cfg.DataSheet, "worksheet name (default first sheet)")
	prov := flag.String("provinsi", "", "province filter (empty or Semua for all)")
	badan := flag.String("badan", "", "operating body filter")
	pt := flag.String("pt", "", "institution name filter")
	format := flag.String("format", "text", "json | pretty | text | markdown | html")
	res := flag.Int("h3-res", cfg.H3Res, "H3 resolution for marker cells")
	verbose := flag.Bool("v", false, "log load details to stderr")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	zl := logger.Build(logger.Config{Level: level, Console: true, Component: "pt-report"}, os.Stderr)
	log := logger.NewSlog(&zl)

	f, err := report.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, stats, err := loader.Load(ctx, *file, loader.Options{Sheet: *sheet, Logger: log})
	if err != nil {
		log.Error("dataset load failed", "file", *file, "err", err)
		return 1
	}
	log.Debug("dataset loaded", "rows", stats.Rows, "coerced_cells", stats.CoercedCells, "elapsed", stats.Elapsed)

	b := dashboard.NewBuilder(ds, dashboard.Options{H3Res: *res, ProvinceAllow: cfg.ProvinceChartAllow})
	v := b.Build(filter.Criteria{Province: *prov, OperatingBody: *badan, Institution: *pt})

	w := bufio.NewWriter(os.Stdout)
	if err := report.Write(w, v, f); err != nil {
		log.Error("write report", "err", err)
		return 1
	}
	if err := w.Flush(); err != nil {
		log.Error("write report", "err", err)
		return 1
	}
	return 0
}
