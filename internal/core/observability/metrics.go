package observability

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information for the binary.",
		},
		[]string{"version"},
	)

	datasetRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_rows",
		Help: "Institution records in the loaded dataset.",
	})

	datasetCoercedCells = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_coerced_cells",
		Help: "Cells that had to be coerced to a default at load time.",
	})

	dashboardMatchedRows = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_matched_rows",
		Help:    "Records surviving the filter per built view.",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	})

	coordinateFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coordinate_fallbacks_total",
		Help: "Markers placed at the (0,0) fallback because the coordinate text did not parse.",
	})

	viewCacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_cache_results_total",
			Help: "View cache lookups by outcome (lru_hit, shared_hit, miss).",
		},
		[]string{"outcome"},
	)

	cacheOpTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_op_total",
			Help: "Shared cache operations by result.",
		},
		[]string{"op", "result"},
	)

	redisOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Latency of Redis operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		},
		[]string{"op"},
	)

	selectionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_events_total",
			Help: "Selection events by result (queued, dropped, error).",
		},
		[]string{"result"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		httpRequestsTotal, httpRequestDurationSeconds, buildInfo,
		datasetRows, datasetCoercedCells, dashboardMatchedRows, coordinateFallbacks,
		viewCacheResults, cacheOpTotal, redisOpDuration, selectionEvents,
	}
}

func init() {
	prometheus.MustRegister(collectors()...)
}

// Init additionally exposes the service metrics on reg (e.g. a dedicated
// metrics listener). Registering twice on the same registry is a no-op.
func Init(reg prometheus.Registerer, enabled bool) {
	if !enabled || reg == nil {
		return
	}
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}

func SetDataset(rows, coercedCells int) {
	datasetRows.Set(float64(rows))
	datasetCoercedCells.Set(float64(coercedCells))
}

func ObserveView(matched, fallbacks int) {
	dashboardMatchedRows.Observe(float64(matched))
	if fallbacks > 0 {
		coordinateFallbacks.Add(float64(fallbacks))
	}
}

func IncViewCache(outcome string) {
	viewCacheResults.WithLabelValues(outcome).Inc()
}

func ObserveCacheOp(op string, err error, durationSeconds float64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheOpTotal.WithLabelValues(op, result).Inc()
	redisOpDuration.WithLabelValues(op).Observe(durationSeconds)
}

func IncSelectionEvent(result string) {
	selectionEvents.WithLabelValues(result).Inc()
}
