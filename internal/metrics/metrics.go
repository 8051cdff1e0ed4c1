// Package metrics owns the Prometheus registry served on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/observability"
)

type BuildInfo struct {
	Version string
}

type Config struct {
	Build BuildInfo
}

type Provider struct {
	reg         *prometheus.Registry
	datasetInfo *prometheus.GaugeVec
}

// Init builds a registry with the runtime collectors, every service metric
// and a dataset_info gauge identifying the loaded spreadsheet.
func Init(cfg Config) *Provider {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_info",
			Help: "Loaded dataset identity (value is always 1).",
		},
		[]string{"source", "fingerprint"},
	)
	reg.MustRegister(info)

	observability.Init(reg, true)
	observability.ExposeBuildInfo(cfg.Build.Version)

	return &Provider{reg: reg, datasetInfo: info}
}

// SetDataset replaces the dataset_info series.
func (p *Provider) SetDataset(source, fingerprint string) {
	p.datasetInfo.Reset()
	p.datasetInfo.WithLabelValues(source, fingerprint).Set(1)
}

func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

func (p *Provider) Register(cs ...prometheus.Collector) {
	for _, c := range cs {
		p.reg.MustRegister(c)
	}
}

func (p *Provider) Registerer() prometheus.Registerer { return p.reg }
