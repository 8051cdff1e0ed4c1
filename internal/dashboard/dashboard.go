// Package dashboard assembles the render-ready view for one filter selection.
package dashboard

import (
	"strings"

	"github.com/mohammed-shakir/pt-dashboard/internal/aggregate"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
	"github.com/mohammed-shakir/pt-dashboard/internal/dataset"
	"github.com/mohammed-shakir/pt-dashboard/internal/filter"
	h3mapper "github.com/mohammed-shakir/pt-dashboard/internal/mapper/h3"
)

// DefaultProvinceAllow are the provinces of the province bar chart.
var DefaultProvinceAllow = []string{"Jawa Barat", "Banten"}

// CellMapper places markers into H3 cells.
type CellMapper interface {
	CellFor(lat, lon float64, res int) (string, error)
	Cluster(points []h3mapper.Point, res int) ([]h3mapper.Cluster, []int, error)
}

type Options struct {
	// H3Res is the marker cell resolution.
	H3Res int
	// ClusterRes groups markers by their parent cell at this resolution.
	// Zero, or anything finer than H3Res, clusters at H3Res.
	ClusterRes    int
	ProvinceAllow []string
	Mapper        CellMapper
}

// Builder derives views from one dataset. Charts over the full dataset do
// not depend on the selection and are computed once in NewBuilder.
type Builder struct {
	ds     *dataset.Dataset
	opts   Options
	charts []BarChart
}

func NewBuilder(ds *dataset.Dataset, opts Options) *Builder {
	if len(opts.ProvinceAllow) == 0 {
		opts.ProvinceAllow = DefaultProvinceAllow
	}
	if opts.Mapper == nil {
		opts.Mapper = h3mapper.New()
	}
	if opts.H3Res < 0 || opts.H3Res > 15 {
		opts.H3Res = 6
	}
	if opts.ClusterRes <= 0 || opts.ClusterRes > opts.H3Res {
		opts.ClusterRes = opts.H3Res
	}
	b := &Builder{ds: ds, opts: opts}
	b.charts = fullSetCharts(ds.Records(), opts.ProvinceAllow)
	return b
}

func (b *Builder) Dataset() *dataset.Dataset { return b.ds }

// View is everything the presentation layer renders for one selection.
type View struct {
	Criteria        filter.Criteria          `json:"criteria"`
	Fingerprint     string                   `json:"dataset_fingerprint"`
	Total           int                      `json:"total"`
	Matched         int                      `json:"matched"`
	Institutions    []InstitutionRow         `json:"institutions"`
	OperatingBodies aggregate.FrequencyTable `json:"operating_bodies"`
	Map             MapView                  `json:"map"`
	Addresses       []AddressRow             `json:"addresses"`
	Forms           []FormRow                `json:"forms"`
	Ratios          []RatioRow               `json:"ratios"`
	RatioSummary    aggregate.RatioSummary   `json:"ratio_summary"`
	Programs        []ProgramRow             `json:"programs"`
	Charts          []BarChart               `json:"charts"`
}

// Build filters the dataset and derives every table, the map and the charts.
// The operating-body table follows the selection; the charts always cover the
// full dataset.
func (b *Builder) Build(c filter.Criteria) *View {
	c = c.Normalize()
	rows := filter.Apply(b.ds.Records(), c)
	recs := filter.Records(rows)

	return &View{
		Criteria:        c,
		Fingerprint:     b.ds.Fingerprint(),
		Total:           b.ds.Len(),
		Matched:         len(rows),
		Institutions:    institutionTable(rows),
		OperatingBodies: aggregate.CountBy(recs, model.FieldOperatingBody),
		Map:             b.mapView(rows),
		Addresses:       addressTable(rows),
		Forms:           formTable(rows),
		Ratios:          ratioTable(rows),
		RatioSummary:    aggregate.SummarizeRatios(recs),
		Programs:        programTable(rows),
		Charts:          b.Charts(),
	}
}

// Rows returns only the filtered, numbered records.
func (b *Builder) Rows(c filter.Criteria) []model.Row {
	return filter.Apply(b.ds.Records(), c)
}

// Frequency counts field over the filtered records.
func (b *Builder) Frequency(c filter.Criteria, field model.Field) aggregate.FrequencyTable {
	return aggregate.CountBy(filter.Records(b.Rows(c)), field)
}

// Charts returns a copy of the full-dataset bar charts.
func (b *Builder) Charts() []BarChart {
	out := make([]BarChart, len(b.charts))
	for i, c := range b.charts {
		c.Bars = append([]Bar(nil), c.Bars...)
		out[i] = c
	}
	return out
}

// Chart looks a chart up by ID.
func (b *Builder) Chart(id string) (BarChart, bool) {
	for _, c := range b.Charts() {
		if c.ID == id {
			return c, true
		}
	}
	return BarChart{}, false
}

// Options returns the dropdown values of the three controls.
func (b *Builder) Options() map[string][]string {
	return map[string][]string{
		filter.ParamProvince:      b.ds.Options(model.FieldProvince),
		filter.ParamOperatingBody: b.ds.Options(model.FieldOperatingBody),
		filter.ParamInstitution:   b.ds.Options(model.FieldName),
	}
}

func provinceChartTitle(allow []string) string {
	return "Jumlah Perguruan Tinggi di Provinsi " + strings.Join(allow, " dan ")
}
