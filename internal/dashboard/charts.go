package dashboard

import (
	"github.com/mohammed-shakir/pt-dashboard/internal/aggregate"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

const yAxisInstitutions = "Jumlah Perguruan Tinggi"

// Chart IDs.
const (
	ChartProvince      = "provinsi"
	ChartForm          = "bentuk"
	ChartAccreditation = "akreditasi"
)

type Bar struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type BarChart struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

func fullSetCharts(all []model.Record, allow []string) []BarChart {
	return []BarChart{
		{
			ID:     ChartProvince,
			Title:  provinceChartTitle(allow),
			XLabel: "Provinsi",
			YLabel: yAxisInstitutions,
			Bars:   bars(aggregate.CountByAllowed(all, model.FieldProvince, allow)),
		},
		{
			ID:     ChartForm,
			Title:  "Jumlah Perguruan Tinggi Berdasarkan Bentuk Perguruan Tinggi",
			XLabel: "Bentuk Perguruan Tinggi",
			YLabel: yAxisInstitutions,
			Bars:   bars(aggregate.CountBy(all, model.FieldForm)),
		},
		{
			ID:     ChartAccreditation,
			Title:  "Jumlah Perguruan Tinggi Berdasarkan Akreditasi",
			XLabel: "Akreditasi",
			YLabel: yAxisInstitutions,
			Bars:   bars(aggregate.CountBy(all, model.FieldAccreditation)),
		},
	}
}

func bars(ft aggregate.FrequencyTable) []Bar {
	out := make([]Bar, len(ft))
	for i, e := range ft {
		out[i] = Bar{Label: e.Value, Value: e.Count}
	}
	return out
}
