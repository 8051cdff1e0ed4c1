package aggregate

import (
	"github.com/montanaflynn/stats"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

// RatioSummary describes the student/faculty ratios that could be parsed.
type RatioSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SummarizeRatios skips records without a numeric ratio. An empty input
// yields the zero summary.
func SummarizeRatios(records []model.Record) RatioSummary {
	data := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		if r.RatioValue != nil {
			data = append(data, *r.RatioValue)
		}
	}
	if len(data) == 0 {
		return RatioSummary{}
	}
	// errors only arise for empty input, handled above
	mean, _ := data.Mean()
	median, _ := data.Median()
	lo, _ := data.Min()
	hi, _ := data.Max()
	return RatioSummary{
		Count:  len(data),
		Mean:   round2(mean),
		Median: round2(median),
		Min:    lo,
		Max:    hi,
	}
}

func round2(v float64) float64 {
	r, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return r
}
