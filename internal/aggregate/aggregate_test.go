package aggregate

import (
	"reflect"
	"sort"
	"testing"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

func recs(provinces ...string) []model.Record {
	out := make([]model.Record, 0, len(provinces))
	for i, p := range provinces {
		out = append(out, model.Record{Index: i, Province: p})
	}
	return out
}

func TestCountBy_SortedDescStableTies(t *testing.T) {
	rs := recs("Bali", "Banten", "Jawa Barat", "Banten", "Jawa Barat", "Aceh")
	got := CountBy(rs, model.FieldProvince)
	want := FrequencyTable{
		{Rank: 1, Value: "Banten", Count: 2},
		{Rank: 2, Value: "Jawa Barat", Count: 2},
		{Rank: 3, Value: "Bali", Count: 1},
		{Rank: 4, Value: "Aceh", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestCountBy_SumEqualsLenAndNonIncreasing(t *testing.T) {
	inputs := [][]model.Record{
		nil,
		recs("A"),
		recs("A", "B", "A", "C", "C", "C", "B"),
		recs("", "", "x"),
	}
	for _, rs := range inputs {
		ft := CountBy(rs, model.FieldProvince)
		if ft.Total() != len(rs) {
			t.Fatalf("total=%d want %d", ft.Total(), len(rs))
		}
		if !sort.SliceIsSorted(ft, func(i, j int) bool { return ft[i].Count > ft[j].Count }) {
			t.Fatalf("not sorted non-increasing: %+v", ft)
		}
	}
}

func TestCountByAllowed_RestrictsToAllowList(t *testing.T) {
	rs := recs("Jawa Barat", "Banten", "Bali")
	ft := CountByAllowed(rs, model.FieldProvince, []string{"Jawa Barat", "Banten"})
	if ft.Total() != 2 {
		t.Fatalf("total=%d want 2", ft.Total())
	}
	if ft.Get("Bali") != 0 || ft.Get("Jawa Barat") != 1 || ft.Get("Banten") != 1 {
		t.Fatalf("unexpected table %+v", ft)
	}
	if len(ft) != 2 {
		t.Fatalf("len=%d want 2", len(ft))
	}
}

func TestCountBy_EmptyIsNonNil(t *testing.T) {
	ft := CountBy(nil, model.FieldForm)
	if ft == nil || len(ft) != 0 {
		t.Fatalf("want empty non-nil table, got %#v", ft)
	}
}

func TestSummarizeRatios(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	rs := []model.Record{
		{RatioValue: f(10)},
		{RatioValue: f(20)},
		{RatioValue: nil},
		{RatioValue: f(33)},
	}
	got := SummarizeRatios(rs)
	want := RatioSummary{Count: 3, Mean: 21, Median: 20, Min: 10, Max: 33}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if (SummarizeRatios(nil) != RatioSummary{}) {
		t.Fatalf("empty input should give zero summary")
	}
}
