// Package aggregate builds ranked frequency tables over institution records.
package aggregate

import (
	"sort"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

// Entry is one (category, count) pair; Rank starts at 1.
type Entry struct {
	Rank  int    `json:"rank"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FrequencyTable is sorted by Count descending, ties in first-seen order.
type FrequencyTable []Entry

func (t FrequencyTable) Total() int {
	n := 0
	for _, e := range t {
		n += e.Count
	}
	return n
}

// Get returns the count for value, or 0.
func (t FrequencyTable) Get(value string) int {
	for _, e := range t {
		if e.Value == value {
			return e.Count
		}
	}
	return 0
}

// CountBy groups records by the literal value of field.
func CountBy(records []model.Record, field model.Field) FrequencyTable {
	return count(records, field, nil)
}

// CountByAllowed is CountBy restricted to the values in allow.
func CountByAllowed(records []model.Record, field model.Field, allow []string) FrequencyTable {
	set := make(map[string]struct{}, len(allow))
	for _, v := range allow {
		set[v] = struct{}{}
	}
	return count(records, field, set)
}

func count(records []model.Record, field model.Field, allow map[string]struct{}) FrequencyTable {
	idx := make(map[string]int)
	out := FrequencyTable{}
	for _, r := range records {
		v := r.Value(field)
		if allow != nil {
			if _, ok := allow[v]; !ok {
				continue
			}
		}
		i, ok := idx[v]
		if !ok {
			i = len(out)
			idx[v] = i
			out = append(out, Entry{Value: v})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
