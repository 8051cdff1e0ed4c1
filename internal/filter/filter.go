// Package filter narrows the institution set by the three dashboard dropdowns.
package filter

import (
	"net/url"
	"strings"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

// Query parameter names of the three controls.
const (
	ParamProvince      = "provinsi"
	ParamOperatingBody = "badan"
	ParamInstitution   = "pt"
)

// Criteria holds one optional equality constraint per control. A value of
// model.Any (or empty) leaves that field unconstrained.
type Criteria struct {
	Province      string `json:"provinsi"`
	OperatingBody string `json:"badan"`
	Institution   string `json:"pt"`
}

// All is the criteria with every control set to "Semua".
func All() Criteria {
	return Criteria{Province: model.Any, OperatingBody: model.Any, Institution: model.Any}
}

// Normalize maps empty values to the sentinel so equal selections compare equal.
func (c Criteria) Normalize() Criteria {
	return Criteria{
		Province:      norm(c.Province),
		OperatingBody: norm(c.OperatingBody),
		Institution:   norm(c.Institution),
	}
}

func norm(v string) string {
	if v == "" {
		return model.Any
	}
	return v
}

func (c Criteria) IsUnconstrained() bool {
	return c.Normalize() == All()
}

// Key is a stable textual form used for cache keys and logs. Values are
// query-escaped so no selection can spell another one.
func (c Criteria) Key() string {
	n := c.Normalize()
	return url.Values{
		ParamProvince:      {n.Province},
		ParamOperatingBody: {n.OperatingBody},
		ParamInstitution:   {n.Institution},
	}.Encode()
}

// CriteriaFromQuery reads the controls from request query parameters.
// Values are matched exactly; only surrounding whitespace is trimmed.
func CriteriaFromQuery(q url.Values) Criteria {
	return Criteria{
		Province:      strings.TrimSpace(q.Get(ParamProvince)),
		OperatingBody: strings.TrimSpace(q.Get(ParamOperatingBody)),
		Institution:   strings.TrimSpace(q.Get(ParamInstitution)),
	}.Normalize()
}

type constraint struct {
	field model.Field
	value string
}

func (c Criteria) active() []constraint {
	n := c.Normalize()
	var out []constraint
	if n.Province != model.Any {
		out = append(out, constraint{model.FieldProvince, n.Province})
	}
	if n.OperatingBody != model.Any {
		out = append(out, constraint{model.FieldOperatingBody, n.OperatingBody})
	}
	if n.Institution != model.Any {
		out = append(out, constraint{model.FieldName, n.Institution})
	}
	return out
}

// Apply returns the records matching every active constraint, in source
// order, numbered from 1. The input slice is never modified.
func Apply(records []model.Record, c Criteria) []model.Row {
	cs := c.active()
	out := make([]model.Row, 0, len(records))
	for _, r := range records {
		if matches(r, cs) {
			out = append(out, model.Row{No: len(out) + 1, Record: r})
		}
	}
	return out
}

func matches(r model.Record, cs []constraint) bool {
	for _, c := range cs {
		if r.Value(c.field) != c.value {
			return false
		}
	}
	return true
}

// Records strips display ordinals off a filtered view.
func Records(rows []model.Row) []model.Record {
	out := make([]model.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Record
	}
	return out
}
