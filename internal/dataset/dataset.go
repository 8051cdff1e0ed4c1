// Package dataset holds the immutable institution set loaded at startup.
package dataset

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

// Dataset is built once by New and never modified afterwards; every accessor
// hands out copies.
type Dataset struct {
	records     []model.Record
	fingerprint uint64
	options     map[model.Field][]string
	source      string
}

// New copies records, assigns source indexes and precomputes dropdown options.
func New(source string, records []model.Record) *Dataset {
	cp := make([]model.Record, len(records))
	for i, r := range records {
		r.Index = i
		if r.RatioValue != nil {
			v := *r.RatioValue
			r.RatioValue = &v
		}
		cp[i] = r
	}
	d := &Dataset{
		records: cp,
		source:  source,
		options: make(map[model.Field][]string, 3),
	}
	d.fingerprint = fingerprint(cp)
	for _, f := range []model.Field{model.FieldProvince, model.FieldOperatingBody, model.FieldName} {
		d.options[f] = distinctSorted(cp, f)
	}
	return d
}

// Records returns a copy of the full ordered record set.
func (d *Dataset) Records() []model.Record {
	out := make([]model.Record, len(d.records))
	copy(out, d.records)
	return out
}

func (d *Dataset) Len() int { return len(d.records) }

func (d *Dataset) Source() string { return d.source }

// Fingerprint changes whenever any record value changes.
func (d *Dataset) Fingerprint() string {
	return fmt.Sprintf("%016x", d.fingerprint)
}

// Options returns "Semua" followed by the sorted distinct values of field.
func (d *Dataset) Options(field model.Field) []string {
	vals, ok := d.options[field]
	if !ok {
		vals = distinctSorted(d.records, field)
	}
	out := make([]string, 0, len(vals)+1)
	out = append(out, model.Any)
	return append(out, vals...)
}

func distinctSorted(records []model.Record, field model.Field) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v := r.Value(field)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func fingerprint(records []model.Record) uint64 {
	h := xxhash.New()
	for _, r := range records {
		for _, s := range []string{
			r.Name, r.Code, r.OperatingBody, r.Province, r.Accreditation, r.Form,
			strconv.Itoa(r.Programs), strconv.Itoa(r.Students), strconv.Itoa(r.Faculty),
			r.Ratio, r.Address, r.Coordinates,
		} {
			_, _ = h.WriteString(s)
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}
