// Package model defines core domain types shared across the service.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Any is the dropdown sentinel meaning "no constraint".
const Any = "Semua"

// Record is one institution row of the source spreadsheet.
type Record struct {
	Index         int      `json:"-"`
	Name          string   `json:"nama_perguruan_tinggi"`
	Code          string   `json:"kode_pts"`
	OperatingBody string   `json:"badan_penyelenggara"`
	Province      string   `json:"provinsi"`
	Accreditation string   `json:"akreditasi_pt"`
	Form          string   `json:"bentuk_perguruan_tinggi"`
	Programs      int      `json:"jumlah_prodi"`
	Students      int      `json:"jumlah_mahasiswa"`
	Faculty       int      `json:"jumlah_dosen"`
	Ratio         string   `json:"rasio_dosen"`
	RatioValue    *float64 `json:"-"`
	Address       string   `json:"alamat"`
	Coordinates   string   `json:"koordinat"`
}

// Row is a record inside a derived view, numbered from 1 for display.
type Row struct {
	No int `json:"no"`
	Record
}

type Field string

const (
	FieldName          Field = "pt"
	FieldCode          Field = "kode"
	FieldOperatingBody Field = "badan"
	FieldProvince      Field = "provinsi"
	FieldAccreditation Field = "akreditasi"
	FieldForm          Field = "bentuk"
)

var fields = []Field{
	FieldName, FieldCode, FieldOperatingBody, FieldProvince, FieldAccreditation, FieldForm,
}

// ParseField accepts the short API names ("provinsi", "badan", ...).
func ParseField(s string) (Field, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Value returns the literal text of a categorical field.
func (r Record) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldCode:
		return r.Code
	case FieldOperatingBody:
		return r.OperatingBody
	case FieldProvince:
		return r.Province
	case FieldAccreditation:
		return r.Accreditation
	case FieldForm:
		return r.Form
	default:
		return ""
	}
}

// Label is the spreadsheet column header of a field.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return ColName
	case FieldCode:
		return ColCode
	case FieldOperatingBody:
		return ColOperatingBody
	case FieldProvince:
		return ColProvince
	case FieldAccreditation:
		return ColAccreditation
	case FieldForm:
		return ColForm
	default:
		return string(f)
	}
}

// Column headers expected in the input spreadsheet.
const (
	ColName          = "Nama Perguruan Tinggi"
	ColCode          = "Kode PTS"
	ColOperatingBody = "Badan Penyelenggara"
	ColProvince      = "Provinsi"
	ColAccreditation = "Akreditasi PT"
	ColForm          = "Bentuk Perguruan Tinggi"
	ColPrograms      = "Jumlah Prodi"
	ColStudents      = "Jumlah Mahasiswa"
	ColFaculty       = "Jumlah Dosen"
	ColRatio         = "Rasio Dosen"
	ColAddress       = "Alamat"
	ColCoordinates   = "Koordinat"
)

// RequiredColumns lists every header the loader must find.
var RequiredColumns = []string{
	ColName, ColCode, ColOperatingBody, ColProvince, ColAccreditation, ColForm,
	ColPrograms, ColStudents, ColFaculty, ColRatio, ColAddress, ColCoordinates,
}

func (r Record) String() string {
	return r.Name + " (" + r.Code + ")"
}

// FormatRatio renders the ratio for popups, keeping the source text when present.
func (r Record) FormatRatio() string {
	if r.Ratio != "" {
		return r.Ratio
	}
	if r.RatioValue != nil {
		return strconv.FormatFloat(*r.RatioValue, 'f', -1, 64)
	}
	return ""
}
