package loader

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

// coercer turns raw cell text into typed record fields. It is not safe for
// concurrent use (cases.Caser keeps state).
type coercer struct {
	title   cases.Caser
	coerced int
}

func newCoercer() *coercer {
	return &coercer{title: cases.Title(language.Und)}
}

func (c *coercer) record(h header, row []string) model.Record {
	ratioText := h.cell(row, model.ColRatio)
	return model.Record{
		Name:          h.cell(row, model.ColName),
		Code:          h.cell(row, model.ColCode),
		OperatingBody: h.cell(row, model.ColOperatingBody),
		Province:      c.titleWords(h.cell(row, model.ColProvince)),
		Accreditation: h.cell(row, model.ColAccreditation),
		Form:          h.cell(row, model.ColForm),
		Programs:      c.count(h.cell(row, model.ColPrograms)),
		Students:      c.count(h.cell(row, model.ColStudents)),
		Faculty:       c.count(h.cell(row, model.ColFaculty)),
		Ratio:         ratioText,
		RatioValue:    parseRatio(ratioText),
		Address:       h.cell(row, model.ColAddress),
		Coordinates:   h.cell(row, model.ColCoordinates),
	}
}

// titleWords title-cases every run of letters on its own, so a letter after
// any non-letter starts a word: "d.i. yogyakarta" is "D.I. Yogyakarta".
func (c *coercer) titleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(c.title.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(c.title.String(s[start:]))
	}
	return b.String()
}

var thousands = regexp.MustCompile(`^\d{1,3}([.,]\d{3})+$`)

// count parses an integer cell leniently; empty is 0, garbage is 0 and
// counted as coerced.
func (c *coercer) count(s string) int {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if thousands.MatchString(s) {
		n, err := strconv.Atoi(strings.NewReplacer(".", "", ",", "").Replace(s))
		if err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(math.Round(f))
	}
	c.coerced++
	return 0
}

// parseRatio understands "21.5", "21,5" and "1:21".
func parseRatio(s string) *float64 {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil
	}
	if a, b, ok := strings.Cut(s, ":"); ok {
		num, err1 := strconv.ParseFloat(strings.ReplaceAll(a, ",", "."), 64)
		den, err2 := strconv.ParseFloat(strings.ReplaceAll(b, ",", "."), 64)
		if err1 != nil || err2 != nil || num == 0 {
			return nil
		}
		v := den / num
		return &v
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
