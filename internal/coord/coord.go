// Package coord parses the free-text "(lat, lon)" coordinates of the dataset.
package coord

import (
	"math"
	"strconv"
	"strings"
)

// Result is the outcome of parsing one coordinate string. Fallback is set when
// the text could not be parsed and Lat/Lon hold the (0, 0) substitute, which
// is otherwise indistinguishable from a real (0, 0) point.
type Result struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Fallback bool    `json:"is_fallback"`
}

// FallbackResult is returned for any text that does not parse.
var FallbackResult = Result{Fallback: true}

var parenStripper = strings.NewReplacer("(", "", ")", "")

// Parse never fails; malformed input maps to FallbackResult.
func Parse(text string) Result {
	parts := strings.Split(parenStripper.Replace(text), ",")
	if len(parts) != 2 {
		return FallbackResult
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return FallbackResult
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return FallbackResult
	}
	// ParseFloat accepts "nan" and "inf", which no map can place
	if !finite(lat) || !finite(lon) {
		return FallbackResult
	}
	return Result{Lat: lat, Lon: lon}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParsePtr treats a missing value like unparsable text.
func ParsePtr(text *string) Result {
	if text == nil {
		return FallbackResult
	}
	return Parse(*text)
}

// Pair unwraps to the plain (lat, lon) tuple used for rendering.
func (r Result) Pair() (float64, float64) {
	return r.Lat, r.Lon
}

// InRange reports whether the pair is a valid WGS84 position.
func (r Result) InRange() bool {
	return r.Lat >= -90 && r.Lat <= 90 && r.Lon >= -180 && r.Lon <= 180
}
