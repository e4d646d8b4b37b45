package sheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var thousandsGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

var missingMarkers = map[string]struct{}{
	"-":   {},
	"--":  {},
	"n/a": {},
	"na":  {},
	"nan": {},
	"nil": {},
}

// ParseNumber coerces a spreadsheet cell to a float. It accepts well-formed
// thousands separators and a trailing percent sign ("65%" is 0.65). Blank
// cells, the usual placeholders, misgrouped commas ("1,5") and non-finite
// values are reported as missing.
func ParseNumber(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	if _, ok := missingMarkers[strings.ToLower(value)]; ok {
		return 0, false
	}

	percent := false
	if strings.HasSuffix(value, "%") {
		percent = true
		value = strings.TrimSpace(strings.TrimSuffix(value, "%"))
	}
	if strings.Contains(value, ",") {
		if !thousandsGrouped.MatchString(value) {
			return 0, false
		}
		value = strings.ReplaceAll(value, ",", "")
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	if percent {
		out /= 100
	}
	return out, true
}

// ParseInteger is ParseNumber restricted to integral values.
func ParseInteger(raw string) (int, bool) {
	v, ok := ParseNumber(raw)
	if !ok || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
