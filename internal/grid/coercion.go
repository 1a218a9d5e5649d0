package grid

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Values arrive from JSON (float64, string, bool, nil, []any, map[string]any)
// or from Go callers (any int or float kind). Comparison, display and the
// numeric validation rules all go through the helpers below so both sources
// behave the same:
//
//	nil, ""          → blank
//	123, 1.5, "1,234" → number (commas are ignored, surrounding space trimmed)
//	true/false       → displayed as "true"/"false", never a number
//	anything else    → displayed with fmt

// isBlank reports whether v is nil or the empty string.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// toFloat returns v as a float64 when v holds a Go numeric kind.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}

// convertToNumber leniently converts v to a number.
//
// Numbers pass through; strings have their thousands separators removed and
// are parsed. Blank strings, non-numeric strings, booleans and everything
// else fail.
func convertToNumber(v any) (float64, bool) {
	if f, ok := toFloat(v); ok {
		return f, !math.IsNaN(f)
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// displayString returns the text shown for a raw value.
func displayString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	}
	if f, ok := toFloat(v); ok {
		return formatFloat(f)
	}
	return fmt.Sprint(v)
}

// formatFloat formats without unnecessary decimal places for whole numbers.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e21 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// valuesEqual compares two raw values, treating numbers of different Go
// kinds as equal when they hold the same quantity.
func valuesEqual(a, b any) bool {
	fa, oka := toFloat(a)
	fb, okb := toFloat(b)
	if oka && okb {
		return fa == fb
	}
	if oka != okb {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders raw values for sorting: blanks first, then numbers
// (numeric strings included) in numeric order, then everything else by its
// display text.
func compareValues(a, b any) int {
	blankA, blankB := isBlank(a), isBlank(b)
	switch {
	case blankA && blankB:
		return 0
	case blankA:
		return -1
	case blankB:
		return 1
	}
	na, numA := convertToNumber(a)
	nb, numB := convertToNumber(b)
	switch {
	case numA && numB:
		return cmp.Compare(na, nb)
	case numA:
		return -1
	case numB:
		return 1
	}
	return cmp.Compare(displayString(a), displayString(b))
}

// normalizeKey turns a raw key column value into a comparable RowKey.
// Whole numbers become int64 so that 1, int64(1) and float64(1) all name
// the same row.
func normalizeKey(v any) RowKey {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}
	if f, ok := toFloat(v); ok {
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return int64(f)
		}
		return f
	}
	if reflect.TypeOf(v).Comparable() {
		return v
	}
	return fmt.Sprint(v)
}
