// Package siformat renders measurement values with SI prefixes for
// human-readable summaries and chart labels.
package siformat

import (
	"fmt"
	"math"
)

// prefixes spans yocto (1e-24) through yotta (1e24); index 8 is the empty
// prefix for values already in [1, 1000).
var prefixes = [...]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// Scale returns the multiplier and SI prefix that bring v into [1, 1000),
// clamped to the supported prefix range. Zero and non-finite values scale
// by 1 with no prefix.
func Scale(v float64) (float64, string) {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, ""
	}
	exp := int(math.Floor(math.Log10(math.Abs(v)) / 3))
	if exp < -8 {
		exp = -8
	}
	if exp > 8 {
		exp = 8
	}
	return math.Pow(10, float64(-3*exp)), prefixes[exp+8]
}

// Format renders v with the given number of decimals, an SI prefix and the
// unit, e.g. Format(0.0025, "V", 3) == "2.500 mV". The gap before the
// prefix is omitted when both prefix and unit are empty. NaN renders as an
// empty string.
func Format(v float64, unit string, decimals int) string {
	if math.IsNaN(v) {
		return ""
	}
	scale, prefix := Scale(v)
	gap := ""
	if unit != "" || prefix != "" {
		gap = " "
	}
	return fmt.Sprintf("%.*f%s%s%s", decimals, v*scale, gap, prefix, unit)
}

// FormatFixed renders v without SI scaling, keeping the unit gap rule.
func FormatFixed(v float64, unit string, decimals int) string {
	if math.IsNaN(v) {
		return ""
	}
	gap := ""
	if unit != "" {
		gap = " "
	}
	return fmt.Sprintf("%.*f%s%s", decimals, v, gap, unit)
}
