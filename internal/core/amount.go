package core

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateAmount coerces any raw value into a safe non-negative
// decimal. Records arrive from several backends and client libraries,
// so amounts show up as floats, strings, JSON numbers, or garbage.
// The coercion is total: nil, unparseable strings, NaN, infinities and
// negative values all collapse to zero rather than fail. Applying it
// twice yields the same result, so callers may coerce defensively at
// every boundary.
func ValidateAmount(v any) decimal.Decimal {
	var d decimal.Decimal

	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		d = x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(x)
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(f)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int32:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case json.Number:
		parsed, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return decimal.Zero
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RoundWhole rounds to the nearest whole unit, half away from zero.
// Headline summary figures are reported in whole currency units.
func RoundWhole(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// RoundRate rounds a percentage to one decimal place.
func RoundRate(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}
