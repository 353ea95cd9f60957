// Package coerce converts loosely-typed JSON values into the numeric types
// the aggregation pipeline computes with. Input rows arrive as generic maps,
// so a price may be a number, a numeric string, or garbage; the helpers here
// decide which values count and reject the rest without panicking.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal interprets v as a monetary amount.
//
// Accepted forms: JSON numbers (including exponent notation), numeric
// strings after trimming surrounding whitespace, booleans (true is 1,
// false is 0) and native Go numerics. Null, arrays, objects and
// non-numeric strings are rejected.
func Decimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case bool:
		if val {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	default:
		return decimal.Zero, false
	}
}

// Int interprets v as a whole-number count.
//
// Fractional numbers truncate toward zero, so a quantity of 3.9 counts as
// 3. Strings must spell an integer after trimming; "3.5" as a string is
// rejected even though 3.5 as a number truncates. Booleans map to 1 and 0.
func Int(v any) (int64, bool) {
	switch val := v.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case float64:
		return truncate(val)
	case int:
		return int64(val), true
	case int64:
		return val, true
	default:
		return 0, false
	}
}

// truncate drops the fractional part of f, rejecting values that do not
// fit in an int64.
func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
