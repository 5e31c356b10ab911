// Package coerce converts the numeric representations produced by document
// parsers (float64, int64, json.Number, decimal strings) to fixed width types.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
)

// ToInt64 handles JSON decoded numbers (float64, json.Number) and other
// numeric types. Decimal strings are accepted for formats that carry longs
// as text.
func ToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		// 2^63 is exactly representable; MaxInt64 rounds up to it
		if v >= math.MinInt64 && v < math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		return ToInt64(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return ToInt64(f)
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// ToInt32 converts value to int32 when it fits.
func ToInt32(value any) (int32, bool) {
	i, ok := ToInt64(value)
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return int32(i), true
}

// ToInt16 converts value to int16 when it fits.
func ToInt16(value any) (int16, bool) {
	i, ok := ToInt64(value)
	if !ok || i < math.MinInt16 || i > math.MaxInt16 {
		return 0, false
	}
	return int16(i), true
}

// ToInt8 converts value to int8 when it fits.
func ToInt8(value any) (int8, bool) {
	i, ok := ToInt64(value)
	if !ok || i < math.MinInt8 || i > math.MaxInt8 {
		return 0, false
	}
	return int8(i), true
}

// ToFloat64 converts any numeric value to float64.
func ToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	if i, ok := ToInt64(value); ok {
		return float64(i), true
	}
	return 0, false
}

// ToFloat32 converts value to float32. Values outside the float32 range fail.
func ToFloat32(value any) (float32, bool) {
	f, ok := ToFloat64(value)
	if !ok {
		return 0, false
	}
	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}
