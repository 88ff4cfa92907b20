package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// NumberKind classifies the storage a JSON number was written in.
type NumberKind int

const (
	NotANumber NumberKind = iota
	Int64Number
	Uint64Number
	DoubleNumber
)

// String returns the kind name used in reports.
func (k NumberKind) String() string {
	switch k {
	case Int64Number:
		return "int64"
	case Uint64Number:
		return "uint64"
	case DoubleNumber:
		return "double"
	default:
		return "none"
	}
}

// KindOf reports how a JSON number is held. Integer literals that fit in an
// int64 are Int64Number, larger non-negative integer literals that fit in a
// uint64 are Uint64Number, and everything else is a DoubleNumber. Native Go
// numbers are accepted too so callers can build nodes by hand.
func KindOf(v JSONValue) NumberKind {
	switch n := v.(type) {
	case json.Number:
		if _, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return Int64Number
		}
		if _, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return Uint64Number
		}
		if f, err := strconv.ParseFloat(string(n), 64); err == nil && !math.IsInf(f, 0) {
			return DoubleNumber
		}
		return NotANumber
	case int, int8, int16, int32, int64:
		return Int64Number
	case uint, uint8, uint16, uint32, uint64:
		if u, _ := AsUint64(v); u > math.MaxInt64 {
			return Uint64Number
		}
		return Int64Number
	case float32:
		if math.IsInf(float64(n), 0) || math.IsNaN(float64(n)) {
			return NotANumber
		}
		return DoubleNumber
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return NotANumber
		}
		return DoubleNumber
	default:
		return NotANumber
	}
}

// IsNumber reports whether v holds a finite JSON number.
func IsNumber(v JSONValue) bool {
	return KindOf(v) != NotANumber
}

// IsBool reports whether v holds a JSON boolean.
func IsBool(v JSONValue) bool {
	_, ok := v.(bool)
	return ok
}

// IsString reports whether v holds a JSON string.
func IsString(v JSONValue) bool {
	_, ok := v.(string)
	return ok
}

// IsArray reports whether v holds a JSON array.
func IsArray(v JSONValue) bool {
	_, ok := Array(v)
	return ok
}

// Array returns the elements of a JSON array. Both JSONArray and the plain
// []interface{} produced by encoding/json are accepted.
func Array(v JSONValue) (JSONArray, bool) {
	switch a := v.(type) {
	case JSONArray:
		return a, true
	case []interface{}:
		out := make(JSONArray, len(a))
		for i := range a {
			out[i] = a[i]
		}
		return out, true
	default:
		return nil, false
	}
}

// AsInt64 returns v when it was written as an integer in int64 range.
func AsInt64(v JSONValue) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint, uint8, uint16, uint32, uint64:
		u, _ := AsUint64(v)
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

// AsUint64 returns v when it was written as a non-negative integer in uint64
// range.
func AsUint64(v JSONValue) (uint64, bool) {
	switch n := v.(type) {
	case json.Number:
		u, err := strconv.ParseUint(string(n), 10, 64)
		return u, err == nil
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case int, int8, int16, int32, int64:
		i, _ := AsInt64(v)
		if i < 0 {
			return 0, false
		}
		return uint64(i), true
	default:
		return 0, false
	}
}

// AsDouble returns v when it was written as a non-integer number, or as a
// number too large for any integer storage.
func AsDouble(v JSONValue) (float64, bool) {
	if KindOf(v) != DoubleNumber {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
