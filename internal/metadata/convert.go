package metadata

import (
	"math"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// convertNumber converts between numeric types. Integer targets need the
// value to be integral and in range. float32 targets need it to be in
// float32 range, rounding to the nearest float32 is allowed. Integers always
// convert to floats.
func convertNumber[To, From numeric](from From) (To, bool) {
	var zero From
	one := zero + 1
	switch {
	case one/(one+one) != zero:
		return fromFloat64[To](float64(from))
	case zero-one < zero:
		return fromInt64[To](int64(from))
	default:
		return fromUint64[To](uint64(from))
	}
}

func fromInt64[To numeric](i int64) (To, bool) {
	var zero To
	if isFloat[To]() {
		return To(i), true
	}
	t := To(i)
	if int64(t) != i || (i < 0) != (t < zero) {
		return zero, false
	}
	return t, true
}

func fromUint64[To numeric](u uint64) (To, bool) {
	var zero To
	if isFloat[To]() {
		return To(u), true
	}
	t := To(u)
	if uint64(t) != u || t < zero {
		return zero, false
	}
	return t, true
}

func fromFloat64[To numeric](d float64) (To, bool) {
	var zero To
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return zero, false
	}
	if isFloat[To]() {
		if isFloat32[To]() && math.Abs(d) > float64(math32.MaxFloat32) {
			return zero, false
		}
		return To(d), true
	}
	if d < 0 {
		i, ok := exactInt64(d)
		if !ok {
			return zero, false
		}
		return fromInt64[To](i)
	}
	u, ok := exactUint64(d)
	if !ok {
		return zero, false
	}
	return fromUint64[To](u)
}

func isFloat[T numeric]() bool {
	var zero T
	one := zero + 1
	return one/(one+one) != zero
}

// isFloat32 reports whether T is a float type narrower than float64.
func isFloat32[T numeric]() bool {
	if !isFloat[T]() {
		return false
	}
	probe := float64(1<<24 + 1)
	return float64(T(probe)) != probe
}

// toScalar converts any non-geometric payload to To.
func toScalar[To numeric](p payload) (To, bool) {
	var zero To
	switch v := p.(type) {
	case boolValue:
		if v {
			return zero + 1, true
		}
		return zero, true
	case stringValue:
		return parseScalar[To](string(v))
	case scalarValue[int64]:
		return convertNumber[To](v.v)
	case scalarValue[uint64]:
		return convertNumber[To](v.v)
	case scalarValue[float64]:
		return convertNumber[To](v.v)
	default:
		// Vectors, matrices and arrays do not collapse to a scalar.
		return zero, false
	}
}

func toBool(p payload) (bool, bool) {
	switch v := p.(type) {
	case boolValue:
		return bool(v), true
	case stringValue:
		return parseBool(string(v))
	case scalarValue[int64]:
		return v.v != 0, true
	case scalarValue[uint64]:
		return v.v != 0, true
	case scalarValue[float64]:
		return v.v != 0, true
	default:
		return false, false
	}
}

// toVector converts a vector payload to n components of To. A shorter
// source is padded with zeros and a longer one is truncated.
func toVector[To numeric](p payload, n int) ([4]To, bool) {
	switch v := p.(type) {
	case vecValue[int64]:
		return convertComponents[To](v.c[:v.n], n)
	case vecValue[uint64]:
		return convertComponents[To](v.c[:v.n], n)
	case vecValue[float64]:
		return convertComponents[To](v.c[:v.n], n)
	default:
		return [4]To{}, false
	}
}

func convertComponents[To numeric, From storage](src []From, n int) ([4]To, bool) {
	var out [4]To
	for i := 0; i < n && i < len(src); i++ {
		c, ok := convertNumber[To](src[i])
		if !ok {
			return [4]To{}, false
		}
		out[i] = c
	}
	return out, true
}

// toMatrix converts a matrix payload to a 4x4 double matrix. Smaller
// matrices fill the upper-left corner and the rest is zero.
func toMatrix(p payload) (Matrix, bool) {
	switch v := p.(type) {
	case matValue[int64]:
		return embedMatrix(v), true
	case matValue[uint64]:
		return embedMatrix(v), true
	case matValue[float64]:
		return embedMatrix(v), true
	default:
		return Matrix{}, false
	}
}

func embedMatrix[T storage](m matValue[T]) Matrix {
	var out Matrix
	for col := 0; col < m.n; col++ {
		for row := 0; row < m.n; row++ {
			out[col][row] = float64(m.at(col, row))
		}
	}
	return out
}

// toText renders any payload as text. Enum names are handled by the caller.
func toText(p payload) (string, bool) {
	switch v := p.(type) {
	case boolValue:
		return strconv.FormatBool(bool(v)), true
	case stringValue:
		return string(v), true
	case scalarValue[int64]:
		return formatNumber(v.v), true
	case scalarValue[uint64]:
		return formatNumber(v.v), true
	case scalarValue[float64]:
		return formatNumber(v.v), true
	case vecValue[int64]:
		return formatVector(v), true
	case vecValue[uint64]:
		return formatVector(v), true
	case vecValue[float64]:
		return formatVector(v), true
	case matValue[int64]:
		return formatMatrix(v), true
	case matValue[uint64]:
		return formatMatrix(v), true
	case matValue[float64]:
		return formatMatrix(v), true
	case arrayValue:
		return v.arr.String(), true
	default:
		return "", false
	}
}

func formatNumber[T numeric](x T) string {
	switch n := any(x).(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	}
}

const componentLabels = "XYZW"

func formatVector[T storage](v vecValue[T]) string {
	return formatLabeled(v.c[:v.n])
}

func formatLabeled[T numeric](comps []T) string {
	parts := make([]string, len(comps))
	for i, c := range comps {
		parts[i] = componentLabels[i:i+1] + "=" + formatNumber(c)
	}
	return strings.Join(parts, " ")
}

// formatMatrix renders one bracketed group per row.
func formatMatrix[T storage](m matValue[T]) string {
	rows := make([]string, m.n)
	for row := 0; row < m.n; row++ {
		cols := make([]string, m.n)
		for col := 0; col < m.n; col++ {
			cols[col] = formatNumber(m.at(col, row))
		}
		rows[row] = "[" + strings.Join(cols, " ") + "]"
	}
	return strings.Join(rows, " ")
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	default:
		return false, false
	}
}

func parseScalar[To numeric](s string) (To, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromInt64[To](i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return fromUint64[To](u)
	}
	if d, err := strconv.ParseFloat(s, 64); err == nil {
		return fromFloat64[To](d)
	}
	var zero To
	return zero, false
}
