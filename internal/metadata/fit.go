package metadata

import (
	"fmt"
	"math"

	"github.com/mcncl/metaval/internal/models"
)

// ComponentTypeFit records, independently for the signed, unsigned and
// floating axes, the narrowest component type that holds a JSON number (or
// every number of an array) without loss. An axis is ComponentNone when no
// type on it can hold the value.
type ComponentTypeFit struct {
	Signed   ComponentType
	Unsigned ComponentType
	Floating ComponentType
}

// Bounds of the integer ranges a float64 can be checked against. Both are
// exact powers of two.
const (
	twoTo63 = 9223372036854775808.0
	twoTo64 = 18446744073709551616.0
)

// FitOf computes the fit of a single JSON node. Anything other than a finite
// number has no fit on any axis.
func FitOf(node models.JSONValue) ComponentTypeFit {
	var fit ComponentTypeFit
	switch models.KindOf(node) {
	case models.Int64Number:
		i, _ := models.AsInt64(node)
		fit.fitInt64(i)
		if i >= 0 {
			fit.fitUint64(uint64(i))
		}
	case models.Uint64Number:
		u, _ := models.AsUint64(node)
		fit.fitUint64(u)
	case models.DoubleNumber:
		d, _ := models.AsDouble(node)
		if i, ok := exactInt64(d); ok {
			fit.fitInt64(i)
		}
		if u, ok := exactUint64(d); ok {
			fit.fitUint64(u)
		}
		fit.fitDouble(d)
	}
	return fit
}

// FitOfArray folds the fits of every element of arr, left to right. An empty
// array has no fit on any axis.
func FitOfArray(arr models.JSONArray) ComponentTypeFit {
	if len(arr) == 0 {
		return ComponentTypeFit{}
	}
	fit := FitOf(arr[0])
	for _, element := range arr[1:] {
		fit.Combine(FitOf(element))
	}
	return fit
}

// Combine narrows f to what both f and other can hold: on each axis the
// wider of the two types when both are set, and ComponentNone otherwise.
func (f *ComponentTypeFit) Combine(other ComponentTypeFit) {
	f.Signed = widerOf(f.Signed, other.Signed)
	f.Unsigned = widerOf(f.Unsigned, other.Unsigned)
	f.Floating = widerOf(f.Floating, other.Floating)
}

// IsCompatibleWithComponentType reports whether values with this fit can be
// stored as target without loss.
func (f ComponentTypeFit) IsCompatibleWithComponentType(target ComponentType) bool {
	var axis ComponentType
	switch {
	case target.IsFloating():
		axis = f.Floating
	case target.IsSigned():
		axis = f.Signed
	case target.IsUnsigned():
		axis = f.Unsigned
	default:
		return false
	}
	return axis != ComponentNone && axis.Size() <= target.Size()
}

// IsEmpty reports whether no axis has a fit.
func (f ComponentTypeFit) IsEmpty() bool {
	return f.Signed == ComponentNone && f.Unsigned == ComponentNone && f.Floating == ComponentNone
}

func (f ComponentTypeFit) String() string {
	return fmt.Sprintf("signed=%s unsigned=%s floating=%s", f.Signed, f.Unsigned, f.Floating)
}

func (f *ComponentTypeFit) fitInt64(i int64) {
	switch {
	case int64(int8(i)) == i:
		f.Signed = ComponentInt8
	case int64(int16(i)) == i:
		f.Signed = ComponentInt16
	case int64(int32(i)) == i:
		f.Signed = ComponentInt32
	default:
		f.Signed = ComponentInt64
	}

	// Integer-origin values must come back bit for bit.
	switch {
	case int64RoundTrips(float64(float32(i)), i):
		f.narrowFloating(ComponentFloat32)
	case int64RoundTrips(float64(i), i):
		f.narrowFloating(ComponentFloat64)
	}
}

func (f *ComponentTypeFit) fitUint64(u uint64) {
	switch {
	case u <= math.MaxUint8:
		f.Unsigned = ComponentUint8
	case u <= math.MaxUint16:
		f.Unsigned = ComponentUint16
	case u <= math.MaxUint32:
		f.Unsigned = ComponentUint32
	default:
		f.Unsigned = ComponentUint64
	}

	// The unsigned probe compares through float64 rather than against the
	// integer, so values above 2^53 may be accepted as Float32. This differs
	// from fitInt64 and is kept for compatibility with existing data.
	d := float64(u)
	if float64(float32(d)) == d {
		f.narrowFloating(ComponentFloat32)
	} else {
		f.narrowFloating(ComponentFloat64)
	}
}

func (f *ComponentTypeFit) fitDouble(d float64) {
	f32 := float32(d)
	if float64(f32) == d {
		f.narrowFloating(ComponentFloat32)
	} else {
		f.narrowFloating(ComponentFloat64)
	}
}

// narrowFloating keeps the narrower of the current floating fit and c.
func (f *ComponentTypeFit) narrowFloating(c ComponentType) {
	if f.Floating == ComponentNone || c.Size() < f.Floating.Size() {
		f.Floating = c
	}
}

func widerOf(a, b ComponentType) ComponentType {
	if a == ComponentNone || b == ComponentNone {
		return ComponentNone
	}
	if b.Size() > a.Size() {
		return b
	}
	return a
}

func int64RoundTrips(d float64, i int64) bool {
	if d < -twoTo63 || d >= twoTo63 {
		return false
	}
	return int64(d) == i
}

// exactInt64 returns d as an int64 when d is integral and in range.
func exactInt64(d float64) (int64, bool) {
	if d != math.Trunc(d) || d < -twoTo63 || d >= twoTo63 {
		return 0, false
	}
	return int64(d), true
}

// exactUint64 returns d as a uint64 when d is integral, non-negative and in
// range.
func exactUint64(d float64) (uint64, bool) {
	if d != math.Trunc(d) || d < 0 || d >= twoTo64 {
		return 0, false
	}
	return uint64(d), true
}
