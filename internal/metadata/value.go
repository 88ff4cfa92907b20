package metadata

import (
	"golang.org/x/exp/constraints"

	"github.com/mcncl/metaval/internal/models"
)

// numeric is every Go type a component can be read as.
type numeric interface {
	constraints.Integer | constraints.Float
}

// Value is a single structural metadata value: a boolean, string, scalar,
// vector, matrix or enum, or an array of one of those. The zero Value is
// empty.
//
// A Value is never modified after construction. Copies may share array
// storage; use Clone for a copy with an independent lifetime.
type Value struct {
	p         payload
	valueType ValueType
	enumDef   *EnumDefinition
}

// IsEmpty reports whether v holds neither a value nor an array.
func (v Value) IsEmpty() bool {
	return v.p == nil
}

// Type returns the declared type. It is only meaningful when v is not empty.
func (v Value) Type() ValueType {
	return v.valueType
}

// Shape returns the stored variant.
func (v Value) Shape() Shape {
	if v.p == nil {
		return ShapeEmpty
	}
	return v.p.shape()
}

// EnumDefinition returns the enum attached to an ENUM value, or nil.
func (v Value) EnumDefinition() *EnumDefinition {
	return v.enumDef
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if a, ok := v.p.(arrayValue); ok {
		v.p = arrayValue{arr: a.arr.Clone()}
	}
	return v
}

// FromBool returns a BOOLEAN value.
func FromBool(b bool) Value {
	return Value{p: boolValue(b), valueType: NewValueType(TypeBoolean, ComponentNone, false)}
}

// FromString returns a STRING value.
func FromString(s string) Value {
	return Value{p: stringValue(s), valueType: NewValueType(TypeString, ComponentNone, false)}
}

// FromScalar returns a SCALAR value declared as componentType. The result is
// empty when x cannot be stored as componentType without loss.
func FromScalar[T numeric](x T, componentType ComponentType) Value {
	return FromJSON(nativeNode(x), NewValueType(TypeScalar, componentType, false), nil)
}

// FromEnum returns an ENUM value whose names come from def.
func FromEnum[T constraints.Integer](x T, def *EnumDefinition) Value {
	return FromJSON(nativeNode(x), NewValueType(TypeEnum, def.ComponentType(), false), def)
}

// FromVector returns a VEC2, VEC3 or VEC4 value depending on how many
// components are given.
func FromVector[T numeric](componentType ComponentType, comps ...T) Value {
	var t Type
	switch len(comps) {
	case 2:
		t = TypeVec2
	case 3:
		t = TypeVec3
	case 4:
		t = TypeVec4
	default:
		return Value{}
	}
	return FromJSON(toNodes(comps), NewValueType(t, componentType, false), nil)
}

// FromMatrix returns a MAT2, MAT3 or MAT4 value from components in
// column-major order.
func FromMatrix[T numeric](componentType ComponentType, comps ...T) Value {
	var t Type
	switch len(comps) {
	case 4:
		t = TypeMat2
	case 9:
		t = TypeMat3
	case 16:
		t = TypeMat4
	default:
		return Value{}
	}
	return FromJSON(toNodes(comps), NewValueType(t, componentType, false), nil)
}

// FromArray wraps an already typed array. The empty sentinel array yields
// an empty Value.
func FromArray(arr PropertyArray) Value {
	if arr.items == nil || !arr.elementType.IsValid() {
		return Value{}
	}
	vt := arr.elementType
	vt.IsArray = true
	v := Value{p: arrayValue{arr: arr}, valueType: vt}
	if vt.Type == TypeEnum {
		v.enumDef = arr.enumDef
	}
	return v
}

func toNodes[T numeric](comps []T) models.JSONArray {
	nodes := make(models.JSONArray, len(comps))
	for i, c := range comps {
		nodes[i] = nativeNode(c)
	}
	return nodes
}

// nativeNode widens x to the int64, uint64 or float64 node the JSON
// introspection understands, whatever named type T is.
func nativeNode[T numeric](x T) models.JSONValue {
	var zero T
	one := zero + 1
	switch {
	case one/(one+one) != zero:
		return float64(x)
	case zero-one < zero:
		return int64(x)
	default:
		return uint64(x)
	}
}
