// Package metadata implements the run-time model of a single glTF
// EXT_structural_metadata property value: its declared type, the
// lossless-narrowing fit of raw JSON numbers, construction from JSON and the
// typed accessors that convert a stored value to the shape a caller asks for.
//
// Nothing in this package returns errors or logs. A construction that cannot
// be honoured yields an empty Value, and an accessor that cannot convert
// returns the caller's default.
package metadata

import (
	"fmt"
	"strings"
)

// Type is the shape of a metadata property value.
type Type int

const (
	TypeInvalid Type = iota
	TypeBoolean
	TypeScalar
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat2
	TypeMat3
	TypeMat4
	TypeString
	TypeEnum
)

var typeNames = map[Type]string{
	TypeInvalid: "INVALID",
	TypeBoolean: "BOOLEAN",
	TypeScalar:  "SCALAR",
	TypeVec2:    "VEC2",
	TypeVec3:    "VEC3",
	TypeVec4:    "VEC4",
	TypeMat2:    "MAT2",
	TypeMat3:    "MAT3",
	TypeMat4:    "MAT4",
	TypeString:  "STRING",
	TypeEnum:    "ENUM",
}

// String returns the glTF spelling of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType reads a glTF type name such as "VEC3". Matching ignores case.
func ParseType(s string) (Type, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range typeNames {
		if t != TypeInvalid && name == s {
			return t, true
		}
	}
	return TypeInvalid, false
}

// IsNumeric reports whether values of t are built from numeric components.
func (t Type) IsNumeric() bool {
	switch t {
	case TypeScalar, TypeVec2, TypeVec3, TypeVec4, TypeMat2, TypeMat3, TypeMat4, TypeEnum:
		return true
	default:
		return false
	}
}

// IsVector reports whether t is VEC2, VEC3 or VEC4.
func (t Type) IsVector() bool {
	return t == TypeVec2 || t == TypeVec3 || t == TypeVec4
}

// IsMatrix reports whether t is MAT2, MAT3 or MAT4.
func (t Type) IsMatrix() bool {
	return t == TypeMat2 || t == TypeMat3 || t == TypeMat4
}

// Dimension is the vector length or matrix order of t, and 1 for every
// other type.
func (t Type) Dimension() int {
	switch t {
	case TypeVec2, TypeMat2:
		return 2
	case TypeVec3, TypeMat3:
		return 3
	case TypeVec4, TypeMat4:
		return 4
	default:
		return 1
	}
}

// ComponentCount is the number of numeric components in one value of t.
func (t Type) ComponentCount() int {
	d := t.Dimension()
	if t.IsMatrix() {
		return d * d
	}
	return d
}

// ComponentType is the storage width and signedness of one numeric component.
type ComponentType int

const (
	ComponentNone ComponentType = iota
	ComponentInt8
	ComponentUint8
	ComponentInt16
	ComponentUint16
	ComponentInt32
	ComponentUint32
	ComponentInt64
	ComponentUint64
	ComponentFloat32
	ComponentFloat64
)

var componentNames = map[ComponentType]string{
	ComponentNone:    "NONE",
	ComponentInt8:    "INT8",
	ComponentUint8:   "UINT8",
	ComponentInt16:   "INT16",
	ComponentUint16:  "UINT16",
	ComponentInt32:   "INT32",
	ComponentUint32:  "UINT32",
	ComponentInt64:   "INT64",
	ComponentUint64:  "UINT64",
	ComponentFloat32: "FLOAT32",
	ComponentFloat64: "FLOAT64",
}

// AllComponentTypes lists every concrete component type in glTF order.
var AllComponentTypes = []ComponentType{
	ComponentInt8, ComponentUint8,
	ComponentInt16, ComponentUint16,
	ComponentInt32, ComponentUint32,
	ComponentInt64, ComponentUint64,
	ComponentFloat32, ComponentFloat64,
}

// String returns the glTF spelling of the component type.
func (c ComponentType) String() string {
	if name, ok := componentNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ComponentType(%d)", int(c))
}

// ParseComponentType reads a glTF component type name such as "UINT16".
// Matching ignores case.
func ParseComponentType(s string) (ComponentType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, name := range componentNames {
		if c != ComponentNone && name == s {
			return c, true
		}
	}
	return ComponentNone, false
}

// Size is the width of one component in bytes, or 0 for ComponentNone.
func (c ComponentType) Size() int {
	switch c {
	case ComponentInt8, ComponentUint8:
		return 1
	case ComponentInt16, ComponentUint16:
		return 2
	case ComponentInt32, ComponentUint32, ComponentFloat32:
		return 4
	case ComponentInt64, ComponentUint64, ComponentFloat64:
		return 8
	default:
		return 0
	}
}

func (c ComponentType) IsSigned() bool {
	return c == ComponentInt8 || c == ComponentInt16 || c == ComponentInt32 || c == ComponentInt64
}

func (c ComponentType) IsUnsigned() bool {
	return c == ComponentUint8 || c == ComponentUint16 || c == ComponentUint32 || c == ComponentUint64
}

func (c ComponentType) IsFloating() bool {
	return c == ComponentFloat32 || c == ComponentFloat64
}

// IsInteger reports whether c is a signed or unsigned integer type.
func (c ComponentType) IsInteger() bool {
	return c.IsSigned() || c.IsUnsigned()
}

// ValueType describes the declared type of a metadata value.
type ValueType struct {
	Type          Type
	ComponentType ComponentType
	IsArray       bool
}

// NewValueType builds a ValueType, clearing the component type for types
// that are not numeric.
func NewValueType(t Type, c ComponentType, isArray bool) ValueType {
	if !t.IsNumeric() {
		c = ComponentNone
	}
	return ValueType{Type: t, ComponentType: c, IsArray: isArray}
}

// Element returns the type of one element of an array type.
func (vt ValueType) Element() ValueType {
	vt.IsArray = false
	return vt
}

// IsValid reports whether vt names a type a value can be constructed as.
func (vt ValueType) IsValid() bool {
	if vt.Type == TypeInvalid {
		return false
	}
	if vt.Type.IsNumeric() {
		return vt.ComponentType != ComponentNone
	}
	return vt.ComponentType == ComponentNone
}

// String renders vt as "VEC3<FLOAT32>", "STRING[]" and so on.
func (vt ValueType) String() string {
	var b strings.Builder
	b.WriteString(vt.Type.String())
	if vt.Type.IsNumeric() {
		b.WriteString("<")
		b.WriteString(vt.ComponentType.String())
		b.WriteString(">")
	}
	if vt.IsArray {
		b.WriteString("[]")
	}
	return b.String()
}
