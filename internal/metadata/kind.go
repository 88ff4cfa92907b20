package metadata

// AccessorKind names the accessor that reads a value of some type without
// loss.
type AccessorKind int

const (
	AccessorNone AccessorKind = iota
	AccessorBoolean
	AccessorByte
	AccessorInteger
	AccessorInteger64
	AccessorFloat
	AccessorFloat64
	AccessorIntPoint
	AccessorVector2
	AccessorIntVector
	AccessorVector3f
	AccessorVector3
	AccessorVector4
	AccessorMatrix
	AccessorString
	AccessorArray
)

var accessorNames = map[AccessorKind]string{
	AccessorNone:      "none",
	AccessorBoolean:   "boolean",
	AccessorByte:      "byte",
	AccessorInteger:   "integer",
	AccessorInteger64: "integer64",
	AccessorFloat:     "float",
	AccessorFloat64:   "float64",
	AccessorIntPoint:  "intpoint",
	AccessorVector2:   "vector2",
	AccessorIntVector: "intvector",
	AccessorVector3f:  "vector3f",
	AccessorVector3:   "vector3",
	AccessorVector4:   "vector4",
	AccessorMatrix:    "matrix",
	AccessorString:    "string",
	AccessorArray:     "array",
}

func (k AccessorKind) String() string {
	if name, ok := accessorNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf returns the accessor for valueType. Arrays always map to
// AccessorArray; use ElementKindOf for their elements.
func KindOf(valueType ValueType) AccessorKind {
	if valueType.IsArray {
		if !valueType.Element().IsValid() {
			return AccessorNone
		}
		return AccessorArray
	}
	return elementKind(valueType)
}

// ElementKindOf returns the accessor for the elements of an array type, or
// AccessorNone when valueType is not an array.
func ElementKindOf(valueType ValueType) AccessorKind {
	if !valueType.IsArray {
		return AccessorNone
	}
	return elementKind(valueType.Element())
}

func elementKind(vt ValueType) AccessorKind {
	if !vt.IsValid() {
		return AccessorNone
	}
	ct := vt.ComponentType
	switch vt.Type {
	case TypeBoolean:
		return AccessorBoolean
	case TypeScalar:
		return scalarKind(ct)
	case TypeVec2:
		if fitsInt32(ct) {
			return AccessorIntPoint
		}
		return AccessorVector2
	case TypeVec3:
		switch {
		case fitsInt32(ct):
			return AccessorIntVector
		case ct == ComponentFloat32:
			return AccessorVector3f
		default:
			return AccessorVector3
		}
	case TypeVec4:
		return AccessorVector4
	case TypeMat2, TypeMat3, TypeMat4:
		return AccessorMatrix
	case TypeString, TypeEnum:
		return AccessorString
	default:
		return AccessorNone
	}
}

func scalarKind(ct ComponentType) AccessorKind {
	switch ct {
	case ComponentUint8:
		return AccessorByte
	case ComponentInt8, ComponentInt16, ComponentUint16, ComponentInt32:
		return AccessorInteger
	case ComponentUint32, ComponentInt64:
		return AccessorInteger64
	case ComponentFloat32:
		return AccessorFloat
	case ComponentFloat64:
		return AccessorFloat64
	case ComponentUint64:
		// No accessor holds every uint64 without loss.
		return AccessorString
	default:
		return AccessorNone
	}
}

// fitsInt32 reports whether every value of ct is an int32.
func fitsInt32(ct ComponentType) bool {
	switch ct {
	case ComponentInt8, ComponentUint8, ComponentInt16, ComponentUint16, ComponentInt32:
		return true
	default:
		return false
	}
}
