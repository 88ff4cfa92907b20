package metadata

// Accessors read a Value as a requested Go type. Each one returns def
// whenever the stored value cannot be converted without loss, and never
// anything else on failure.

// AsBool reads v as a boolean. Numbers are true when non-zero.
func (v Value) AsBool(def bool) bool {
	if b, ok := toBool(v.p); ok {
		return b
	}
	return def
}

// AsByte reads v as a uint8.
func (v Value) AsByte(def uint8) uint8 {
	return scalarOr(v.p, def)
}

// AsInt32 reads v as an int32.
func (v Value) AsInt32(def int32) int32 {
	return scalarOr(v.p, def)
}

// AsInt64 reads v as an int64.
func (v Value) AsInt64(def int64) int64 {
	return scalarOr(v.p, def)
}

// AsUint64 reads v as a uint64.
func (v Value) AsUint64(def uint64) uint64 {
	return scalarOr(v.p, def)
}

// AsFloat32 reads v as a float32. Doubles outside the float32 range fail;
// doubles inside it are rounded.
func (v Value) AsFloat32(def float32) float32 {
	return scalarOr(v.p, def)
}

// AsFloat64 reads v as a float64.
func (v Value) AsFloat64(def float64) float64 {
	return scalarOr(v.p, def)
}

func scalarOr[T numeric](p payload, def T) T {
	if x, ok := toScalar[T](p); ok {
		return x
	}
	return def
}

// AsIntPoint reads the first two components of a vector, or parses a
// string of the form "X=1 Y=2".
func (v Value) AsIntPoint(def IntPoint) IntPoint {
	if s, ok := v.p.(stringValue); ok {
		if p, ok := ParseIntPoint(string(s)); ok {
			return p
		}
		return def
	}
	if c, ok := toVector[int32](v.p, 2); ok {
		return IntPoint{c[0], c[1]}
	}
	return def
}

// AsVector2 reads the first two components of a vector.
func (v Value) AsVector2(def Vector2) Vector2 {
	if s, ok := v.p.(stringValue); ok {
		if p, ok := ParseVector2(string(s)); ok {
			return p
		}
		return def
	}
	if c, ok := toVector[float64](v.p, 2); ok {
		return Vector2{c[0], c[1]}
	}
	return def
}

// AsIntVector reads three integer components. A VEC2 gets Z = 0.
func (v Value) AsIntVector(def IntVector) IntVector {
	if s, ok := v.p.(stringValue); ok {
		if p, ok := ParseIntVector(string(s)); ok {
			return p
		}
		return def
	}
	if c, ok := toVector[int32](v.p, 3); ok {
		return IntVector{c[0], c[1], c[2]}
	}
	return def
}

// AsVector3f reads three float32 components.
func (v Value) AsVector3f(def Vector3f) Vector3f {
	if s, ok := v.p.(stringValue); ok {
		if p, ok := ParseVector3f(string(s)); ok {
			return p
		}
		return def
	}
	if c, ok := toVector[float32](v.p, 3); ok {
		return Vector3f{c[0], c[1], c[2]}
	}
	return def
}

// AsVector3 reads three double components.
func (v Value) AsVector3(def Vector3) Vector3 {
	if s, ok := v.p.(stringValue); ok {
		if p, ok := ParseVector3(string(s)); ok {
			return p
		}
		return def
	}
	if c, ok := toVector[float64](v.p, 3); ok {
		return Vector3{c[0], c[1], c[2]}
	}
	return def
}

// AsVector4 reads four double components. Missing components are zero.
func (v Value) AsVector4(def Vector4) Vector4 {
	if s, ok := v.p.(stringValue); ok {
		if p, ok := ParseVector4(string(s)); ok {
			return p
		}
		return def
	}
	if c, ok := toVector[float64](v.p, 4); ok {
		return Vector4{c[0], c[1], c[2], c[3]}
	}
	return def
}

// AsMatrix reads any matrix as 4x4, placing smaller matrices in the upper
// left corner and zeroing the rest.
func (v Value) AsMatrix(def Matrix) Matrix {
	if m, ok := toMatrix(v.p); ok {
		return m
	}
	return def
}

// AsString renders v as text. An ENUM value renders as its name, and as
// def when its enum has no name for it.
func (v Value) AsString(def string) string {
	if v.valueType.Type == TypeEnum && v.enumDef != nil {
		if name, found, isInteger := v.enumDef.nameOfPayload(v.p); isInteger {
			if found {
				return name
			}
			return def
		}
	}
	if s, ok := toText(v.p); ok {
		return s
	}
	return def
}

// Array returns the array v holds, or the empty array when v is not an
// array.
func (v Value) Array() PropertyArray {
	if a, ok := v.p.(arrayValue); ok {
		return a.arr
	}
	return PropertyArray{}
}

// AccessorKind returns the accessor that reads v without loss.
func (v Value) AccessorKind() AccessorKind {
	if v.IsEmpty() {
		return AccessorNone
	}
	return KindOf(v.valueType)
}

// ArrayElementAccessorKind returns the accessor for the elements of an
// array value, or AccessorNone when v is not an array.
func (v Value) ArrayElementAccessorKind() AccessorKind {
	if v.IsEmpty() {
		return AccessorNone
	}
	return ElementKindOf(v.valueType)
}

// ValuesAsStrings renders every value in values with an empty default.
func ValuesAsStrings(values map[string]Value) map[string]string {
	out := make(map[string]string, len(values))
	for name, v := range values {
		out[name] = v.AsString("")
	}
	return out
}
