package metadata

import "github.com/mcncl/metaval/internal/models"

// FromJSON materializes node as a value of valueType. Numbers are accepted
// only when their fit is compatible with the declared component type, and
// are then stored in the widest native type of that axis while the declared
// type is what Type reports.
//
// A flat array of exactly N numbers builds a VECn or MATn value (matrices in
// column-major order). For array types every element must match: the
// result is all or nothing. Any mismatch yields an empty Value.
//
// enumDef is attached only when valueType is ENUM.
func FromJSON(node models.JSONValue, valueType ValueType, enumDef *EnumDefinition) Value {
	if !valueType.IsValid() {
		return Value{}
	}
	if valueType.Type == TypeEnum && !valueType.ComponentType.IsInteger() {
		return Value{}
	}

	var p payload
	arr, isArray := models.Array(node)
	switch {
	case !isArray:
		if valueType.IsArray {
			return Value{}
		}
		var ok bool
		if p, ok = scalarFromJSON(node, valueType); !ok {
			return Value{}
		}
	case !valueType.IsArray:
		var ok bool
		if p, ok = fixedFromJSON(arr, valueType); !ok {
			return Value{}
		}
	default:
		pa := arrayFromJSON(arr, valueType)
		if pa.items == nil {
			return Value{}
		}
		if valueType.Type == TypeEnum {
			pa = pa.WithEnum(enumDef)
		}
		p = arrayValue{arr: pa}
	}

	v := Value{p: p, valueType: valueType}
	if valueType.Type == TypeEnum {
		v.enumDef = enumDef
	}
	return v
}

func scalarFromJSON(node models.JSONValue, vt ValueType) (payload, bool) {
	switch vt.Type {
	case TypeBoolean:
		b, ok := node.(bool)
		return boolValue(b), ok
	case TypeString:
		s, ok := node.(string)
		return stringValue(s), ok
	case TypeScalar, TypeEnum:
		if !FitOf(node).IsCompatibleWithComponentType(vt.ComponentType) {
			return nil, false
		}
		switch {
		case vt.ComponentType.IsFloating():
			return scalarAs[float64](node)
		case vt.ComponentType.IsSigned():
			return scalarAs[int64](node)
		default:
			return scalarAs[uint64](node)
		}
	default:
		return nil, false
	}
}

func scalarAs[T storage](node models.JSONValue) (payload, bool) {
	x, ok := nodeAs[T](node)
	if !ok {
		return nil, false
	}
	return scalarValue[T]{v: x}, true
}

// fixedFromJSON reads a single vector or matrix from a flat array.
func fixedFromJSON(arr models.JSONArray, vt ValueType) (payload, bool) {
	if !vt.Type.IsVector() && !vt.Type.IsMatrix() {
		return nil, false
	}
	if len(arr) != vt.Type.ComponentCount() {
		return nil, false
	}
	if !FitOfArray(arr).IsCompatibleWithComponentType(vt.ComponentType) {
		return nil, false
	}
	switch {
	case vt.ComponentType.IsFloating():
		return packFixed[float64](arr, vt.Type)
	case vt.ComponentType.IsSigned():
		return packFixed[int64](arr, vt.Type)
	default:
		return packFixed[uint64](arr, vt.Type)
	}
}

func packFixed[T storage](arr models.JSONArray, t Type) (payload, bool) {
	comps, ok := componentsAs[T](arr)
	if !ok {
		return nil, false
	}
	if t.IsVector() {
		v, ok := newVec(comps)
		return v, ok
	}
	m, ok := newMat(comps)
	return m, ok
}

// arrayFromJSON returns the empty sentinel on any failure.
func arrayFromJSON(arr models.JSONArray, vt ValueType) PropertyArray {
	switch vt.Type {
	case TypeBoolean:
		elems := make([]boolValue, len(arr))
		for i, node := range arr {
			b, ok := node.(bool)
			if !ok {
				return PropertyArray{}
			}
			elems[i] = boolValue(b)
		}
		return newPropertyArray(vt, elems)
	case TypeString:
		elems := make([]stringValue, len(arr))
		for i, node := range arr {
			s, ok := node.(string)
			if !ok {
				return PropertyArray{}
			}
			elems[i] = stringValue(s)
		}
		return newPropertyArray(vt, elems)
	case TypeScalar, TypeEnum:
		return scalarArrayFromJSON(arr, vt)
	default:
		return fixedArrayFromJSON(arr, vt)
	}
}

func scalarArrayFromJSON(arr models.JSONArray, vt ValueType) PropertyArray {
	if !vt.Element().IsValid() {
		return PropertyArray{}
	}
	// An empty array has no fit, but zero elements are trivially
	// representable, so only non-empty arrays are gated.
	if len(arr) > 0 && !FitOfArray(arr).IsCompatibleWithComponentType(vt.ComponentType) {
		return PropertyArray{}
	}
	switch {
	case vt.ComponentType.IsFloating():
		return buildScalarArray[float64](arr, vt)
	case vt.ComponentType.IsSigned():
		return buildScalarArray[int64](arr, vt)
	default:
		return buildScalarArray[uint64](arr, vt)
	}
}

func buildScalarArray[T storage](arr models.JSONArray, vt ValueType) PropertyArray {
	elems := make([]scalarValue[T], len(arr))
	for i, node := range arr {
		x, ok := nodeAs[T](node)
		if !ok {
			return PropertyArray{}
		}
		elems[i] = scalarValue[T]{v: x}
	}
	return newPropertyArray(vt, elems)
}

// fixedArrayFromJSON reads an array of vectors or matrices where every
// element is itself a flat array of the type's component count.
func fixedArrayFromJSON(arr models.JSONArray, vt ValueType) PropertyArray {
	if !vt.Type.IsVector() && !vt.Type.IsMatrix() {
		return PropertyArray{}
	}
	n := vt.Type.ComponentCount()
	var fit ComponentTypeFit
	for i, element := range arr {
		sub, ok := models.Array(element)
		if !ok || len(sub) != n {
			return PropertyArray{}
		}
		if i == 0 {
			fit = FitOfArray(sub)
		} else {
			fit.Combine(FitOfArray(sub))
		}
	}
	if len(arr) > 0 && !fit.IsCompatibleWithComponentType(vt.ComponentType) {
		return PropertyArray{}
	}
	switch {
	case vt.ComponentType.IsFloating():
		return buildFixedArray[float64](arr, vt)
	case vt.ComponentType.IsSigned():
		return buildFixedArray[int64](arr, vt)
	default:
		return buildFixedArray[uint64](arr, vt)
	}
}

func buildFixedArray[T storage](arr models.JSONArray, vt ValueType) PropertyArray {
	if vt.Type.IsVector() {
		elems := make([]vecValue[T], len(arr))
		for i, element := range arr {
			sub, _ := models.Array(element)
			comps, ok := componentsAs[T](sub)
			if !ok {
				return PropertyArray{}
			}
			if elems[i], ok = newVec(comps); !ok {
				return PropertyArray{}
			}
		}
		return newPropertyArray(vt, elems)
	}

	elems := make([]matValue[T], len(arr))
	for i, element := range arr {
		sub, _ := models.Array(element)
		comps, ok := componentsAs[T](sub)
		if !ok {
			return PropertyArray{}
		}
		if elems[i], ok = newMat(comps); !ok {
			return PropertyArray{}
		}
	}
	return newPropertyArray(vt, elems)
}

// nodeAs reads a JSON number into storage type T.
func nodeAs[T storage](node models.JSONValue) (T, bool) {
	switch models.KindOf(node) {
	case models.Int64Number:
		i, _ := models.AsInt64(node)
		return convertNumber[T](i)
	case models.Uint64Number:
		u, _ := models.AsUint64(node)
		return convertNumber[T](u)
	case models.DoubleNumber:
		d, _ := models.AsDouble(node)
		return convertNumber[T](d)
	default:
		var zero T
		return zero, false
	}
}

func componentsAs[T storage](arr models.JSONArray) ([]T, bool) {
	comps := make([]T, len(arr))
	for i, node := range arr {
		x, ok := nodeAs[T](node)
		if !ok {
			return nil, false
		}
		comps[i] = x
	}
	return comps, true
}
