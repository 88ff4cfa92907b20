package metadata

import (
	"slices"
	"strings"
)

// arrayItems is the backing store of a PropertyArray. Every implementation
// holds elements of exactly one payload type, which keeps arrays
// homogeneous by construction.
type arrayItems interface {
	len() int
	at(i int) payload
	clone() arrayItems
}

type items[P payload] []P

func (s items[P]) len() int          { return len(s) }
func (s items[P]) at(i int) payload  { return s[i] }
func (s items[P]) clone() arrayItems { return slices.Clone(s) }

// PropertyArray is a homogeneous array of metadata values. The zero value
// is the empty array returned for values that are not arrays.
type PropertyArray struct {
	elementType ValueType
	items       arrayItems
	enumDef     *EnumDefinition
}

func newPropertyArray[P payload](elementType ValueType, elems []P) PropertyArray {
	return PropertyArray{elementType: elementType.Element(), items: items[P](elems)}
}

// NewBoolArray builds a BOOLEAN array.
func NewBoolArray(values []bool) PropertyArray {
	elems := make([]boolValue, len(values))
	for i, b := range values {
		elems[i] = boolValue(b)
	}
	return newPropertyArray(NewValueType(TypeBoolean, ComponentNone, false), elems)
}

// NewStringArray builds a STRING array.
func NewStringArray(values []string) PropertyArray {
	elems := make([]stringValue, len(values))
	for i, s := range values {
		elems[i] = stringValue(s)
	}
	return newPropertyArray(NewValueType(TypeString, ComponentNone, false), elems)
}

// NewScalarArray builds a SCALAR array of componentType. It returns the
// empty array when any element does not fit componentType.
func NewScalarArray[T numeric](componentType ComponentType, values []T) PropertyArray {
	return scalarArrayFromJSON(toNodes(values), NewValueType(TypeScalar, componentType, true))
}

// WithEnum returns a copy of a that renders integer elements through def.
func (a PropertyArray) WithEnum(def *EnumDefinition) PropertyArray {
	a.enumDef = def
	return a
}

// Len is the number of elements.
func (a PropertyArray) Len() int {
	if a.items == nil {
		return 0
	}
	return a.items.len()
}

// ElementType is the type of every element. It is the zero ValueType for
// the empty sentinel.
func (a PropertyArray) ElementType() ValueType {
	return a.elementType
}

// EnumDefinition returns the enum the elements belong to, if any.
func (a PropertyArray) EnumDefinition() *EnumDefinition {
	return a.enumDef
}

// Value returns element i, or an empty Value when i is out of range.
func (a PropertyArray) Value(i int) Value {
	if i < 0 || i >= a.Len() {
		return Value{}
	}
	v := Value{p: a.items.at(i), valueType: a.elementType}
	if a.elementType.Type == TypeEnum {
		v.enumDef = a.enumDef
	}
	return v
}

// Values returns every element.
func (a PropertyArray) Values() []Value {
	out := make([]Value, a.Len())
	for i := range out {
		out[i] = a.Value(i)
	}
	return out
}

// Clone returns an array that shares no storage with a.
func (a PropertyArray) Clone() PropertyArray {
	if a.items != nil {
		a.items = a.items.clone()
	}
	return a
}

// String renders the array as "[a, b, c]". Enum elements without a name
// render as empty strings.
func (a PropertyArray) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Value(i).AsString(""))
	}
	b.WriteByte(']')
	return b.String()
}
