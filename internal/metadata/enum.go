package metadata

import (
	"math"
	"sort"
)

// EnumValue is one named entry of an enum.
type EnumValue struct {
	Name  string
	Value int64
}

// EnumDefinition maps the integer values of a schema enum to their names.
// It is built once from a schema and then only read, so a single definition
// can be shared by every value and array that refers to it.
type EnumDefinition struct {
	name          string
	componentType ComponentType
	values        []EnumValue
	names         map[int64]string
	byName        map[string]int64
}

// NewEnumDefinition builds a definition. When the same integer is listed
// more than once, the first name wins.
func NewEnumDefinition(name string, componentType ComponentType, values []EnumValue) *EnumDefinition {
	if componentType == ComponentNone {
		componentType = ComponentUint16
	}
	def := &EnumDefinition{
		name:          name,
		componentType: componentType,
		values:        append([]EnumValue(nil), values...),
		names:         make(map[int64]string, len(values)),
		byName:        make(map[string]int64, len(values)),
	}
	for _, v := range values {
		if _, seen := def.names[v.Value]; !seen {
			def.names[v.Value] = v.Name
		}
		if _, seen := def.byName[v.Name]; !seen {
			def.byName[v.Name] = v.Value
		}
	}
	return def
}

// Name returns the enum's own name.
func (e *EnumDefinition) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// ComponentType is the integer type enum values are stored as.
func (e *EnumDefinition) ComponentType() ComponentType {
	if e == nil {
		return ComponentNone
	}
	return e.componentType
}

// NameOf returns the name for value.
func (e *EnumDefinition) NameOf(value int64) (string, bool) {
	if e == nil {
		return "", false
	}
	name, ok := e.names[value]
	return name, ok
}

// ValueOf returns the integer for name.
func (e *EnumDefinition) ValueOf(name string) (int64, bool) {
	if e == nil {
		return 0, false
	}
	v, ok := e.byName[name]
	return v, ok
}

// Values returns the entries sorted by value.
func (e *EnumDefinition) Values() []EnumValue {
	if e == nil {
		return nil
	}
	out := append([]EnumValue(nil), e.values...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// nameOfPayload looks up the name of an integer payload. isInteger is false
// when p is not an integer scalar at all.
func (e *EnumDefinition) nameOfPayload(p payload) (name string, found, isInteger bool) {
	switch v := p.(type) {
	case scalarValue[int64]:
		name, found = e.NameOf(v.v)
		return name, found, true
	case scalarValue[uint64]:
		if v.v > math.MaxInt64 {
			return "", false, true
		}
		name, found = e.NameOf(int64(v.v))
		return name, found, true
	default:
		return "", false, false
	}
}
