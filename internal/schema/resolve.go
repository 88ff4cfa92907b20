package schema

import (
	"encoding/json"
	"fmt"

	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/metadata"
	"github.com/mcncl/metaval/internal/models"
	"github.com/mcncl/metaval/internal/parser"
)

// Suffixes appended to a property's parameter name for its encoded values
const (
	ScaleSuffix        = "_SCALE"
	OffsetSuffix       = "_OFFSET"
	NoDataSuffix       = "_NO_DATA"
	DefaultValueSuffix = "_DEFAULT_VALUE"
)

// PropertyDescription is a class property with its type resolved and its
// type-dependent values materialized
type PropertyDescription struct {
	Name      string
	ClassName string
	// TableName is empty when the property is described through its class
	// rather than a property table.
	TableName string

	ValueType      metadata.ValueType
	EnumDefinition *metadata.EnumDefinition
	ArraySize      int64
	IsNormalized   bool
	Required       bool
	Semantic       string
	Description    string

	Offset  metadata.Value
	Scale   metadata.Value
	Min     metadata.Value
	Max     metadata.Value
	NoData  metadata.Value
	Default metadata.Value

	// Warnings lists values that were present but could not be represented
	// with the property's type.
	Warnings []string
}

// HasOffset reports whether an offset applies to the property
func (d PropertyDescription) HasOffset() bool { return !d.Offset.IsEmpty() }

// HasScale reports whether a scale applies to the property
func (d PropertyDescription) HasScale() bool { return !d.Scale.IsEmpty() }

// HasNoDataValue reports whether the property declares a noData sentinel
func (d PropertyDescription) HasNoDataValue() bool { return !d.NoData.IsEmpty() }

// HasDefaultValue reports whether the property declares a default
func (d PropertyDescription) HasDefaultValue() bool { return !d.Default.IsEmpty() }

// HasValueTransforms reports whether raw values need normalization, scaling
// or an offset before use
func (d PropertyDescription) HasValueTransforms() bool {
	return d.IsNormalized || d.HasScale() || d.HasOffset()
}

// ParameterName is the flat name a property is exposed under, prefixed with
// its table (or class) name
func (d PropertyDescription) ParameterName() string {
	owner := d.TableName
	if owner == "" {
		owner = d.ClassName
	}
	return owner + "_" + d.Name
}

// ParameterNameWith returns ParameterName followed by suffix
func (d PropertyDescription) ParameterNameWith(suffix string) string {
	return d.ParameterName() + suffix
}

// EncodedParameters names the parameters carrying the property's offset,
// scale, noData and default values, in that order, for those it has
func (d PropertyDescription) EncodedParameters() []string {
	var names []string
	for _, e := range []struct {
		v      metadata.Value
		suffix string
	}{
		{d.Offset, OffsetSuffix},
		{d.Scale, ScaleSuffix},
		{d.NoData, NoDataSuffix},
		{d.Default, DefaultValueSuffix},
	} {
		if !e.v.IsEmpty() {
			names = append(names, d.ParameterNameWith(e.suffix))
		}
	}
	return names
}

// TableDescription describes one property table
type TableDescription struct {
	Name       string
	Class      string
	Count      int64
	Properties []PropertyDescription
}

// Resolver resolves the classes of one extension. Enum definitions are built
// once and shared by every description that refers to them.
type Resolver struct {
	ext   *Extension
	enums map[string]*metadata.EnumDefinition
}

// NewResolver validates ext and prepares its enums
func NewResolver(ext *Extension) (*Resolver, error) {
	if ext == nil {
		return nil, errors.NewSchemaError("extension is nil", errors.ErrNoStructuralMetadata)
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}

	r := &Resolver{
		ext:   ext,
		enums: make(map[string]*metadata.EnumDefinition, len(ext.Schema.Enums)),
	}
	for name, enum := range ext.Schema.Enums {
		displayName := enum.Name
		if displayName == "" {
			displayName = name
		}
		values := make([]metadata.EnumValue, len(enum.Values))
		for i, v := range enum.Values {
			values[i] = metadata.EnumValue{Name: v.Name, Value: v.Value}
		}
		r.enums[name] = metadata.NewEnumDefinition(displayName, enumComponentType(enum), values)
	}
	return r, nil
}

// Extension returns the extension being resolved
func (r *Resolver) Extension() *Extension {
	return r.ext
}

// ClassNames returns the class names in sorted order
func (r *Resolver) ClassNames() []string {
	return sortedKeys(r.ext.Schema.Classes)
}

// EnumNames returns the enum names in sorted order
func (r *Resolver) EnumNames() []string {
	return sortedKeys(r.ext.Schema.Enums)
}

// Enum returns the shared definition of an enum
func (r *Resolver) Enum(name string) (*metadata.EnumDefinition, bool) {
	def, ok := r.enums[name]
	return def, ok
}

// ValueType resolves the type of a property of a class
func (r *Resolver) ValueType(className, propertyName string) (metadata.ValueType, error) {
	prop, err := r.property(className, propertyName)
	if err != nil {
		return metadata.ValueType{}, err
	}
	return r.ext.Schema.resolveType(prop)
}

// DescribeClass describes every property of a class in name order
func (r *Resolver) DescribeClass(className string) ([]PropertyDescription, error) {
	class, ok := r.ext.Schema.Classes[className]
	if !ok {
		return nil, errors.NewSchemaError(fmt.Sprintf("class '%s' not found", className), errors.ErrUnknownClass)
	}

	descriptions := make([]PropertyDescription, 0, len(class.Properties))
	for _, name := range sortedKeys(class.Properties) {
		d, err := r.describe(className, name, class.Properties[name])
		if err != nil {
			return nil, err
		}
		descriptions = append(descriptions, d)
	}
	return descriptions, nil
}

// DescribeProperty describes a single property of a class
func (r *Resolver) DescribeProperty(className, propertyName string) (PropertyDescription, error) {
	prop, err := r.property(className, propertyName)
	if err != nil {
		return PropertyDescription{}, err
	}
	return r.describe(className, propertyName, prop)
}

// DescribeTables describes every property table. Offset, scale, min and max
// given by a table replace the class's.
func (r *Resolver) DescribeTables() ([]TableDescription, error) {
	tables := make([]TableDescription, 0, len(r.ext.PropertyTables))
	for i, table := range r.ext.PropertyTables {
		td := TableDescription{
			Name:  TableName(i, table),
			Class: table.Class,
			Count: table.Count,
		}

		properties, err := r.DescribeClass(table.Class)
		if err != nil {
			return nil, err
		}
		for _, d := range properties {
			d.TableName = td.Name
			if override, ok := table.Properties[d.Name]; ok {
				r.applyOverrides(&d, override)
			}
			td.Properties = append(td.Properties, d)
		}
		tables = append(tables, td)
	}
	return tables, nil
}

// TableName returns a table's name, falling back to its class and then to
// its position
func TableName(index int, table PropertyTable) string {
	switch {
	case table.Name != "":
		return table.Name
	case table.Class != "":
		return table.Class
	default:
		return fmt.Sprintf("propertyTable%d", index)
	}
}

func (r *Resolver) property(className, propertyName string) (*ClassProperty, error) {
	class, ok := r.ext.Schema.Classes[className]
	if !ok {
		return nil, errors.NewSchemaError(fmt.Sprintf("class '%s' not found", className), errors.ErrUnknownClass)
	}
	prop, ok := class.Properties[propertyName]
	if !ok {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("property '%s' not found in class '%s'", propertyName, className),
			errors.ErrUnknownProperty,
		)
	}
	return prop, nil
}

func (r *Resolver) describe(className, name string, prop *ClassProperty) (PropertyDescription, error) {
	vt, err := r.ext.Schema.resolveType(prop)
	if err != nil {
		return PropertyDescription{}, errors.NewSchemaError(
			fmt.Sprintf("property '%s' of class '%s'", name, className),
			err,
		)
	}

	d := PropertyDescription{
		Name:         name,
		ClassName:    className,
		ValueType:    vt,
		IsNormalized: prop.Normalized,
		Required:     prop.Required,
		Semantic:     prop.Semantic,
		Description:  prop.Description,
	}
	if vt.Type == metadata.TypeEnum {
		d.EnumDefinition = r.enums[prop.EnumType]
	}
	if vt.IsArray && prop.Count != nil {
		d.ArraySize = *prop.Count
	}

	d.NoData = d.materialize("noData", prop.NoData, vt)
	d.Default = d.materialize("default", prop.Default, vt)

	if hasTransforms(vt) {
		tt := transformType(vt, prop.Normalized)
		d.Offset = d.materialize("offset", prop.Offset, tt)
		d.Scale = d.materialize("scale", prop.Scale, tt)
		d.Min = d.materialize("min", prop.Min, tt)
		d.Max = d.materialize("max", prop.Max, tt)
	}

	return d, nil
}

func (r *Resolver) applyOverrides(d *PropertyDescription, p *PropertyTableProperty) {
	if p == nil || !hasTransforms(d.ValueType) {
		return
	}
	tt := transformType(d.ValueType, d.IsNormalized)
	if len(p.Offset) > 0 {
		d.Offset = d.materialize("offset", p.Offset, tt)
	}
	if len(p.Scale) > 0 {
		d.Scale = d.materialize("scale", p.Scale, tt)
	}
	if len(p.Min) > 0 {
		d.Min = d.materialize("min", p.Min, tt)
	}
	if len(p.Max) > 0 {
		d.Max = d.materialize("max", p.Max, tt)
	}
}

// materialize builds a value from raw JSON, recording a warning when the
// JSON is present but does not fit vt
func (d *PropertyDescription) materialize(field string, raw json.RawMessage, vt metadata.ValueType) metadata.Value {
	if len(raw) == 0 {
		return metadata.Value{}
	}
	node, err := parser.ParseRaw(raw)
	if err != nil {
		d.Warnings = append(d.Warnings, fmt.Sprintf("%s: %v", field, err))
		return metadata.Value{}
	}
	if vt.Type == metadata.TypeEnum {
		node = EnumNamesToValues(node, d.EnumDefinition)
	}
	v := metadata.FromJSON(node, vt, d.EnumDefinition)
	if v.IsEmpty() {
		d.Warnings = append(d.Warnings, fmt.Sprintf("%s: %s cannot be represented as %s", field, string(raw), vt))
	}
	return v
}

// EnumNamesToValues replaces enum names in node with their integer values.
// glTF gives enum noData and default values by name.
func EnumNamesToValues(node models.JSONValue, def *metadata.EnumDefinition) models.JSONValue {
	switch v := node.(type) {
	case string:
		if value, ok := def.ValueOf(v); ok {
			return value
		}
		return v
	case models.JSONArray:
		out := make(models.JSONArray, len(v))
		for i, element := range v {
			out[i] = EnumNamesToValues(element, def)
		}
		return out
	default:
		return v
	}
}

// hasTransforms reports whether offset, scale, min and max apply to vt
func hasTransforms(vt metadata.ValueType) bool {
	return vt.Type.IsNumeric() && vt.Type != metadata.TypeEnum
}

// transformType is the type offset, scale, min and max are given in:
// normalized integers are transformed as doubles.
func transformType(vt metadata.ValueType, normalized bool) metadata.ValueType {
	if normalized && vt.ComponentType.IsInteger() {
		vt.ComponentType = metadata.ComponentFloat64
	}
	return vt
}
