// Package schema provides EXT_structural_metadata parsing and resolution of
// class properties to metadata value types
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/metadata"
)

// Extension is the root EXT_structural_metadata object of a glTF document
type Extension struct {
	Schema         *Schema         `json:"schema,omitempty"`
	SchemaURI      string          `json:"schemaUri,omitempty"`
	PropertyTables []PropertyTable `json:"propertyTables,omitempty"`
}

// Schema holds the classes and enums property values are typed by
type Schema struct {
	ID          string            `json:"id"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Version     string            `json:"version,omitempty"`
	Classes     map[string]*Class `json:"classes,omitempty"`
	Enums       map[string]*Enum  `json:"enums,omitempty"`
}

// Class is a named set of properties
type Class struct {
	Name        string                    `json:"name,omitempty"`
	Description string                    `json:"description,omitempty"`
	Properties  map[string]*ClassProperty `json:"properties,omitempty"`
}

// ClassProperty declares the type of one property. Values that depend on
// the type are kept raw until the type is resolved.
type ClassProperty struct {
	Name          string          `json:"name,omitempty"`
	Description   string          `json:"description,omitempty"`
	Type          string          `json:"type"`
	ComponentType string          `json:"componentType,omitempty"`
	EnumType      string          `json:"enumType,omitempty"`
	Array         bool            `json:"array,omitempty"`
	Count         *int64          `json:"count,omitempty"`
	Normalized    bool            `json:"normalized,omitempty"`
	Offset        json.RawMessage `json:"offset,omitempty"`
	Scale         json.RawMessage `json:"scale,omitempty"`
	Max           json.RawMessage `json:"max,omitempty"`
	Min           json.RawMessage `json:"min,omitempty"`
	Required      bool            `json:"required,omitempty"`
	NoData        json.RawMessage `json:"noData,omitempty"`
	Default       json.RawMessage `json:"default,omitempty"`
	Semantic      string          `json:"semantic,omitempty"`
}

// Enum maps integer values to names
type Enum struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	ValueType   string      `json:"valueType,omitempty"`
	Values      []EnumValue `json:"values"`
}

// EnumValue is one entry of an Enum
type EnumValue struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Value       int64  `json:"value"`
}

// PropertyTable stores values for the properties of a class
type PropertyTable struct {
	Name       string                            `json:"name,omitempty"`
	Class      string                            `json:"class"`
	Count      int64                             `json:"count"`
	Properties map[string]*PropertyTableProperty `json:"properties,omitempty"`
}

// PropertyTableProperty locates the values of one property and may override
// the class's offset, scale, min and max
type PropertyTableProperty struct {
	Values           int64           `json:"values"`
	ArrayOffsets     *int64          `json:"arrayOffsets,omitempty"`
	StringOffsets    *int64          `json:"stringOffsets,omitempty"`
	ArrayOffsetType  string          `json:"arrayOffsetType,omitempty"`
	StringOffsetType string          `json:"stringOffsetType,omitempty"`
	Offset           json.RawMessage `json:"offset,omitempty"`
	Scale            json.RawMessage `json:"scale,omitempty"`
	Max              json.RawMessage `json:"max,omitempty"`
	Min              json.RawMessage `json:"min,omitempty"`
}

// ParseFile reads and parses an extension or bare schema from a file
func ParseFile(path string) (*Extension, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(fmt.Sprintf("schema file '%s' not found", path), errors.ErrFileNotFound)
		}
		return nil, errors.NewInputError("failed to read schema file", err)
	}

	return ParseBytes(data)
}

// ParseBytes parses either a full EXT_structural_metadata object or a bare
// schema with classes and enums at the top level
func ParseBytes(data []byte) (*Extension, error) {
	var ext Extension
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, errors.NewSchemaError("failed to parse EXT_structural_metadata", err)
	}
	if ext.Schema != nil || ext.SchemaURI != "" {
		return &ext, nil
	}

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewSchemaError("failed to parse schema", err)
	}
	if len(s.Classes) == 0 && len(s.Enums) == 0 {
		return nil, errors.NewSchemaError("no schema, classes or enums found", errors.ErrNoStructuralMetadata)
	}
	ext.Schema = &s
	return &ext, nil
}

// ParseString parses an extension or bare schema from a string
func ParseString(s string) (*Extension, error) {
	return ParseBytes([]byte(s))
}

// Validate checks that every type name parses and every reference between
// classes, enums and property tables resolves
func (e *Extension) Validate() error {
	if e.Schema == nil {
		if e.SchemaURI != "" {
			return errors.NewSchemaError(fmt.Sprintf("external schema '%s' is not supported", e.SchemaURI), nil)
		}
		return errors.NewSchemaError("extension has no schema", errors.ErrNoStructuralMetadata)
	}

	for _, enumName := range sortedKeys(e.Schema.Enums) {
		enum := e.Schema.Enums[enumName]
		if enum == nil {
			return errors.NewSchemaError(fmt.Sprintf("enum '%s' is null", enumName), nil)
		}
		if enum.ValueType == "" {
			continue
		}
		ct, ok := metadata.ParseComponentType(enum.ValueType)
		if !ok || !ct.IsInteger() {
			return errors.NewSchemaError(
				fmt.Sprintf("enum '%s' has invalid valueType '%s'", enumName, enum.ValueType),
				errors.ErrUnknownType,
			)
		}
	}

	for _, className := range sortedKeys(e.Schema.Classes) {
		class := e.Schema.Classes[className]
		if class == nil {
			return errors.NewSchemaError(fmt.Sprintf("class '%s' is null", className), nil)
		}
		for _, propName := range sortedKeys(class.Properties) {
			if class.Properties[propName] == nil {
				return errors.NewSchemaError(
					fmt.Sprintf("property '%s' of class '%s' is null", propName, className),
					nil,
				)
			}
			if _, err := e.Schema.resolveType(class.Properties[propName]); err != nil {
				return errors.NewSchemaError(
					fmt.Sprintf("property '%s' of class '%s'", propName, className),
					err,
				)
			}
		}
	}

	for i, table := range e.PropertyTables {
		class, ok := e.Schema.Classes[table.Class]
		if !ok {
			return errors.NewSchemaError(
				fmt.Sprintf("property table %d refers to class '%s'", i, table.Class),
				errors.ErrUnknownClass,
			)
		}
		for _, propName := range sortedKeys(table.Properties) {
			if table.Properties[propName] == nil {
				return errors.NewSchemaError(
					fmt.Sprintf("property table %d has a null entry for property '%s'", i, propName),
					nil,
				)
			}
			if _, ok := class.Properties[propName]; !ok {
				return errors.NewSchemaError(
					fmt.Sprintf("property table %d refers to property '%s' of class '%s'", i, propName, table.Class),
					errors.ErrUnknownProperty,
				)
			}
		}
	}

	return nil
}

// resolveType maps a class property to its metadata value type
func (s *Schema) resolveType(p *ClassProperty) (metadata.ValueType, error) {
	t, ok := metadata.ParseType(p.Type)
	if !ok {
		return metadata.ValueType{}, fmt.Errorf("%w '%s'", errors.ErrUnknownType, p.Type)
	}

	var ct metadata.ComponentType
	switch {
	case t == metadata.TypeEnum:
		enum, ok := s.Enums[p.EnumType]
		if !ok {
			return metadata.ValueType{}, fmt.Errorf("%w '%s'", errors.ErrUnknownEnum, p.EnumType)
		}
		ct = enumComponentType(enum)
	case t.IsNumeric():
		ct, ok = metadata.ParseComponentType(p.ComponentType)
		if !ok {
			return metadata.ValueType{}, fmt.Errorf("%w: component type '%s'", errors.ErrUnknownType, p.ComponentType)
		}
	}

	return metadata.NewValueType(t, ct, p.Array), nil
}

// enumComponentType defaults to UINT16 as glTF does
func enumComponentType(e *Enum) metadata.ComponentType {
	if ct, ok := metadata.ParseComponentType(e.ValueType); ok && ct.IsInteger() {
		return ct
	}
	return metadata.ComponentUint16
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
