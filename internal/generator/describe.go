package generator

import (
	"strconv"
	"strings"

	"github.com/mcncl/metaval/internal/gltfdoc"
	"github.com/mcncl/metaval/internal/metadata"
	"github.com/mcncl/metaval/internal/schema"
)

// PropertyReport describes one class or table property
type PropertyReport struct {
	Name       string   `json:"name" yaml:"name"`
	Display    string   `json:"display" yaml:"display"`
	Parameter  string   `json:"parameter" yaml:"parameter"`
	Type       string   `json:"type" yaml:"type"`
	Accessor   string   `json:"accessor" yaml:"accessor"`
	Enum       string   `json:"enum,omitempty" yaml:"enum,omitempty"`
	Normalized bool     `json:"normalized" yaml:"normalized"`
	ArraySize  int64    `json:"arraySize,omitempty" yaml:"arraySize,omitempty"`
	Required   bool     `json:"required" yaml:"required"`
	Semantic   string   `json:"semantic,omitempty" yaml:"semantic,omitempty"`
	Offset     string   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Scale      string   `json:"scale,omitempty" yaml:"scale,omitempty"`
	Min        string   `json:"min,omitempty" yaml:"min,omitempty"`
	Max        string   `json:"max,omitempty" yaml:"max,omitempty"`
	NoData     string   `json:"noData,omitempty" yaml:"noData,omitempty"`
	Default    string   `json:"default,omitempty" yaml:"default,omitempty"`
	Encoded    []string `json:"encodedParameters,omitempty" yaml:"encodedParameters,omitempty"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ClassReport lists the properties of a class
type ClassReport struct {
	Name       string           `json:"name" yaml:"name"`
	Display    string           `json:"display" yaml:"display"`
	Properties []PropertyReport `json:"properties" yaml:"properties"`
}

// EnumValueReport is one named enum value
type EnumValueReport struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// EnumReport lists the values of an enum in value order
type EnumReport struct {
	Name          string            `json:"name" yaml:"name"`
	ComponentType string            `json:"componentType" yaml:"componentType"`
	Values        []EnumValueReport `json:"values" yaml:"values"`
}

// TableReport describes a property table
type TableReport struct {
	Name       string           `json:"name" yaml:"name"`
	Class      string           `json:"class" yaml:"class"`
	Count      int64            `json:"count" yaml:"count"`
	Properties []PropertyReport `json:"properties" yaml:"properties"`
}

// SchemaReport is the result of the describe command
type SchemaReport struct {
	Source        string                            `json:"source,omitempty" yaml:"source,omitempty"`
	SchemaID      string                            `json:"schemaId,omitempty" yaml:"schemaId,omitempty"`
	SchemaName    string                            `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	Version       string                            `json:"version,omitempty" yaml:"version,omitempty"`
	Enums         []EnumReport                      `json:"enums,omitempty" yaml:"enums,omitempty"`
	Classes       []ClassReport                     `json:"classes" yaml:"classes"`
	Tables        []TableReport                     `json:"tables,omitempty" yaml:"tables,omitempty"`
	FeatureIDSets []gltfdoc.FeatureIDSetDescription `json:"featureIdSets,omitempty" yaml:"featureIdSets,omitempty"`
}

// SchemaReport describes the metadata of doc. When className is set only
// that class and the tables using it are described. Properties the
// configured describe patterns exclude are left out.
func (g *Generator) SchemaReport(doc *gltfdoc.Document, className string) (SchemaReport, error) {
	r, err := schema.NewResolver(doc.Metadata)
	if err != nil {
		return SchemaReport{}, err
	}

	s := r.Extension().Schema
	report := SchemaReport{
		Source:        doc.Path,
		SchemaID:      s.ID,
		SchemaName:    s.Name,
		Version:       s.Version,
		FeatureIDSets: doc.FeatureIDSets(),
	}

	classNames := r.ClassNames()
	if className != "" {
		classNames = []string{className}
	}

	for _, name := range r.EnumNames() {
		def, _ := r.Enum(name)
		e := EnumReport{Name: name, ComponentType: def.ComponentType().String()}
		for _, v := range def.Values() {
			e.Values = append(e.Values, EnumValueReport{Name: v.Name, Value: v.Value})
		}
		report.Enums = append(report.Enums, e)
	}

	for _, name := range classNames {
		descriptions, err := r.DescribeClass(name)
		if err != nil {
			return SchemaReport{}, err
		}
		report.Classes = append(report.Classes, ClassReport{
			Name:       name,
			Display:    g.config.GetDisplayName(name),
			Properties: g.properties(descriptions),
		})
	}

	tables, err := r.DescribeTables()
	if err != nil {
		return SchemaReport{}, err
	}
	for _, table := range tables {
		if className != "" && table.Class != className {
			continue
		}
		report.Tables = append(report.Tables, TableReport{
			Name:       table.Name,
			Class:      table.Class,
			Count:      table.Count,
			Properties: g.properties(table.Properties),
		})
	}

	return report, nil
}

func (g *Generator) properties(descriptions []schema.PropertyDescription) []PropertyReport {
	reports := make([]PropertyReport, 0, len(descriptions))
	for _, d := range descriptions {
		parameter := d.ParameterName()
		if !g.config.IncludeProperty(parameter) {
			continue
		}

		p := PropertyReport{
			Name:       d.Name,
			Display:    g.config.GetDisplayName(parameter),
			Parameter:  parameter,
			Type:       d.ValueType.String(),
			Accessor:   metadata.KindOf(d.ValueType).String(),
			Normalized: d.IsNormalized,
			ArraySize:  d.ArraySize,
			Required:   d.Required,
			Semantic:   d.Semantic,
			Offset:     valueText(d.Offset),
			Scale:      valueText(d.Scale),
			Min:        valueText(d.Min),
			Max:        valueText(d.Max),
			NoData:     valueText(d.NoData),
			Default:    valueText(d.Default),
			Encoded:    d.EncodedParameters(),
			Warnings:   d.Warnings,
		}
		if d.EnumDefinition != nil {
			p.Enum = d.EnumDefinition.Name()
		}
		reports = append(reports, p)
	}
	return reports
}

func valueText(v metadata.Value) string {
	if v.IsEmpty() {
		return ""
	}
	return v.AsString("")
}

// Sections implements Report
func (r SchemaReport) Sections() []Section {
	var sections []Section

	header := Section{
		Title:   "Schema",
		Headers: []string{"FIELD", "VALUE"},
	}
	for _, f := range [][2]string{
		{"source", r.Source},
		{"id", r.SchemaID},
		{"name", r.SchemaName},
		{"version", r.Version},
	} {
		if f[1] != "" {
			header.Rows = append(header.Rows, row(f[0], f[1]))
		}
	}
	if len(header.Rows) > 0 {
		sections = append(sections, header)
	}

	for _, e := range r.Enums {
		s := Section{
			Title:   "Enum " + e.Name + " (" + e.ComponentType + ")",
			Headers: []string{"NAME", "VALUE"},
		}
		for _, v := range e.Values {
			s.Rows = append(s.Rows, row(v.Name, strconv.FormatInt(v.Value, 10)))
		}
		sections = append(sections, s)
	}

	for _, c := range r.Classes {
		sections = append(sections, propertySection("Class "+c.Display, c.Properties))
	}
	for _, t := range r.Tables {
		title := "Table " + t.Name + " (" + t.Class + ", " + strconv.FormatInt(t.Count, 10) + " features)"
		sections = append(sections, propertySection(title, t.Properties))
	}

	if len(r.FeatureIDSets) > 0 {
		s := Section{
			Title:   "Feature ID sets",
			Headers: []string{"NAME", "TYPE", "FEATURES", "TABLE", "NULL ID"},
		}
		for _, f := range r.FeatureIDSets {
			s.Rows = append(s.Rows, row(
				f.Name,
				string(f.Type),
				strconv.FormatInt(f.FeatureCount, 10),
				f.PropertyTableName,
				yesNo(f.HasNullFeatureID),
			))
		}
		sections = append(sections, s)
	}
	return sections
}

func propertySection(title string, properties []PropertyReport) Section {
	s := Section{
		Title:   title,
		Headers: []string{"PROPERTY", "TYPE", "DETAILS"},
	}
	for _, p := range properties {
		s.Rows = append(s.Rows, row(p.Display, p.Type, details(p)))
	}
	return s
}

func details(p PropertyReport) string {
	var parts []string
	if p.Enum != "" {
		parts = append(parts, "enum="+p.Enum)
	}
	if p.Normalized {
		parts = append(parts, "normalized")
	}
	if p.Required {
		parts = append(parts, "required")
	}
	if p.ArraySize > 0 {
		parts = append(parts, "count="+strconv.FormatInt(p.ArraySize, 10))
	}
	for _, f := range [][2]string{
		{"offset", p.Offset},
		{"scale", p.Scale},
		{"min", p.Min},
		{"max", p.Max},
		{"noData", p.NoData},
		{"default", p.Default},
	} {
		if f[1] != "" {
			parts = append(parts, f[0]+"="+f[1])
		}
	}
	for _, w := range p.Warnings {
		parts = append(parts, "warning: "+w)
	}
	return strings.Join(parts, " ")
}
