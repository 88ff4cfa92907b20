package generator

import (
	"strconv"

	"github.com/mcncl/metaval/internal/analyzer"
	"github.com/mcncl/metaval/internal/metadata"
)

// AllComponentTypes lists the component types a fit is checked against
var AllComponentTypes = metadata.AllComponentTypes

// FitSummary is the narrowest component type on each axis
type FitSummary struct {
	Signed   string `json:"signed" yaml:"signed"`
	Unsigned string `json:"unsigned" yaml:"unsigned"`
	Floating string `json:"floating" yaml:"floating"`
}

func summarize(fit metadata.ComponentTypeFit) FitSummary {
	return FitSummary{
		Signed:   fit.Signed.String(),
		Unsigned: fit.Unsigned.String(),
		Floating: fit.Floating.String(),
	}
}

// Compatibility says whether a fit can be stored as a component type
type Compatibility struct {
	ComponentType string `json:"componentType" yaml:"componentType"`
	Compatible    bool   `json:"compatible" yaml:"compatible"`
}

// FitReport is the result of the fit command
type FitReport struct {
	Input         string          `json:"input" yaml:"input"`
	Fit           FitSummary      `json:"fit" yaml:"fit"`
	Compatibility []Compatibility `json:"compatibility" yaml:"compatibility"`
}

// FitReport checks fit against targets, or against every component type
// when none are given
func (g *Generator) FitReport(input string, fit metadata.ComponentTypeFit, targets ...metadata.ComponentType) FitReport {
	if len(targets) == 0 {
		targets = AllComponentTypes
	}
	report := FitReport{Input: input, Fit: summarize(fit)}
	for _, target := range targets {
		report.Compatibility = append(report.Compatibility, Compatibility{
			ComponentType: target.String(),
			Compatible:    fit.IsCompatibleWithComponentType(target),
		})
	}
	return report
}

// Sections implements Report
func (r FitReport) Sections() []Section {
	fit := Section{
		Title:   "Fit of " + r.Input,
		Headers: []string{"AXIS", "COMPONENT TYPE"},
		Rows: [][]string{
			row("signed", r.Fit.Signed),
			row("unsigned", r.Fit.Unsigned),
			row("floating", r.Fit.Floating),
		},
	}
	compatibility := Section{
		Title:   "Compatibility",
		Headers: []string{"COMPONENT TYPE", "COMPATIBLE"},
	}
	for _, c := range r.Compatibility {
		compatibility.Rows = append(compatibility.Rows, row(c.ComponentType, yesNo(c.Compatible)))
	}
	return []Section{fit, compatibility}
}

// AccessorResult is what one accessor returned
type AccessorResult struct {
	Accessor string `json:"accessor" yaml:"accessor"`
	Result   string `json:"result" yaml:"result"`
}

// ValueReport is the result of the value command
type ValueReport struct {
	Input           string           `json:"input" yaml:"input"`
	Type            string           `json:"type" yaml:"type"`
	Empty           bool             `json:"empty" yaml:"empty"`
	Accessor        string           `json:"accessor" yaml:"accessor"`
	ElementAccessor string           `json:"elementAccessor,omitempty" yaml:"elementAccessor,omitempty"`
	Enum            string           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Results         []AccessorResult `json:"results" yaml:"results"`
	Elements        []string         `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// ValueReport reads v through every accessor, passing the configured
// defaults. requested is the type v was built as; it is reported when
// construction failed and v is empty.
func (g *Generator) ValueReport(input string, requested metadata.ValueType, v metadata.Value) ValueReport {
	vt := v.Type()
	if v.IsEmpty() {
		vt = requested
	}
	report := ValueReport{
		Input:    input,
		Type:     vt.String(),
		Empty:    v.IsEmpty(),
		Accessor: v.AccessorKind().String(),
	}
	if v.Type().IsArray {
		report.ElementAccessor = v.ArrayElementAccessorKind().String()
	}
	if def := v.EnumDefinition(); def != nil {
		report.Enum = def.Name()
	}

	for kind := metadata.AccessorBoolean; kind <= metadata.AccessorString; kind++ {
		report.Results = append(report.Results, AccessorResult{
			Accessor: kind.String(),
			Result:   g.read(v, kind),
		})
		if kind == metadata.AccessorInteger64 {
			// UINT64 has no accessor kind of its own but reads losslessly here
			report.Results = append(report.Results, AccessorResult{
				Accessor: "uint64",
				Result:   strconv.FormatUint(v.AsUint64(uint64(max(g.config.Defaults.Integer, 0))), 10),
			})
		}
	}

	arr := v.Array()
	for i := 0; i < arr.Len(); i++ {
		report.Elements = append(report.Elements, arr.Value(i).AsString(g.config.Defaults.String))
	}
	return report
}

// read formats the result of the accessor named by kind
func (g *Generator) read(v metadata.Value, kind metadata.AccessorKind) string {
	d := g.config.Defaults
	switch kind {
	case metadata.AccessorBoolean:
		return strconv.FormatBool(v.AsBool(false))
	case metadata.AccessorByte:
		return strconv.FormatUint(uint64(v.AsByte(uint8(d.Integer))), 10)
	case metadata.AccessorInteger:
		return strconv.FormatInt(int64(v.AsInt32(int32(d.Integer))), 10)
	case metadata.AccessorInteger64:
		return strconv.FormatInt(v.AsInt64(d.Integer), 10)
	case metadata.AccessorFloat:
		return strconv.FormatFloat(float64(v.AsFloat32(float32(d.Float))), 'g', -1, 32)
	case metadata.AccessorFloat64:
		return strconv.FormatFloat(v.AsFloat64(d.Float), 'g', -1, 64)
	case metadata.AccessorIntPoint:
		return v.AsIntPoint(metadata.IntPoint{}).String()
	case metadata.AccessorVector2:
		return v.AsVector2(metadata.Vector2{}).String()
	case metadata.AccessorIntVector:
		return v.AsIntVector(metadata.IntVector{}).String()
	case metadata.AccessorVector3f:
		return v.AsVector3f(metadata.Vector3f{}).String()
	case metadata.AccessorVector3:
		return v.AsVector3(metadata.Vector3{}).String()
	case metadata.AccessorVector4:
		return v.AsVector4(metadata.Vector4{}).String()
	case metadata.AccessorMatrix:
		return v.AsMatrix(metadata.Identity).String()
	case metadata.AccessorString:
		return v.AsString(d.String)
	default:
		return ""
	}
}

// Sections implements Report
func (r ValueReport) Sections() []Section {
	summary := Section{
		Title:   "Value " + r.Input,
		Headers: []string{"FIELD", "VALUE"},
		Rows: [][]string{
			row("type", r.Type),
			row("empty", yesNo(r.Empty)),
			row("accessor", r.Accessor),
		},
	}
	if r.ElementAccessor != "" {
		summary.Rows = append(summary.Rows, row("element accessor", r.ElementAccessor))
	}
	if r.Enum != "" {
		summary.Rows = append(summary.Rows, row("enum", r.Enum))
	}

	results := Section{
		Title:   "Accessors",
		Headers: []string{"ACCESSOR", "RESULT"},
	}
	for _, res := range r.Results {
		results.Rows = append(results.Rows, row(res.Accessor, res.Result))
	}

	sections := []Section{summary, results}
	if len(r.Elements) > 0 {
		elements := Section{
			Title:   "Elements",
			Headers: []string{"INDEX", "VALUE"},
		}
		for i, e := range r.Elements {
			elements.Rows = append(elements.Rows, row(strconv.Itoa(i), e))
		}
		sections = append(sections, elements)
	}
	return sections
}

// InferenceReport is the result of the infer command
type InferenceReport struct {
	Input        string     `json:"input" yaml:"input"`
	Type         string     `json:"type" yaml:"type"`
	Alternatives []string   `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Count        int        `json:"count,omitempty" yaml:"count,omitempty"`
	Fit          FitSummary `json:"fit" yaml:"fit"`
	Accessor     string     `json:"accessor" yaml:"accessor"`
	Value        string     `json:"value" yaml:"value"`
}

// InferenceReport reports the type the analyzer inferred
func (g *Generator) InferenceReport(input string, inference analyzer.Inference) InferenceReport {
	report := InferenceReport{
		Input:    input,
		Type:     inference.ValueType.String(),
		Count:    inference.Count,
		Fit:      summarize(inference.Fit),
		Accessor: inference.Value.AccessorKind().String(),
		Value:    inference.Value.AsString(g.config.Defaults.String),
	}
	for _, alt := range inference.Alternatives {
		report.Alternatives = append(report.Alternatives, alt.String())
	}
	return report
}

// Sections implements Report
func (r InferenceReport) Sections() []Section {
	s := Section{
		Title:   "Inferred type of " + r.Input,
		Headers: []string{"FIELD", "VALUE"},
		Rows:    [][]string{row("type", r.Type)},
	}
	for _, alt := range r.Alternatives {
		s.Rows = append(s.Rows, row("alternative", alt))
	}
	if r.Count > 0 {
		s.Rows = append(s.Rows, row("count", strconv.Itoa(r.Count)))
	}
	s.Rows = append(s.Rows,
		row("fit", r.Fit.Signed+" / "+r.Fit.Unsigned+" / "+r.Fit.Floating),
		row("accessor", r.Accessor),
		row("value", r.Value),
	)
	return []Section{s}
}
