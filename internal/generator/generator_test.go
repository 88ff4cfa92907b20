package generator

import (
	"encoding/json"
	"testing"

	"github.com/mcncl/metaval/internal/analyzer"
	"github.com/mcncl/metaval/internal/config"
	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/gltfdoc"
	"github.com/mcncl/metaval/internal/metadata"
	"github.com/mcncl/metaval/internal/parser"
	"github.com/mcncl/metaval/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const parksExtension = `{
	"schema": {
		"id": "parks",
		"name": "Parks",
		"version": "2.1",
		"enums": {
			"surface": {
				"valueType": "UINT8",
				"values": [{"name": "Grass", "value": 2}, {"name": "Gravel", "value": 0}]
			}
		},
		"classes": {
			"bench": {
				"properties": {
					"seats": {"type": "SCALAR", "componentType": "UINT8", "required": true, "default": 3},
					"position": {"type": "VEC3", "componentType": "FLOAT32", "offset": [1, 2, 3]},
					"surface": {"type": "ENUM", "enumType": "surface", "default": "Grass"},
					"internal_id": {"type": "STRING"}
				}
			},
			"tree": {
				"properties": {
					"height": {"type": "SCALAR", "componentType": "FLOAT64"}
				}
			}
		}
	},
	"propertyTables": [
		{"name": "benches", "class": "bench", "count": 12, "properties": {"position": {"values": 0, "offset": [0, 0, 1]}}},
		{"class": "tree", "count": 3}
	]
}`

func accessorResult(t *testing.T, report ValueReport, accessor string) string {
	t.Helper()
	for _, r := range report.Results {
		if r.Accessor == accessor {
			return r.Result
		}
	}
	t.Fatalf("accessor %s not reported", accessor)
	return ""
}

func parksDocument(t *testing.T) *gltfdoc.Document {
	t.Helper()
	ext, err := schema.ParseString(parksExtension)
	require.NoError(t, err)
	tableIndex := int64(0)
	return &gltfdoc.Document{
		Path:     "parks.gltf",
		Metadata: ext,
		Primitives: []gltfdoc.PrimitiveFeatures{{
			FeatureIDSets: []gltfdoc.FeatureIDSet{{FeatureCount: 12, PropertyTable: &tableIndex}},
		}},
	}
}

func TestFitReport(t *testing.T) {
	g := NewGenerator()

	report := g.FitReport("200", metadata.FitOf(json.Number("200")))
	assert.Equal(t, FitSummary{Signed: "INT16", Unsigned: "UINT8", Floating: "FLOAT32"}, report.Fit)
	require.Len(t, report.Compatibility, len(AllComponentTypes))
	assert.Equal(t, Compatibility{ComponentType: "INT8", Compatible: false}, report.Compatibility[0])
	assert.Equal(t, Compatibility{ComponentType: "UINT8", Compatible: true}, report.Compatibility[1])
	assert.Equal(t, Compatibility{ComponentType: "FLOAT64", Compatible: true}, report.Compatibility[9])

	report = g.FitReport("-1.5", metadata.FitOf(json.Number("-1.5")), metadata.ComponentInt32, metadata.ComponentFloat32)
	assert.Equal(t, []Compatibility{
		{ComponentType: "INT32", Compatible: false},
		{ComponentType: "FLOAT32", Compatible: true},
	}, report.Compatibility)

	sections := report.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "Fit of -1.5", sections[0].Title)
	assert.Equal(t, []string{"signed", "NONE"}, sections[0].Rows[0])
	assert.Equal(t, []string{"FLOAT32", "yes"}, sections[1].Rows[1])
}

func TestValueReport(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		v := metadata.FromScalar(int64(42), metadata.ComponentUint8)
		report := NewGenerator().ValueReport("42", v.Type(), v)

		assert.Equal(t, "SCALAR<UINT8>", report.Type)
		assert.False(t, report.Empty)
		assert.Equal(t, "byte", report.Accessor)
		assert.Empty(t, report.ElementAccessor)
		assert.Len(t, report.Results, 15)

		assert.Equal(t, "true", accessorResult(t, report, "boolean"))
		assert.Equal(t, "42", accessorResult(t, report, "byte"))
		assert.Equal(t, "42", accessorResult(t, report, "integer64"))
		assert.Equal(t, "42", accessorResult(t, report, "uint64"))
		assert.Equal(t, "42", accessorResult(t, report, "float64"))
		assert.Equal(t, "42", accessorResult(t, report, "string"))
		assert.Equal(t, metadata.Vector3{}.String(), accessorResult(t, report, "vector3"))
		assert.Equal(t, metadata.Identity.String(), accessorResult(t, report, "matrix"))
	})

	t.Run("configured defaults", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Defaults.Integer = -7
		cfg.Defaults.Float = 0.5
		cfg.Defaults.String = "n/a"

		report := NewGeneratorWithConfig(cfg).ValueReport(`"abc"`, metadata.NewValueType(metadata.TypeString, metadata.ComponentNone, false), metadata.FromString("abc"))
		assert.Equal(t, "STRING", report.Type)
		assert.Equal(t, "string", report.Accessor)
		assert.Equal(t, "-7", accessorResult(t, report, "integer64"))
		assert.Equal(t, "-7", accessorResult(t, report, "integer"))
		assert.Equal(t, "0.5", accessorResult(t, report, "float64"))
		assert.Equal(t, "abc", accessorResult(t, report, "string"))

		requested := metadata.NewValueType(metadata.TypeVec2, metadata.ComponentInt8, false)
		report = NewGeneratorWithConfig(cfg).ValueReport("[]", requested, metadata.Value{})
		assert.True(t, report.Empty)
		assert.Equal(t, "VEC2<INT8>", report.Type, "a failed construction reports the requested type")
		assert.Equal(t, "none", report.Accessor)
		assert.Equal(t, "n/a", accessorResult(t, report, "string"))
	})

	t.Run("uint64", func(t *testing.T) {
		v := metadata.FromScalar(uint64(18446744073709551615), metadata.ComponentUint64)
		report := NewGenerator().ValueReport("18446744073709551615", v.Type(), v)

		assert.Equal(t, "SCALAR<UINT64>", report.Type)
		assert.Equal(t, "string", report.Accessor)
		assert.Equal(t, "18446744073709551615", accessorResult(t, report, "uint64"))
		assert.Equal(t, "0", accessorResult(t, report, "integer64"), "out of int64 range")
	})

	t.Run("array", func(t *testing.T) {
		arr := metadata.NewScalarArray(metadata.ComponentUint16, []uint16{1, 2, 3})
		v := metadata.FromArray(arr)
		report := NewGenerator().ValueReport("[1, 2, 3]", v.Type(), v)

		assert.Equal(t, "SCALAR<UINT16>[]", report.Type)
		assert.Equal(t, "array", report.Accessor)
		assert.Equal(t, "integer", report.ElementAccessor)
		assert.Equal(t, []string{"1", "2", "3"}, report.Elements)

		sections := report.Sections()
		require.Len(t, sections, 3)
		assert.Equal(t, "Elements", sections[2].Title)
		assert.Equal(t, []string{"2", "3"}, sections[2].Rows[2])
	})

	t.Run("enum", func(t *testing.T) {
		def := metadata.NewEnumDefinition("color", metadata.ComponentUint8, []metadata.EnumValue{
			{Name: "Red", Value: 0},
			{Name: "Green", Value: 1},
		})
		v := metadata.FromEnum(uint8(1), def)
		report := NewGenerator().ValueReport("1", v.Type(), v)

		assert.Equal(t, "ENUM<UINT8>", report.Type)
		assert.Equal(t, "color", report.Enum)
		assert.Equal(t, "Green", accessorResult(t, report, "string"))
		assert.Contains(t, report.Sections()[0].Rows, []string{"enum", "color"})
	})
}

func TestInferenceReport(t *testing.T) {
	ir, err := parser.ParseString(`[1, 2, 3, 4]`)
	require.NoError(t, err)
	inference, err := analyzer.NewAnalyzer().Analyze(ir)
	require.NoError(t, err)

	report := NewGenerator().InferenceReport("[1, 2, 3, 4]", inference)
	assert.Equal(t, "VEC4<UINT8>", report.Type)
	assert.Equal(t, []string{"SCALAR<UINT8>[]", "MAT2<UINT8>"}, report.Alternatives)
	assert.Equal(t, 0, report.Count)
	assert.Equal(t, FitSummary{Signed: "INT8", Unsigned: "UINT8", Floating: "FLOAT32"}, report.Fit)
	assert.Equal(t, "vector4", report.Accessor)
	assert.Equal(t, inference.Value.AsString(""), report.Value)

	rows := report.Sections()[0].Rows
	assert.Equal(t, []string{"type", "VEC4<UINT8>"}, rows[0])
	assert.Equal(t, []string{"alternative", "SCALAR<UINT8>[]"}, rows[1])
	assert.Equal(t, []string{"fit", "INT8 / UINT8 / FLOAT32"}, rows[3])
}

func TestSchemaReport(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Naming.PascalCaseNames = true
	cfg.Describe.Properties = []config.PropertyPattern{{Pattern: "_internal_id$", Exclude: true}}

	report, err := NewGeneratorWithConfig(cfg).SchemaReport(parksDocument(t), "")
	require.NoError(t, err)

	assert.Equal(t, "parks.gltf", report.Source)
	assert.Equal(t, "parks", report.SchemaID)
	assert.Equal(t, "Parks", report.SchemaName)
	assert.Equal(t, "2.1", report.Version)

	require.Len(t, report.Enums, 1)
	assert.Equal(t, "UINT8", report.Enums[0].ComponentType)
	assert.Equal(t, []EnumValueReport{{Name: "Gravel", Value: 0}, {Name: "Grass", Value: 2}}, report.Enums[0].Values)

	require.Len(t, report.Classes, 2)
	bench := report.Classes[0]
	assert.Equal(t, "Bench", bench.Display)
	require.Len(t, bench.Properties, 3, "internal_id is excluded")

	position := bench.Properties[0]
	assert.Equal(t, "position", position.Name)
	assert.Equal(t, "bench_position", position.Parameter)
	assert.Equal(t, "BenchPosition", position.Display)
	assert.Equal(t, "VEC3<FLOAT32>", position.Type)
	assert.Equal(t, "vector3f", position.Accessor)
	assert.Equal(t, "X=1 Y=2 Z=3", position.Offset)
	assert.Equal(t, []string{"bench_position_OFFSET"}, position.Encoded)

	seats := bench.Properties[1]
	assert.Equal(t, "seats", seats.Name)
	assert.True(t, seats.Required)
	assert.Equal(t, "3", seats.Default)
	assert.Equal(t, []string{"bench_seats_DEFAULT_VALUE"}, seats.Encoded)

	surface := bench.Properties[2]
	assert.Equal(t, "surface", surface.Enum)
	assert.Equal(t, "Grass", surface.Default)

	require.Len(t, report.Tables, 2)
	assert.Equal(t, "benches", report.Tables[0].Name)
	assert.Equal(t, int64(12), report.Tables[0].Count)
	assert.Equal(t, "X=0 Y=0 Z=1", report.Tables[0].Properties[0].Offset)
	assert.Equal(t, "benches_position", report.Tables[0].Properties[0].Parameter)
	assert.Equal(t, "tree", report.Tables[1].Name)

	require.Len(t, report.FeatureIDSets, 1)
	assert.Equal(t, "benches", report.FeatureIDSets[0].PropertyTableName)
}

func TestSchemaReport_SingleClass(t *testing.T) {
	g := NewGenerator()

	report, err := g.SchemaReport(parksDocument(t), "tree")
	require.NoError(t, err)
	require.Len(t, report.Classes, 1)
	assert.Equal(t, "tree", report.Classes[0].Display)
	require.Len(t, report.Tables, 1)
	assert.Equal(t, "tree", report.Tables[0].Class)

	_, err = g.SchemaReport(parksDocument(t), "fountain")
	assert.ErrorIs(t, err, errors.ErrUnknownClass)
}

func TestSchemaReport_Sections(t *testing.T) {
	report, err := NewGenerator().SchemaReport(parksDocument(t), "")
	require.NoError(t, err)

	var titles []string
	for _, s := range report.Sections() {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Schema",
		"Enum surface (UINT8)",
		"Class bench",
		"Class tree",
		"Table benches (bench, 12 features)",
		"Table tree (tree, 3 features)",
		"Feature ID sets",
	}, titles)

	bench := report.Sections()[2]
	assert.Equal(t, []string{"bench_seats", "SCALAR<UINT8>", "required default=3"}, bench.Rows[2])
}

func TestRender(t *testing.T) {
	g := NewGenerator()
	report := g.FitReport("1", metadata.FitOf(json.Number("1")), metadata.ComponentUint8)

	t.Run("json", func(t *testing.T) {
		out, err := g.Render(report, config.FormatJSON)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "1", decoded["input"])
		assert.Equal(t, "UINT8", decoded["fit"].(map[string]interface{})["unsigned"])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := g.Render(report, config.FormatYAML)
		require.NoError(t, err)

		var decoded FitReport
		require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, report, decoded)
		assert.Contains(t, out, "componentType: UINT8")
	})

	t.Run("text is not rendered here", func(t *testing.T) {
		_, err := g.Render(report, config.FormatText)
		assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeOutput})
	})
}
