package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mcncl/metaval/internal/analyzer"
	"github.com/mcncl/metaval/internal/config"
	"github.com/mcncl/metaval/internal/generator"
	"github.com/mcncl/metaval/internal/metadata"
	"github.com/mcncl/metaval/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain() *Formatter {
	cfg := config.NewConfig()
	cfg.Output.Color = false
	return NewFormatterWithConfig(cfg)
}

func TestFormatSections_Alignment(t *testing.T) {
	sections := []generator.Section{
		{
			Title:   "Fit",
			Headers: []string{"AXIS", "COMPONENT TYPE"},
			Rows: [][]string{
				{"signed", "INT16"},
				{"unsigned", "UINT8"},
			},
		},
	}

	expected := "Fit\n" +
		"AXIS      COMPONENT TYPE\n" +
		"────────  ──────────────\n" +
		"signed    INT16\n" +
		"unsigned  UINT8\n"

	assert.Equal(t, expected, plain().FormatSections(sections))
}

func TestFormatSections_MultipleSections(t *testing.T) {
	sections := []generator.Section{
		{Title: "First", Rows: [][]string{{"a", "1"}}},
		{Title: "Second", Headers: []string{"K", "V"}, Rows: [][]string{{"long key", "2"}}},
	}

	expected := "First\n" +
		"a  1\n" +
		"\n" +
		"Second\n" +
		"K         V\n" +
		"────────  ─\n" +
		"long key  2\n"

	assert.Equal(t, expected, plain().FormatSections(sections))
}

func TestFormatSections_RaggedRows(t *testing.T) {
	sections := []generator.Section{{
		Headers: []string{"NAME"},
		Rows: [][]string{
			{"x", "extra", "cells"},
			{"ü"},
		},
	}}

	out := plain().FormatSections(sections)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "x     extra  cells", lines[2])
	assert.Equal(t, "ü", lines[3], "the last cell of a row is not padded")
}

func TestFormatSections_Empty(t *testing.T) {
	assert.Equal(t, "", plain().FormatSections(nil))
	assert.Equal(t, "Nothing\n", plain().FormatSections([]generator.Section{{Title: "Nothing"}}))
}

func TestFormat_WithColor(t *testing.T) {
	report := generator.NewGenerator().FitReport("1", metadata.FitOf(json.Number("1")))

	// Colour codes depend on the terminal; the text is always there
	out := NewFormatter().Format(report)
	assert.Contains(t, out, "Fit of 1")
	assert.Contains(t, out, "UINT8")
}

func TestIntegration_ParserAnalyzerGeneratorFormatter(t *testing.T) {
	// Parser -> Analyzer -> Generator -> Formatter
	ir, err := parser.ParseString(`[[1, 2, 3], [4, 5, -6]]`)
	require.NoError(t, err)

	inference, err := analyzer.NewAnalyzer().Analyze(ir)
	require.NoError(t, err)

	report := generator.NewGenerator().InferenceReport("[[1, 2, 3], [4, 5, -6]]", inference)
	out := plain().Format(report)

	assert.Contains(t, out, "Inferred type of [[1, 2, 3], [4, 5, -6]]\n")
	assert.Contains(t, out, "type      VEC3<INT8>[]\n")
	assert.Contains(t, out, "count     2\n")
	assert.Contains(t, out, "fit       INT8 / NONE / FLOAT32\n")
}
