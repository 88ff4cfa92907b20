package generator

import (
	"encoding/json"
	"fmt"

	"github.com/mcncl/metaval/internal/config"
	"github.com/mcncl/metaval/internal/errors"
	"gopkg.in/yaml.v3"
)

// Section is a titled table, the shape every report takes as text
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Report is a result the CLI prints
type Report interface {
	Sections() []Section
}

// Generator is responsible for building reports from analysis results
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{config: config.NewConfig()}
}

// NewGeneratorWithConfig creates a new Generator instance with custom configuration.
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{config: cfg}
}

// Render serializes a report as JSON or YAML. Text output is produced by
// the formatter from the report's sections.
func (g *Generator) Render(report Report, format string) (string, error) {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", errors.NewOutputError("failed to encode JSON", err)
		}
		return string(data) + "\n", nil
	case config.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return "", errors.NewOutputError("failed to encode YAML", err)
		}
		return string(data), nil
	default:
		return "", errors.NewOutputError(fmt.Sprintf("format '%s' cannot be rendered by the generator", format), nil)
	}
}

func row(cells ...string) []string {
	return cells
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
