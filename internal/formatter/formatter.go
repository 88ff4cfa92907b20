package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mcncl/metaval/internal/config"
	"github.com/mcncl/metaval/internal/generator"
)

// Formatter is responsible for rendering reports as aligned text tables
type Formatter struct {
	noColor bool
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// NewFormatterWithConfig creates a Formatter that colours output only when
// the configuration allows it
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{noColor: !cfg.Output.Color}
}

// Format renders every section of a report
func (f *Formatter) Format(report generator.Report) string {
	return f.FormatSections(report.Sections())
}

// FormatSections renders sections as titled tables separated by blank lines.
// Columns are padded to their widest cell; the last column is not padded.
func (f *Formatter) FormatSections(sections []generator.Section) string {
	title := f.style(color.Bold)
	header := f.style(color.Bold, color.FgCyan)
	gray := f.style(color.FgHiBlack)

	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Title != "" {
			b.WriteString(title.Sprint(section.Title))
			b.WriteString("\n")
		}

		widths := columnWidths(section)
		if len(widths) == 0 {
			continue
		}

		if len(section.Headers) > 0 {
			writeRow(&b, section.Headers, widths, header)
			separators := make([]string, len(widths))
			for j, w := range widths {
				separators[j] = strings.Repeat("─", w)
			}
			writeRow(&b, separators, widths, gray)
		}
		for _, r := range section.Rows {
			writeRow(&b, r, widths, nil)
		}
	}
	return b.String()
}

func (f *Formatter) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if f.noColor {
		c.DisableColor()
	}
	return c
}

// columnWidths calculates the width of each column in runes
func columnWidths(section generator.Section) []int {
	n := len(section.Headers)
	for _, r := range section.Rows {
		if len(r) > n {
			n = len(r)
		}
	}

	widths := make([]int, n)
	measure := func(cells []string) {
		for i, cell := range cells {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(section.Headers)
	for _, r := range section.Rows {
		measure(r)
	}
	return widths
}

func writeRow(b *strings.Builder, cells []string, widths []int, c *color.Color) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i < len(cells)-1 {
			cell = padRight(cell, widths[i])
		}
		if c != nil {
			cell = c.Sprint(cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("\n")
}

// padRight pads a string with spaces on the right to reach the target width
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
