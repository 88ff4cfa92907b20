package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/metaval/internal/analyzer"
	"github.com/mcncl/metaval/internal/config"
	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/formatter"
	"github.com/mcncl/metaval/internal/generator"
	"github.com/mcncl/metaval/internal/gltfdoc"
	"github.com/mcncl/metaval/internal/metadata"
	"github.com/mcncl/metaval/internal/models"
	"github.com/mcncl/metaval/internal/parser"
	"github.com/mcncl/metaval/internal/schema"
	"go.uber.org/zap"
)

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to a config file. Defaults to the nearest .metaval.yml." short:"c" type:"path"`
	Format  string           `help:"Output format: text, json or yaml. Overrides the config file." short:"f"`
	NoColor bool             `help:"Disable coloured text output."`
	Output  string           `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Fit      FitCmd      `cmd:"" help:"Show the narrowest component types a JSON number or array of numbers fits."`
	Value    ValueCmd    `cmd:"" help:"Build a metadata value from JSON and read it through every accessor."`
	Infer    InferCmd    `cmd:"" help:"Infer the metadata type of a JSON value."`
	Describe DescribeCmd `cmd:"" help:"Describe the structural metadata of a glTF document or schema file."`
}

// Context holds the runtime context shared by every command
type Context struct {
	Config *config.Config
	Logger *zap.Logger
	Out    io.Writer
	Output string
}

// Version information
const (
	Version = "0.1.0"
)

// InputFlags selects where a command reads its JSON from
type InputFlags struct {
	JSON  string `arg:"" optional:"" help:"JSON value. If not specified, reads from --input or stdin."`
	Input string `help:"Path to input JSON file." short:"i" type:"path"`
}

// FitCmd reports the fit of a number or array of numbers
type FitCmd struct {
	InputFlags
	Type []string `help:"Component types to check, such as UINT8. Defaults to all of them." short:"t"`
}

// Run executes the fit command
func (c *FitCmd) Run(ctx *Context) error {
	label, ir, err := c.parse()
	if err != nil {
		return err
	}

	targets, err := parseComponentTypes(c.Type)
	if err != nil {
		return err
	}

	var fit metadata.ComponentTypeFit
	if arr, ok := models.Array(ir.Root); ok {
		fit = metadata.FitOfArray(arr)
	} else {
		fit = metadata.FitOf(ir.Root)
	}
	ctx.Logger.Debug("computed fit",
		zap.Stringer("signed", fit.Signed),
		zap.Stringer("unsigned", fit.Unsigned),
		zap.Stringer("floating", fit.Floating),
	)

	report := generator.NewGeneratorWithConfig(ctx.Config).FitReport(label, fit, targets...)
	return ctx.emit(report)
}

// ValueCmd materializes a value of a declared type
type ValueCmd struct {
	InputFlags
	Type      string `help:"Value type: BOOLEAN, STRING, SCALAR, VEC2-4, MAT2-4 or ENUM." short:"t" required:""`
	Component string `help:"Component type of numeric values, such as FLOAT32." name:"component"`
	Array     bool   `help:"The value is an array of the type." short:"a"`
	Schema    string `help:"glTF document or schema file that defines the enum of ENUM values." short:"s" type:"path"`
	Enum      string `help:"Name of the enum of ENUM values." short:"e"`
}

// Run executes the value command
func (c *ValueCmd) Run(ctx *Context) error {
	label, ir, err := c.parse()
	if err != nil {
		return err
	}

	t, ok := metadata.ParseType(c.Type)
	if !ok {
		return errors.NewInputError(fmt.Sprintf("unknown type '%s'", c.Type), errors.ErrUnknownType)
	}

	var ct metadata.ComponentType
	var def *metadata.EnumDefinition
	node := ir.Root
	switch {
	case t == metadata.TypeEnum:
		def, err = loadEnum(c.Schema, c.Enum)
		if err != nil {
			return err
		}
		ct = def.ComponentType()
		node = schema.EnumNamesToValues(node, def)
	case t.IsNumeric():
		targets, err := parseComponentTypes([]string{c.Component})
		if err != nil {
			return err
		}
		ct = targets[0]
	}

	vt := metadata.NewValueType(t, ct, c.Array)
	v := metadata.FromJSON(node, vt, def)
	if v.IsEmpty() {
		ctx.Logger.Warn("value cannot be represented", zap.String("input", label), zap.Stringer("type", vt))
	} else {
		ctx.Logger.Debug("built value", zap.Stringer("type", vt), zap.Stringer("accessor", v.AccessorKind()))
	}

	report := generator.NewGeneratorWithConfig(ctx.Config).ValueReport(label, vt, v)
	return ctx.emit(report)
}

// InferCmd infers the type of a JSON value
type InferCmd struct {
	InputFlags
}

// Run executes the infer command
func (c *InferCmd) Run(ctx *Context) error {
	label, ir, err := c.parse()
	if err != nil {
		return err
	}

	inference, err := analyzer.NewAnalyzerWithConfig(ctx.Config).Analyze(ir)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("inferred type",
		zap.Stringer("type", inference.ValueType),
		zap.Int("alternatives", len(inference.Alternatives)),
	)

	report := generator.NewGeneratorWithConfig(ctx.Config).InferenceReport(label, inference)
	return ctx.emit(report)
}

// DescribeCmd describes the metadata of a document
type DescribeCmd struct {
	Path  string `arg:"" help:"Path to a .gltf or .glb document, or a JSON schema file." type:"path"`
	Class string `help:"Describe only this class and its tables." short:"C"`
}

// Run executes the describe command
func (c *DescribeCmd) Run(ctx *Context) error {
	doc, err := gltfdoc.Load(c.Path)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("loaded document",
		zap.String("path", c.Path),
		zap.Int("primitives", len(doc.Primitives)),
	)

	report, err := generator.NewGeneratorWithConfig(ctx.Config).SchemaReport(doc, c.Class)
	if err != nil {
		return err
	}
	return ctx.emit(report)
}

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("metaval"),
		kong.Description("Inspect glTF EXT_structural_metadata values and schemas"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("metaval version %s", Version)},
	)

	// Parse the command line arguments
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// kong.UsageOnError() has already shown the usage
		os.Exit(1)
	}

	runCtx, err := newContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	defer func() { _ = runCtx.Logger.Sync() }()

	if err := ctx.Run(runCtx); err != nil {
		runCtx.Logger.Debug("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: metaval --help\n")
		os.Exit(1)
	}
}

// newContext loads the configuration, letting CLI flags take precedence,
// and builds the logger
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Format, CLI.NoColor, CLI.Debug)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to load configuration: %v", err), err)
	}

	logger := newLogger(cfg.Dev.Debug)
	if configPath != "" {
		logger.Debug("loaded config", zap.String("path", configPath))
	}

	return &Context{
		Config: cfg,
		Logger: logger,
		Out:    os.Stdout,
		Output: CLI.Output,
	}, nil
}

// newLogger returns a development logger when debugging and a no-op logger
// otherwise
func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// parse reads and parses the command's JSON input. The label names the
// input in report titles.
func (in InputFlags) parse() (string, models.IntermediateRepresentation, error) {
	if in.JSON != "" && in.Input != "" {
		return "", models.IntermediateRepresentation{}, errors.NewInputError("pass either a JSON argument or --input, not both", errors.ErrMultipleJSON)
	}

	if in.JSON != "" {
		ir, err := parser.ParseString(in.JSON)
		return in.JSON, ir, err
	}

	if in.Input != "" {
		ir, err := parser.ParseFile(in.Input)
		return in.Input, ir, err
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", models.IntermediateRepresentation{}, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		return "", models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(strings.TrimSpace(string(jsonData))) == 0 {
		return "", models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	ir, err := parser.ParseString(string(jsonData))
	return strings.TrimSpace(string(jsonData)), ir, err
}

// parseComponentTypes reads component type names
func parseComponentTypes(names []string) ([]metadata.ComponentType, error) {
	types := make([]metadata.ComponentType, 0, len(names))
	for _, name := range names {
		ct, ok := metadata.ParseComponentType(name)
		if !ok {
			if name == "" {
				return nil, errors.NewInputError("numeric types need a component type, such as --component UINT8", errors.ErrUnknownType)
			}
			return nil, errors.NewInputError(fmt.Sprintf("unknown component type '%s'", name), errors.ErrUnknownType)
		}
		types = append(types, ct)
	}
	return types, nil
}

// loadEnum finds an enum definition in a document or schema file
func loadEnum(path, name string) (*metadata.EnumDefinition, error) {
	if path == "" || name == "" {
		return nil, errors.NewInputError("ENUM values need --schema and --enum", errors.ErrUnknownEnum)
	}

	doc, err := gltfdoc.Load(path)
	if err != nil {
		return nil, err
	}
	r, err := schema.NewResolver(doc.Metadata)
	if err != nil {
		return nil, err
	}

	def, ok := r.Enum(name)
	if !ok {
		return nil, errors.NewSchemaError(fmt.Sprintf("enum '%s' is not defined in '%s'", name, path), errors.ErrUnknownEnum)
	}
	return def, nil
}

// emit renders report in the configured format and writes it out
func (ctx *Context) emit(report generator.Report) error {
	if ctx.Config.Output.Format == config.FormatText {
		return ctx.writeOutput(formatter.NewFormatterWithConfig(ctx.Config).Format(report))
	}

	out, err := generator.NewGeneratorWithConfig(ctx.Config).Render(report, ctx.Config.Output.Format)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// writeOutput writes a rendered report to file or stdout
func (ctx *Context) writeOutput(out string) error {
	if ctx.Output != "" {
		// Write to file
		err := os.WriteFile(ctx.Output, []byte(out), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", ctx.Output), err)
		}
		ctx.Logger.Debug("report written", zap.String("path", ctx.Output))
		return nil
	}

	if _, err := io.WriteString(ctx.Out, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
