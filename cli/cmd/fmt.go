package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/helix/lang"
	"github.com/ardnew/helix/log"
)

// Fmt parses a script and writes it back in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native helix syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as abstract syntax tree."`
}

// input is the source argument shared by the fmt subcommands.
type input struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`

	std streams `kong:"-"`
}

// parse reads and parses the source. Parse errors are reported to the error
// stream and returned as [ErrScriptFailed].
func (in *input) parse(ctx context.Context, format string) (*lang.Program, error) {
	srcs, err := resolveSources([]string{in.Source})
	if err != nil {
		return nil, err
	}

	src := srcs[0]

	text, err := src.read(in.std.stdin())
	if err != nil {
		return nil, err
	}

	prog, err := lang.ParseString(ctx, text, lang.WithLogger(log.Default()))
	if err != nil {
		report(in.std.stderr(), src.name, text, err)

		return nil, ErrScriptFailed.
			With(slog.String("file", src.name), slog.String("format", format)).
			Wrap(err)
	}

	return prog, nil
}

// Native formats input as native helix syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output; 0 joins statements on one line." short:"i"`

	input `embed:""`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := f.parse(ctx, "native")
	if err != nil {
		return err
	}

	return prog.Format(ctx, f.std.stdout(), f.Indent)
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output; 0 for compact output." short:"i"`

	input `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := j.parse(ctx, "json")
	if err != nil {
		return err
	}

	return prog.FormatJSON(ctx, j.std.stdout(), j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	input `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := y.parse(ctx, "yaml")
	if err != nil {
		return err
	}

	return prog.FormatYAML(ctx, y.std.stdout(), y.Indent)
}

// AST prints the syntax tree of input.
type AST struct {
	input `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := a.parse(ctx, "ast")
	if err != nil {
		return err
	}

	return prog.Print(ctx, a.std.stdout())
}
