package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/ardnew/helix/lang"
	"github.com/ardnew/helix/log"
	"github.com/ardnew/helix/pkg"
	"github.com/ardnew/helix/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// configHeader opens every generated configuration file.
const configHeader = `# %s configuration
#
# Each top-level binding sets the default of the command-line flag with the
# same name, with dashes written as underscores. Flags given on the command
# line take precedence.

`

// ConfigName returns the binding name used in configuration files for the
// command-line flag named flag.
func ConfigName(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	err = os.MkdirAll(filepath.Dir(confPath), pkg.DirMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = i.write(ctx, file)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

func (i *Init) write(ctx context.Context, w io.Writer) error {
	if _, err := fmt.Fprintf(w, configHeader, pkg.Name); err != nil {
		return err
	}

	return i.buildProgram(ctx).Format(ctx, w, defaultConfigIndent)
}

// buildProgram constructs the configuration script from current flag values.
func (i *Init) buildProgram(ctx context.Context) *lang.Program {
	ktx := kongContextFrom(ctx)

	b := lang.NewBuilder()
	prefixIgnore := []string{"help", profile.Tag}

	var stmts []lang.Stmt

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		v := nativeFlagValue(ktx.FlagValue(flag))
		if v == nil {
			continue
		}

		lit := b.Native(v)
		if lit == nil {
			continue
		}

		stmts = append(stmts, b.Let(ConfigName(flag.Name), lit))
	}

	return b.Program(stmts...)
}

// nativeFlagValue converts a flag value to a type accepted by
// [lang.Builder.Native], or nil if it has no script representation.
// Named types such as enumerations convert by their underlying kind.
func nativeFlagValue(val any) any {
	if val == nil {
		return nil
	}

	v := reflect.ValueOf(val)

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()

	case reflect.String:
		if v.Len() == 0 {
			return nil
		}

		return v.String()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()

	case reflect.Float32, reflect.Float64:
		return v.Float()

	default:
		return nil
	}
}
