package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/helix/cli/cmd"
	"github.com/ardnew/helix/lang"
	"github.com/ardnew/helix/log"
)

// resolve returns a [kong.ConfigurationLoader] that executes a helix script
// and resolves flags from its top-level bindings.
//
// The script runs in a fresh environment with output discarded. A flag named
// "log-level" is resolved from the binding log_level:
//
//	let log_level = "debug"
//	let log_pretty = false
//
// Command-line flags override configured values. A script that fails to
// parse or execute is logged and ignored.
func resolve(ctx context.Context) func(io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		prog, err := lang.ParseReader(ctx, r, lang.WithCache(false))
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		env := lang.NewEnvironment()

		_, err = lang.NewEvaluator(lang.WithOutput(io.Discard)).Exec(ctx, prog, env)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		return makeConfig(env), nil
	}
}

// config implements [kong.Resolver] over the bindings of a configuration
// script, keyed by binding name.
type config map[string]any

// makeConfig converts every non-function binding in env to a value kong can
// decode. Numbers are formatted as strings so kong parses them with the
// flag's own mapper.
func makeConfig(env *lang.Environment) config {
	c := make(config, env.Len())

	for name := range env.Names() {
		v, _ := env.Lookup(name)
		if _, ok := v.(*lang.Function); ok {
			continue
		}

		switch n := lang.ToNative(v).(type) {
		case int64:
			c[name] = strconv.FormatInt(n, 10)
		case float64:
			c[name] = strconv.FormatFloat(n, 'f', -1, 64)
		case nil:
		default:
			c[name] = n
		}
	}

	return c
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[cmd.ConfigName(flag.Name)]; ok {
		return v, nil
	}

	return nil, nil
}
