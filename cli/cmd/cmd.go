package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// streams holds the standard streams of a command. Nil fields mean the
// process streams.
type streams struct {
	in       io.Reader
	out, err io.Writer
}

func (s streams) stdin() io.Reader {
	if s.in == nil {
		return os.Stdin
	}

	return s.in
}

func (s streams) stdout() io.Writer {
	if s.out == nil {
		return os.Stdout
	}

	return s.out
}

func (s streams) stderr() io.Writer {
	if s.err == nil {
		return os.Stderr
	}

	return s.err
}

// stdinSource is the special source argument for reading from stdin.
const stdinSource = "-"

// stdinName is the name used for stdin in diagnostics.
const stdinName = "<stdin>"

// source is one script input named on the command line.
type source struct {
	name string // as given, or stdinName
	path string // absolute path; empty for stdin
}

func (s source) isStdin() bool { return s.path == "" }

// read returns the full text of s. Stdin is read from in.
func (s source) read(in io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)

	if s.isStdin() {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(s.path)
	}

	if err != nil {
		return "", ErrReadSource.With(slog.String("file", s.name)).Wrap(err)
	}

	return string(data), nil
}

// resolveSources maps command-line arguments to sources in order.
//
// Arguments naming the same file, whether through relative paths or
// symlinks, are kept only at their first occurrence. Every "-" collapses
// into a single stdin source at the position of the first one.
func resolveSources(args []string) ([]source, error) {
	srcs := make([]source, 0, len(args))
	seen := make([]os.FileInfo, 0, len(args))
	hasStdin := false

	for _, arg := range args {
		if arg == stdinSource {
			if !hasStdin {
				srcs = append(srcs, source{name: stdinName})
				hasStdin = true
			}

			continue
		}

		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", arg)).Wrap(err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", arg)).Wrap(err)
		}

		if info.IsDir() {
			return nil, ErrReadSource.With(slog.String("file", arg)).
				Wrap(&os.PathError{Op: "read", Path: arg, Err: errIsDir})
		}

		if sameAsSeen(info, seen) {
			continue
		}

		seen = append(seen, info)
		srcs = append(srcs, source{name: arg, path: abs})
	}

	return srcs, nil
}

func sameAsSeen(info os.FileInfo, seen []os.FileInfo) bool {
	for _, s := range seen {
		if os.SameFile(info, s) {
			return true
		}
	}

	return false
}
