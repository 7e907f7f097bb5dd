package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/helix/cli/cmd/repl"
	"github.com/ardnew/helix/lang"
	"github.com/ardnew/helix/log"
	"github.com/ardnew/helix/pkg"
)

// DefaultDebounce is how long watch mode waits after the last change to a
// source before executing again.
const DefaultDebounce = 100 * time.Millisecond

// Run executes scripts. Without arguments it starts the interactive REPL
// when standard input is a terminal, and otherwise executes standard input.
type Run struct {
	Watch        bool `help:"Execute again whenever a source file changes." short:"w"`
	MaxDepth     int  `default:"256"  help:"Maximum syntactic nesting depth."`
	MaxCallDepth int  `default:"2048" help:"Maximum number of nested function calls."`

	Files []string `arg:"" help:"Script files to execute or '-' for stdin." name:"file" optional:""`

	std      streams       `kong:"-"`
	debounce time.Duration `kong:"-"`
}

// Run executes the command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	args := r.Files
	if len(args) == 0 {
		if r.interactive() {
			return repl.Run(ctx, pkg.CacheDir(), log.Default(), r.options()...)
		}

		args = []string{stdinSource}
	}

	srcs, err := resolveSources(args)
	if err != nil {
		return err
	}

	if r.Watch {
		return r.watch(ctx, srcs)
	}

	return r.runOnce(ctx, srcs)
}

func (r *Run) interactive() bool {
	if r.std.in != nil {
		return false
	}

	fd := os.Stdin.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *Run) options() []lang.Option {
	opts := []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithOutput(r.std.stdout()),
	}

	if r.MaxDepth > 0 {
		opts = append(opts, lang.WithMaxDepth(r.MaxDepth))
	}

	if r.MaxCallDepth > 0 {
		opts = append(opts, lang.WithMaxCallDepth(r.MaxCallDepth))
	}

	return opts
}

// runOnce executes srcs in order in one shared environment, so each source
// sees the bindings of those before it. The first failure is reported to
// the error stream and stops execution.
func (r *Run) runOnce(ctx context.Context, srcs []source) error {
	opts := r.options()
	env := lang.NewEnvironment()
	eval := lang.NewEvaluator(opts...)

	for _, s := range srcs {
		text, err := s.read(r.std.stdin())
		if err != nil {
			return err
		}

		log.DebugContext(ctx, "run source", slog.String("file", s.name))

		prog, err := lang.ParseString(ctx, text, opts...)
		if err == nil {
			_, err = eval.Exec(ctx, prog, env)
		}

		if err != nil {
			report(r.std.stderr(), s.name, text, err)

			return ErrScriptFailed.With(slog.String("file", s.name)).Wrap(err)
		}
	}

	return nil
}

// watch executes srcs, then again in a fresh environment after each change
// to any of them, until ctx is done. Script failures and unreadable
// sources are reported but do not end the watch.
func (r *Run) watch(ctx context.Context, srcs []source) error {
	files := make(map[string]struct{}, len(srcs))

	for _, s := range srcs {
		if s.isStdin() {
			return ErrWatchStdin
		}

		files[s.path] = struct{}{}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}

	defer w.Close()

	// Directories are watched instead of files so that editors replacing a
	// file by rename are still observed.
	for path := range files {
		if err := w.Add(filepath.Dir(path)); err != nil {
			return ErrWatch.With(slog.String("file", path)).Wrap(err)
		}
	}

	debounce := r.debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Script failures are already reported; unreadable sources are logged,
	// since editors may briefly remove a file while saving it.
	exec := func() error {
		err := r.runOnce(ctx, srcs)

		switch {
		case err == nil, errors.Is(err, ErrScriptFailed):
		case errors.Is(err, ErrReadSource):
			log.WarnContext(ctx, "watch", slog.Any("error", err))
		default:
			return err
		}

		return nil
	}

	if err := exec(); err != nil {
		return err
	}

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if _, ok := files[filepath.Clean(ev.Name)]; !ok {
				continue
			}

			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				log.TraceContext(ctx, "source changed",
					slog.String("file", ev.Name),
					slog.String("op", ev.Op.String()))

				pending = time.After(debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch", slog.Any("error", err))

		case <-pending:
			pending = nil

			if err := exec(); err != nil {
				return err
			}
		}
	}
}
