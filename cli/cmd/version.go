package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/ardnew/helix/pkg"
)

// Version prints the program version.
type Version struct {
	Short   bool   `help:"Print only the version number."                               short:"s"`
	Require string `help:"Fail unless the version satisfies this constraint (e.g. '^0.1')." placeholder:"CONSTRAINT"`

	std streams `kong:"-"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ver, err := pkg.SemVer()
	if err != nil {
		return ErrVersion.With(slog.String("version", pkg.Version)).Wrap(err)
	}

	if v.Require != "" {
		if err := satisfies(ver, v.Require); err != nil {
			return err
		}
	}

	if v.Short {
		_, err = fmt.Fprintln(v.std.stdout(), ver)

		return err
	}

	_, err = fmt.Fprintf(v.std.stdout(), "%s %s (%s %s/%s)\n",
		pkg.Name, ver, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	return err
}

func satisfies(ver *semver.Version, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return ErrVersion.With(slog.String("constraint", constraint)).Wrap(err)
	}

	if ok, errs := c.Validate(ver); !ok {
		return ErrVersionMismatch.
			With(slog.String("version", ver.String())).
			With(slog.String("constraint", constraint)).
			Wrap(errors.Join(errs...))
	}

	return nil
}
