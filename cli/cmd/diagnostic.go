package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/helix/lang"
)

// diagnostic styles are bound to the writer they render to, so output to a
// file or pipe carries no escape sequences.
type diagnostic struct {
	location lipgloss.Style
	message  lipgloss.Style
	snippet  lipgloss.Style
}

func newDiagnostic(w io.Writer) diagnostic {
	r := lipgloss.NewRenderer(w)

	return diagnostic{
		location: r.NewStyle().Bold(true).TabWidth(lipgloss.NoTabConversion),
		message:  r.NewStyle().Foreground(lipgloss.Color("9")).TabWidth(lipgloss.NoTabConversion),
		snippet:  r.NewStyle().Faint(true).TabWidth(lipgloss.NoTabConversion),
	}
}

// report writes err to w as "name:line:col: message" followed by the
// offending source line. Errors without a position are written as
// "name: message".
func report(w io.Writer, name, src string, err error) {
	d := newDiagnostic(w)

	msg := err.Error()

	var le *lang.Error
	if errors.As(err, &le) {
		msg = le.Message()
	}

	pos, ok := lang.ErrorPosition(err)
	if !ok {
		fmt.Fprintf(w, "%s %s\n",
			d.location.Render(name+":"), d.message.Render(msg))

		return
	}

	fmt.Fprintf(w, "%s %s\n",
		d.location.Render(fmt.Sprintf("%s:%d:%d:", name, pos.Line, pos.Column)),
		d.message.Render(msg))

	// Lines are styled one at a time; a multi-line render pads them all
	// to the same width.
	snip := strings.TrimSuffix(lang.Snippet(src, pos), "\n")
	for line := range strings.Lines(snip) {
		fmt.Fprintln(w, d.snippet.Render(strings.TrimSuffix(line, "\n")))
	}
}
