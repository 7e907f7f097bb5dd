package repl

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Render plain text so output can be compared whatever the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)

	os.Exit(m.Run())
}
