//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// Version is the semantic version of the helix module embedded at build time.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text and default config paths.
	Name = "helix"
	// Description is a short summary of the project used in help output.
	Description = "A small dynamically-typed scripting language"
	// Extension is the file name extension of helix source files.
	Extension = ".hx"
)

// SemVer returns [Version] parsed as a semantic version.
// A malformed VERSION file is a build defect, reported as the error.
var SemVer = sync.OnceValues(
	func() (*semver.Version, error) {
		return semver.NewVersion(strings.TrimSpace(Version))
	},
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
