package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the name of the per-user configuration and cache
// directories.
//
// Prefix is the base name of the executable without extension, so a renamed
// binary keeps separate settings. Binaries built by tooling map to [Name]:
//   - "__debug_bin<N>" (dlv output) and "*.test" (go test output)
//   - leading dots are removed
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		base := filepath.Base(id)
		if filepath.Ext(base) == ".test" {
			return Name
		}

		id = strings.TrimSuffix(base, filepath.Ext(base))
		id = debugBin.ReplaceAllString(id, Name)
		id = strings.TrimLeft(id, ".")

		if id == "" {
			return Name
		}

		return id
	},
)

var debugBin = regexp.MustCompile(`^__debug_bin\d+$`)

// userDir joins [Prefix] onto the directory returned by base, falling back
// to home/fallback and then the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if wd, werr := os.Getwd(); werr == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigDir returns the configuration directory path,
// e.g. $XDG_CONFIG_HOME/helix.
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the cache directory path used for history and profiles,
// e.g. $XDG_CACHE_HOME/helix.
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// DirMode is the permission mode for directories created under [ConfigDir]
// and [CacheDir].
const DirMode os.FileMode = 0o700

// MkdirAll creates [ConfigDir] and [CacheDir] if they do not exist.
func MkdirAll() error {
	for _, dir := range []string{ConfigDir(), CacheDir()} {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return err
		}
	}

	return nil
}

// ConfigPath joins elem onto [ConfigDir].
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// CachePath joins elem onto [CacheDir].
func CachePath(elem ...string) string {
	return filepath.Join(append([]string{CacheDir()}, elem...)...)
}
