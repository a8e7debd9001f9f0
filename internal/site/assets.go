package site

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultAssetPatterns is the static file allow-list used when none is
// configured.
var DefaultAssetPatterns = []string{
	"css/**",
	"js/**",
	"images/**",
	"fonts/**",
	"data/*.json",
	"favicon.ico",
	"robots.txt",
}

// Assets serves the site's static files. Only paths matching one of the
// patterns are reachable; dotfiles never are.
type Assets struct {
	fsys     fs.FS
	patterns []string
}

// NewAssets returns an Assets over fsys. Empty patterns means
// DefaultAssetPatterns.
func NewAssets(fsys fs.FS, patterns []string) *Assets {
	if len(patterns) == 0 {
		patterns = DefaultAssetPatterns
	}
	return &Assets{fsys: fsys, patterns: patterns}
}

// Allowed reports whether name, relative to the site root, may be served.
func (a *Assets) Allowed(name string) bool {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || hidden(name) {
		return false
	}
	return matchesAny(name, a.patterns)
}

// Exists reports whether name is an allowed regular file.
func (a *Assets) Exists(name string) bool {
	if !a.Allowed(name) {
		return false
	}
	info, err := fs.Stat(a.fsys, strings.TrimPrefix(path.Clean("/"+name), "/"))
	return err == nil && info.Mode().IsRegular()
}

func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if !a.Exists(name) {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, a.fsys, name)
}

// matchesAny reports whether name matches one of patterns. Patterns without
// a slash are also tried against the base name.
func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, path.Base(name)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func hidden(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
