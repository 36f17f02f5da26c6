// Package source provides the SourceLoader collaborator: given a path it
// produces a {path, bytes} value, and given a literal string it produces a
// synthetic file under a caller-chosen label. Everything downstream (lexer,
// preprocessor) only ever sees a *Source, never talks to the filesystem
// directly — mirroring how internal/fs isolates esbuild's own phases from
// the OS.
package source

import (
	"os"

	"github.com/slaide/pacc-sub000/internal/diag"
)

// Source is the {file_label, bytes} value every phase of the pipeline
// consumes. Label is what gets printed in diagnostics; Path is the
// filesystem path used to resolve further #include directives relative to
// this file (empty for synthetic sources).
type Source struct {
	Label    string
	Path     string
	Contents []byte
}

// Loader is the SourceLoader collaborator. The core pipeline depends only on
// this interface, never on *os.File or the fs package directly, so tests can
// substitute an in-memory loader the way esbuild's parser tests substitute
// fs.MockFS.
type Loader interface {
	// Load reads the file at path and returns a Source labeled with that
	// path. It returns a *diag.Error (category IO) if the file cannot be
	// opened.
	Load(path string) (*Source, error)

	// Exists reports whether path refers to a readable regular file,
	// without loading its contents — used by the preprocessor's #include
	// search-path resolution (spec §4.2).
	Exists(path string) bool
}

// FromString builds a synthetic Source for a literal string, as used by
// tests that exercise the pipeline without touching the filesystem.
func FromString(label string, contents string) *Source {
	return &Source{Label: label, Path: "", Contents: []byte(contents)}
}

// realLoader is the default Loader, backed directly by the OS filesystem.
type realLoader struct{}

// NewRealLoader returns a Loader that reads files from the real filesystem.
func NewRealLoader() Loader {
	return realLoader{}
}

func (realLoader) Load(path string) (*Source, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Errorf(diag.IO, diag.Loc{File: path}, "could not read file: %s", err)
	}
	return &Source{Label: path, Path: path, Contents: contents}, nil
}

func (realLoader) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
