// Package fspath resolves tangle destinations and link targets against the
// filesystem. All filesystem access goes through the FS capability so the
// resolution rules can be exercised against an in-memory filesystem.
package fspath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// FS is the set of path and filesystem services the resolver depends on
type FS interface {
	Expand(path string) string
	Join(elem ...string) string
	Dir(path string) string
	IsAbs(path string) bool
	Abs(path string) (string, error)
	Exists(path string) bool
	IsFile(path string) bool
	IsDir(path string) bool
	MkdirAll(path string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// AferoFS implements FS on top of an afero filesystem
type AferoFS struct {
	fs   afero.Fs
	home string
}

// NewAferoFS wraps fs. home is substituted for a leading "~"; an empty home
// disables expansion.
func NewAferoFS(fs afero.Fs, home string) *AferoFS {
	return &AferoFS{fs: fs, home: home}
}

// NewOSFS returns an FS backed by the real filesystem and the current user's home
func NewOSFS() *AferoFS {
	home, _ := os.UserHomeDir()
	return NewAferoFS(afero.NewOsFs(), home)
}

// Expand replaces a leading "~" or "~/" with the home directory. Other
// paths, including "~user" forms, are returned unchanged.
func (a *AferoFS) Expand(path string) string {
	if a.home == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	if path == "~" {
		return a.home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(a.home, path[2:])
	}
	return path
}

// Join joins path elements with the OS separator
func (a *AferoFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Dir returns all but the last element of path
func (a *AferoFS) Dir(path string) string {
	return filepath.Dir(path)
}

// IsAbs reports whether path is absolute
func (a *AferoFS) IsAbs(path string) bool {
	return filepath.IsAbs(path)
}

// Abs returns an absolute form of path
func (a *AferoFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Exists reports whether path names any file or directory
func (a *AferoFS) Exists(path string) bool {
	ok, err := afero.Exists(a.fs, path)
	return err == nil && ok
}

// IsFile reports whether path is a regular file
func (a *AferoFS) IsFile(path string) bool {
	info, err := a.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path is a directory
func (a *AferoFS) IsDir(path string) bool {
	ok, err := afero.IsDir(a.fs, path)
	return err == nil && ok
}

// MkdirAll creates path and any missing parents
func (a *AferoFS) MkdirAll(path string) error {
	return a.fs.MkdirAll(path, dirMode)
}

// ReadFile returns the contents of path
func (a *AferoFS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

// WriteFile truncates and rewrites path in place
func (a *AferoFS) WriteFile(path string, data []byte) error {
	return afero.WriteFile(a.fs, path, data, fileMode)
}
