package fspath

import (
	"errors"
	"strings"
)

// ErrEmptyPath is returned when a Path is built from an empty string
var ErrEmptyPath = errors.New("path cannot be empty")

// Path is a value object over a raw path string. Everything else is derived
// from the raw string on demand.
type Path struct {
	raw string
	fs  FS
}

// New creates a Path over raw
func New(fs FS, raw string) (Path, error) {
	if raw == "" {
		return Path{}, ErrEmptyPath
	}
	return Path{raw: raw, fs: fs}, nil
}

// Raw returns the path as given
func (p Path) Raw() string { return p.raw }

func (p Path) String() string { return p.raw }

// FS returns the filesystem the path resolves against
func (p Path) FS() FS { return p.fs }

// Expanded returns the path with the home directory resolved
func (p Path) Expanded() string {
	return p.fs.Expand(p.raw)
}

// Dir returns the directory containing the expanded path
func (p Path) Dir() string {
	return p.fs.Dir(p.Expanded())
}

// Ext returns the extension of the final path element including its dot,
// or "" when it has none
func (p Path) Ext() string {
	base := p.raw
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[i:]
	}
	return ""
}

// FileOrDirExists reports whether the path itself or its parent directory
// exists, i.e. whether a write can proceed without creating directories
func (p Path) FileOrDirExists() bool {
	if p.fs.Exists(p.Expanded()) {
		return true
	}
	dir := p.Dir()
	return dir == "" || dir == "." || p.fs.Exists(dir)
}

// IsFile reports whether the expanded path is a regular file
func (p Path) IsFile() bool {
	return p.fs.IsFile(p.Expanded())
}

// IsDir reports whether the expanded path is a directory
func (p Path) IsDir() bool {
	return p.fs.IsDir(p.Expanded())
}

// Resolve anchors target to this path's directory. Absolute targets, after
// home expansion, are returned as they are.
func (p Path) Resolve(target string) (Path, error) {
	if target == "" {
		return Path{}, ErrEmptyPath
	}
	if p.fs.IsAbs(p.fs.Expand(target)) {
		return New(p.fs, target)
	}
	return New(p.fs, p.fs.Join(p.Dir(), target))
}

// Equal compares raw strings
func (p Path) Equal(o Path) bool {
	return p.raw == o.raw
}
