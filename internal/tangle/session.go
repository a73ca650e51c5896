// Package tangle evaluates parsed markdown documents: it writes every
// directive block to its destination and follows links into other markdown
// documents.
package tangle

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gubarz/tangle/internal/fspath"
)

// FormatPlaintext is the only source format the file interpreter reads
const FormatPlaintext = "plaintext"

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDepthExceeded     = errors.New("link depth limit exceeded")
)

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for debug traces
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithFormat sets the source format for file interpreters
func WithFormat(format string) Option {
	return func(s *Session) {
		s.format = format
	}
}

// WithExtensions sets which link target extensions are followed
func WithExtensions(exts ...string) Option {
	return func(s *Session) {
		s.extensions = exts
	}
}

// WithMaxDepth limits how deep link chains may nest. Zero means no limit.
func WithMaxDepth(depth int) Option {
	return func(s *Session) {
		s.maxDepth = depth
	}
}

// WithSkipVisited makes a run evaluate each document at most once
func WithSkipVisited(skip bool) Option {
	return func(s *Session) {
		s.skipVisited = skip
	}
}

// WithDryRun records writes without performing them
func WithDryRun(dryRun bool) Option {
	return func(s *Session) {
		s.dryRun = dryRun
	}
}

// Session carries what every nested interpretation of one run shares: the
// filesystem, options, recursion bookkeeping and the report.
type Session struct {
	fs          fspath.FS
	logger      *slog.Logger
	format      string
	extensions  []string
	maxDepth    int
	skipVisited bool
	dryRun      bool

	depth   int
	visited map[string]bool
	report  *Report
}

// NewSession creates a session over fs
func NewSession(fs fspath.FS, opts ...Option) *Session {
	s := &Session{
		fs:         fs,
		logger:     slog.New(slog.DiscardHandler),
		format:     FormatPlaintext,
		extensions: []string{".md"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

// FS returns the session filesystem
func (s *Session) FS() fspath.FS { return s.fs }

// Tangle runs a full cycle on the markdown file at path and everything it links to
func (s *Session) Tangle(path string) (*Report, error) {
	s.reset()

	interp, err := NewFileInterpreter(s, path, s.format)
	if err != nil {
		return nil, err
	}
	if err := interp.Eval(); err != nil {
		return s.report, err
	}
	return s.report, nil
}

func (s *Session) reset() {
	s.depth = 0
	s.visited = make(map[string]bool)
	s.report = &Report{DryRun: s.dryRun}
}

// isMarkdown reports whether ext is one of the followed extensions
func (s *Session) isMarkdown(ext string) bool {
	for _, e := range s.extensions {
		if ext != "" && ext == "."+strings.TrimPrefix(e, ".") {
			return true
		}
	}
	return false
}

// enter registers the start of a document evaluation. It returns false when
// the document should be skipped.
func (s *Session) enter(path fspath.Path) (bool, error) {
	if s.maxDepth > 0 && s.depth >= s.maxDepth {
		return false, fmt.Errorf("%w: %s at depth %d", ErrDepthExceeded, path, s.depth)
	}

	if s.skipVisited {
		key, err := s.fs.Abs(path.Expanded())
		if err != nil {
			key = path.Expanded()
		}
		if s.visited[key] {
			s.logger.Debug("document already tangled", slog.String("path", key))
			return false, nil
		}
		s.visited[key] = true
	}

	s.depth++
	s.report.Documents = append(s.report.Documents, path.Expanded())
	return true, nil
}

func (s *Session) leave() {
	s.depth--
}
