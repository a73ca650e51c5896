package tangle

import (
	"fmt"

	"github.com/gubarz/tangle/internal/fspath"
	"github.com/gubarz/tangle/internal/parser"
)

// Interpreter runs one parse and evaluate cycle
type Interpreter interface {
	Eval() error
}

// State is the position of an interpreter within its cycle
type State int

const (
	StateClean State = iota
	StateLoaded
	StateParsed
	StateEvaluated
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateLoaded:
		return "loaded"
	case StateParsed:
		return "parsed"
	case StateEvaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}

// ============================================================================
// Base Interpreter
// ============================================================================

// BaseInterpreter parses its source, evaluates the tree, then drops it
type BaseInterpreter struct {
	parser   parser.Parser
	visitor  Visitor
	document *parser.Document
	state    State
}

// NewBaseInterpreter creates an interpreter whose source is already available
func NewBaseInterpreter(p parser.Parser, v Visitor) *BaseInterpreter {
	return &BaseInterpreter{
		parser:  p,
		visitor: v,
		state:   StateLoaded,
	}
}

// State returns the current cycle state
func (b *BaseInterpreter) State() State { return b.state }

// Eval parses, evaluates and clears. The tree is dropped even when
// evaluation fails.
func (b *BaseInterpreter) Eval() error {
	defer b.clear()

	b.document = b.parser.Parse()
	b.state = StateParsed

	if err := b.visitor.Visit(b.document); err != nil {
		return err
	}
	b.state = StateEvaluated
	return nil
}

func (b *BaseInterpreter) clear() {
	b.document = nil
	b.state = StateClean
}

// Reset loads a new source so the interpreter can be reused
func (b *BaseInterpreter) Reset(p parser.Parser) {
	b.parser = p
	b.state = StateLoaded
}

// ============================================================================
// File Interpreter
// ============================================================================

// FileInterpreter tangles a markdown file from disk
type FileInterpreter struct {
	path    fspath.Path
	format  string
	session *Session
}

// NewFileInterpreter validates format and path without touching the filesystem
func NewFileInterpreter(session *Session, path, format string) (*FileInterpreter, error) {
	if format != FormatPlaintext {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	p, err := fspath.New(session.fs, path)
	if err != nil {
		return nil, err
	}

	return &FileInterpreter{path: p, format: format, session: session}, nil
}

// Path returns the document path
func (f *FileInterpreter) Path() fspath.Path { return f.path }

// Eval reads the file and runs a base interpreter over its contents
func (f *FileInterpreter) Eval() error {
	ok, err := f.session.enter(f.path)
	if err != nil || !ok {
		return err
	}
	defer f.session.leave()

	source, err := f.session.fs.ReadFile(f.path.Expanded())
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path.Expanded(), err)
	}

	base := NewBaseInterpreter(
		parser.NewStringParser(string(source)),
		NewEvaluator(f.session, f.path),
	)
	return base.Eval()
}
