package tangle

import (
	"fmt"
	"log/slog"

	"github.com/gubarz/tangle/internal/fspath"
)

// Command is a single unit of work triggered by the evaluator
type Command interface {
	Execute() error
}

// ============================================================================
// Copy
// ============================================================================

// CopyToFile writes Content to Path, replacing whatever was there
type CopyToFile struct {
	Path    fspath.Path
	Content string
}

// Execute creates missing parent directories and overwrites the target
func (c *CopyToFile) Execute() error {
	fs := c.Path.FS()
	target := c.Path.Expanded()

	if !c.Path.FileOrDirExists() {
		if err := fs.MkdirAll(c.Path.Dir()); err != nil {
			return fmt.Errorf("mkdir %s: %w", c.Path.Dir(), err)
		}
	}

	if err := fs.WriteFile(target, []byte(c.Content)); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// ============================================================================
// Interpret
// ============================================================================

// InterpretFile tangles another markdown document within the same session
type InterpretFile struct {
	Path    fspath.Path
	Session *Session
}

// Execute does nothing unless Path is an existing regular file with a
// markdown extension
func (c *InterpretFile) Execute() error {
	logger := c.Session.logger

	if !c.Path.IsFile() {
		logger.Debug("link target is not a file", slog.String("path", c.Path.Expanded()))
		return nil
	}
	if !c.Session.isMarkdown(c.Path.Ext()) {
		logger.Debug("link target is not markdown", slog.String("path", c.Path.Expanded()))
		return nil
	}

	interp, err := NewFileInterpreter(c.Session, c.Path.Expanded(), c.Session.format)
	if err != nil {
		return err
	}
	return interp.Eval()
}
