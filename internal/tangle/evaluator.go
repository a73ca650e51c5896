package tangle

import (
	"fmt"
	"log/slog"

	"github.com/gubarz/tangle/internal/fspath"
	"github.com/gubarz/tangle/internal/parser"
)

// Visitor walks a syntax tree
type Visitor interface {
	Visit(node parser.Node) error
}

// Evaluator performs the side effects of a document located at root
type Evaluator struct {
	root    fspath.Path
	session *Session
}

// NewEvaluator creates an evaluator anchored at the document path root
func NewEvaluator(session *Session, root fspath.Path) *Evaluator {
	return &Evaluator{root: root, session: session}
}

// Visit dispatches on the node kind. A document's code blocks are all
// written before any of its links is followed.
func (e *Evaluator) Visit(node parser.Node) error {
	switch n := node.(type) {
	case *parser.Document:
		for _, block := range n.Blocks() {
			if err := e.Visit(block); err != nil {
				return err
			}
		}
		for _, link := range n.Links() {
			if err := e.Visit(link); err != nil {
				return err
			}
		}
		return nil
	case *parser.CodeBlock:
		return e.visitCodeBlock(n)
	case *parser.Link:
		return e.visitLink(n)
	case *parser.Operator, *parser.Text:
		return nil
	default:
		return fmt.Errorf("unknown node %T", node)
	}
}

func (e *Evaluator) visitCodeBlock(block *parser.CodeBlock) error {
	op := block.Operator

	switch op.Symbol {
	case parser.Write:
		target, err := e.root.Resolve(op.Operand.Value())
		if err != nil {
			return err
		}
		content := block.Content.Value()

		write := Write{
			Source: e.root.Expanded(),
			Target: target.Expanded(),
			Info:   block.Info.Value(),
			Bytes:  len(content),
		}

		if e.session.dryRun {
			e.session.logger.Info("would write",
				slog.String("target", write.Target),
				slog.Int("bytes", write.Bytes))
			e.session.report.Writes = append(e.session.report.Writes, write)
			return nil
		}

		e.session.logger.Debug("write",
			slog.String("source", write.Source),
			slog.String("target", write.Target))
		cmd := &CopyToFile{Path: target, Content: content}
		if err := cmd.Execute(); err != nil {
			return err
		}
		e.session.report.Writes = append(e.session.report.Writes, write)
		return nil
	default:
		e.session.logger.Debug("unsupported operator", slog.String("operator", string(op.Symbol)))
		return nil
	}
}

func (e *Evaluator) visitLink(link *parser.Link) error {
	target, err := e.root.Resolve(link.Path.Value())
	if err != nil {
		e.session.logger.Debug("skip link", slog.String("text", link.Text.Value()), slog.String("error", err.Error()))
		return nil
	}

	e.session.logger.Debug("follow link", slog.String("target", target.Expanded()))
	cmd := &InterpretFile{Path: target, Session: e.session}
	return cmd.Execute()
}
