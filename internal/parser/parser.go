package parser

import (
	"strings"
)

// Parser builds a document from some source
type Parser interface {
	Parse() *Document
}

// StringParser parses markdown held in memory
type StringParser struct {
	source string
}

// NewStringParser creates a parser over source
func NewStringParser(source string) *StringParser {
	return &StringParser{source: source}
}

// Parse builds the document. Blocks without a directive header and malformed
// links are dropped; they never fail the parse.
func (p *StringParser) Parse() *Document {
	doc := &Document{}

	for _, match := range findCodeBlocks(p.source) {
		if block := parseCodeBlock(match); block != nil {
			doc.AddBlock(block)
		}
	}

	for _, groups := range findLinks(p.source) {
		doc.AddLink(&Link{
			Text: NewText(groups[0]),
			Path: NewText(groups[1]),
		})
	}

	return doc
}

// parseCodeBlock turns one recognized fenced block into a node, or nil when
// its header is not a directive
func parseCodeBlock(source string) *CodeBlock {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	header := SplitHeader(strings.TrimPrefix(lines[0], "```"))
	if !header.IsDirective() {
		return nil
	}

	var body []string
	if len(lines) > 2 {
		body = lines[1 : len(lines)-1]
	}
	content := strings.Join(body, "\n") + "\n"

	return &CodeBlock{
		Info:    NewText(header.Info),
		Content: NewText(content),
		Operator: &Operator{
			Symbol:  header.Operator,
			Operand: NewText(header.Path),
		},
	}
}
