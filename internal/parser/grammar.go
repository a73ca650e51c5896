package parser

import (
	"regexp"
	"strings"
)

// Symbol is an operator symbol in a directive header
type Symbol string

// Write copies the block content to the operand path
const Write Symbol = ">"

var operators = map[Symbol]bool{
	Write: true,
}

// IsOperator reports whether s is a recognized operator symbol
func IsOperator(s string) bool {
	return operators[Symbol(s)]
}

var (
	// Opening fence line, lazily up to the next bare closing fence line.
	codeBlockRe = regexp.MustCompile("(?ms)^```[^\\n]*\\n.*?^```[ \\t]*\\r?$")
	linkRe      = regexp.MustCompile(`\[([^\]\n]*)\]\(([^)\n]*)\)`)
)

// Header is the result of splitting a code block's first line
type Header struct {
	Info     string
	Operator Symbol
	Path     string
}

// IsDirective reports whether the header names an operator and a destination
func (h Header) IsDirective() bool {
	return h.Operator != "" && h.Path != ""
}

// SplitHeader splits the text following an opening fence into info string,
// operator and destination. Anything that is not a directive yields a zero Header.
func SplitHeader(source string) Header {
	components := strings.Fields(source)

	if len(components) <= 1 || (len(components) == 2 && IsOperator(components[1])) {
		return Header{}
	}

	if IsOperator(components[0]) {
		return Header{Operator: Symbol(components[0]), Path: components[1]}
	}

	if IsOperator(components[1]) {
		return Header{Info: components[0], Operator: Symbol(components[1]), Path: components[2]}
	}

	return Header{}
}

// findCodeBlocks returns every closed fenced block in source order
func findCodeBlocks(source string) []string {
	return codeBlockRe.FindAllString(source, -1)
}

// findLinks returns the text and path groups of every inline link in source order
func findLinks(source string) [][2]string {
	matches := linkRe.FindAllStringSubmatch(source, -1)
	links := make([][2]string, 0, len(matches))
	for _, m := range matches {
		links = append(links, [2]string{m[1], m[2]})
	}
	return links
}
