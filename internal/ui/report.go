// Package ui renders tangle reports for the terminal and as machine readable
// manifests.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/tangle/internal/tangle"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how a report is rendered
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputYAML  OutputFormat = "yaml"
	OutputJSON  OutputFormat = "json"
)

// ParseOutputFormat validates a user supplied format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputTable, OutputYAML, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output: %s (supported: table, yaml, json)", s)
	}
}

// Render writes report to w in the given format
func Render(w io.Writer, report *tangle.Report, format OutputFormat, styles *StyleManager) error {
	switch format {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		_, err := io.WriteString(w, renderTable(report, styles))
		return err
	}
}

// renderTable groups writes under the document that declares them
func renderTable(report *tangle.Report, s *StyleManager) string {
	if s == nil {
		s = DefaultStyles()
	}

	var b strings.Builder
	if len(report.Writes) == 0 {
		b.WriteString(s.Dim.Render("no directives found"))
		b.WriteString("\n")
		return b.String()
	}

	width := 0
	for _, w := range report.Writes {
		if n := lipgloss.Width(w.Info); n > width {
			width = n
		}
	}

	source := ""
	for _, w := range report.Writes {
		if w.Source != source {
			if source != "" {
				b.WriteString("\n")
			}
			source = w.Source
			b.WriteString(s.Title.Render(source))
			b.WriteString("\n")
		}

		info := lipgloss.NewStyle().Width(width).Render(w.Info)
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			s.Info.Render(info),
			s.Arrow.Render(">"),
			s.Path.Render(relativeTo(filepath.Dir(source), w.Target)),
			s.Dim.Render(fmt.Sprintf("(%d bytes)", w.Bytes)))
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d writes, %d targets, %d documents",
		len(report.Writes), len(report.Targets()), len(report.Documents))
	if report.DryRun {
		summary += " (dry run)"
	}
	b.WriteString(s.Dim.Render(summary))
	b.WriteString("\n")
	return b.String()
}

// relativeTo shortens target when it lives under dir
func relativeTo(dir, target string) string {
	rel, err := filepath.Rel(dir, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	return rel
}
