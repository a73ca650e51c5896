package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/tangle/internal/config"
)

// StyleManager encapsulates the report styles
type StyleManager struct {
	Title lipgloss.Style
	Path  lipgloss.Style
	Info  lipgloss.Style
	Dim   lipgloss.Style
	Arrow lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title: lipgloss.NewStyle().Bold(true),
		Path:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Arrow: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	pathColor := parseANSIColor(config.GetColorPath())
	infoColor := parseANSIColor(config.GetColorInfo())
	dimColor := parseANSIColor(config.GetColorDim())

	s.Path = lipgloss.NewStyle().Foreground(pathColor)
	s.Info = lipgloss.NewStyle().Foreground(infoColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Arrow = lipgloss.NewStyle().Foreground(dimColor)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}
