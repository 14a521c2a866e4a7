package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)
)

// FormatPercent formats a fraction as a percentage, with an arrow for its sign.
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}

	s := fmt.Sprintf("%.2f%%", v*100)

	if v > 0 {
		return s + " ▲"
	} else if v < 0 {
		return s + " ▼"
	}

	return s
}
