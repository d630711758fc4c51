package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive colours read on light and dark terminals alike.
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#58A6FF"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#008000", Dark: "#3FB950"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#F85149"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#CC6600", Dark: "#D29922"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#8B949E"}
	ColorSelection = lipgloss.AdaptiveColor{Light: "#6639A6", Dark: "#A371F7"}
)

// Status symbols in styled mode; plain mode uses bracketed tags instead.
const (
	SymbolSuccess  = "✓"
	SymbolError    = "✗"
	SymbolWarning  = "!"
	SymbolRejected = "⊘"
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleHeader  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleBorder  = lipgloss.NewStyle().Foreground(ColorMuted)
)
