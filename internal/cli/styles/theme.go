// Package styles provides lipgloss-based rendering for previewr CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors of the dark terminal theme.
const (
	colorInk     = lipgloss.Color("#0a0a0b")
	colorPanel   = lipgloss.Color("#2d2d2d")
	colorText    = lipgloss.Color("#ffffff")
	colorMuted   = lipgloss.Color("#909090")
	colorGreen   = lipgloss.Color("#4ade80")
	colorRed     = lipgloss.Color("#ef4444")
	colorAmber   = lipgloss.Color("#f59e0b")
	colorOutline = lipgloss.Color("#333333")
)

// Theme is the set of styles the renderers draw with.
type Theme struct {
	Accent lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	// Badge marks the active value in a list, BadgeMuted the others.
	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	Box       lipgloss.Style
	BoxHeader lipgloss.Style
}

// NewTheme creates the dark theme.
func NewTheme() *Theme {
	text := lipgloss.NewStyle().Foreground(colorText)
	return &Theme{
		Accent: colorGreen,

		Title:        text.Bold(true),
		Normal:       text,
		Subtle:       lipgloss.NewStyle().Foreground(colorMuted),
		Highlight:    lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		ErrorStyle:   lipgloss.NewStyle().Foreground(colorRed),
		WarningStyle: lipgloss.NewStyle().Foreground(colorAmber),
		SuccessStyle: lipgloss.NewStyle().Foreground(colorGreen),

		Badge:      lipgloss.NewStyle().Foreground(colorInk).Background(colorGreen).Padding(0, 1),
		BadgeMuted: text.Background(colorPanel).Padding(0, 1),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorOutline).
			Padding(0, 2),
		BoxHeader: text.Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorOutline),
	}
}
