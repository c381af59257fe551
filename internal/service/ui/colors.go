// Package ui holds the shared terminal styles. Plain ANSI colors only, so
// output stays readable on light and dark schemes alike.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle renders banners and section headers, ANSI 6 (cyan).
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// SpeakerStyle renders persona names in transcripts, ANSI 2 (green).
	SpeakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

	// ScoreStyle dims the per-turn compatibility lines, ANSI 8 (gray).
	ScoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// VerdictStyle highlights the closing verdict, ANSI 3 (yellow).
	VerdictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	// UsageStyle and FlagStyle color cobra help output.
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// DescStyle tones down descriptions next to their headings.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
