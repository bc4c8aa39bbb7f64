// Package ui holds the terminal styles shared by the voxi commands.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

// Color modes accepted by SetColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

// SetColorMode switches colored output on or off for both lipgloss styles
// and fatih/color printers. "auto" keeps the terminal detection.
func SetColorMode(mode string) error {
	switch mode {
	case "", ColorAuto:
	case ColorAlways:
		color.NoColor = false
		lipgloss.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		color.NoColor = true
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
	return nil
}

func render(style lipgloss.Style, text string) string {
	if color.NoColor {
		return text
	}
	return style.Render(text)
}

// Title styles a heading.
func Title(text string) string { return render(TitleStyle, text) }

// Secondary styles supporting text.
func Secondary(text string) string { return render(SecondaryStyle, text) }

// Success prints a success line.
func Success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, render(SuccessStyle, "✓ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning line.
func Warning(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, render(WarningStyle, "⚠ "+fmt.Sprintf(format, args...)))
}

// Error prints an error line.
func Error(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, render(ErrorStyle, "✗ "+fmt.Sprintf(format, args...)))
}

// List prints a bulleted list.
func List(w io.Writer, items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  • %s\n", item)
	}
}
