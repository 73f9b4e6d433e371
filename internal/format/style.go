package format

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

var (
	colorMuted = lipgloss.AdaptiveColor{Light: "#6c757d", Dark: "#8a8f98"}

	StyleHeading = lipgloss.NewStyle().Bold(true)
	StyleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	StyleID      = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
	StyleCurrent = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f9fb0")).Bold(true)

	statusStyles = map[string]lipgloss.Style{
		"todo":        lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f98")),
		"in-progress": lipgloss.NewStyle().Foreground(lipgloss.Color("#3498db")).Bold(true),
		"review":      lipgloss.NewStyle().Foreground(lipgloss.Color("#9b59b6")).Bold(true),
		"completed":   lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71")),
		"blocked":     lipgloss.NewStyle().Foreground(lipgloss.Color("#d16d7a")).Bold(true),
	}
	priorityStyles = map[string]lipgloss.Style{
		"urgent": lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true),
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("#f39c12")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("#f1c40f")),
		"normal": lipgloss.NewStyle().Foreground(colorMuted),
		"low":    lipgloss.NewStyle().Foreground(colorMuted).Faint(true),
	}
	spaceColors = map[string]lipgloss.Color{
		"purple": lipgloss.Color("#9b59b6"),
		"blue":   lipgloss.Color("#3498db"),
		"green":  lipgloss.Color("#2ecc71"),
		"yellow": lipgloss.Color("#f1c40f"),
		"red":    lipgloss.Color("#e74c3c"),
		"pink":   lipgloss.Color("#e84393"),
	}
)

// DisableColor renders every style as plain text (NO_COLOR, pipes, tests).
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	mdMu.Lock()
	mdPlain = true
	mdMu.Unlock()
}

func Status(s string) string {
	if st, ok := statusStyles[s]; ok {
		return st.Render(s)
	}
	return s
}

func Priority(p string) string {
	if st, ok := priorityStyles[p]; ok {
		return st.Render(p)
	}
	return p
}

// Swatch renders name in the space's color.
func Swatch(color, name string) string {
	c, ok := spaceColors[color]
	if !ok {
		return name
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(name)
}

// Truncate shortens s to width cells, escape sequences included.
func Truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// Plain strips styling, for width math and assertions.
func Plain(s string) string {
	return ansi.Strip(s)
}
