package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// CLI palette.
var (
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliDanger  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"})
)

// kvPair is one aligned "key  value" line.
type kvPair struct {
	key   string
	value string
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// cardStyle returns a lipgloss style for a rounded-border card.
func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2)
}

// renderCard renders content under a title. Styled output draws a rounded
// box; plain output is the title, a blank line and the content.
func renderCard(styled bool, title, content string) string {
	if !styled {
		return title + "\n\n" + content
	}
	return cardStyle().Render(cliPrimary.Bold(true).Render(title) + "\n\n" + content)
}

// renderKeyValueLines aligns pairs on the longest key.
func renderKeyValueLines(styled bool, pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p.key))
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		key := p.key + strings.Repeat(" ", width-len(p.key))
		if styled {
			key = cliMuted.Render(key)
		}
		lines[i] = key + "  " + p.value
	}
	return strings.Join(lines, "\n")
}

// renderVerdict renders a one-word allow/deny badge.
func renderVerdict(styled, denied bool) string {
	switch {
	case denied && styled:
		return cliDanger.Bold(true).Render("✗ deny")
	case denied:
		return "deny"
	case styled:
		return cliSuccess.Render("✓ allow")
	default:
		return "allow"
	}
}
