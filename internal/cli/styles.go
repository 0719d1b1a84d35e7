package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/forPelevin/projroot/internal/types"
)

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderReport(res types.Resolution, verbose bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(res.Manifest.Name))
	b.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label), value)
	}
	row("root", res.Root)
	row("source", string(res.Source))
	row("start", res.Start)
	if res.Alternate {
		row("install", warningStyle.Render("global"))
	}
	row("git", yesNo(res.IsGitRepo))
	if res.Manifest.Synthesized {
		row("manifest", warningStyle.Render("none (synthesized)"))
	} else {
		row("manifest", successStyle.Render("found"))
	}
	if verbose {
		for i, dir := range res.Visited {
			row(fmt.Sprintf("step %d", i+1), mutedStyle.Render(dir))
		}
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return successStyle.Render("yes")
	}
	return mutedStyle.Render("no")
}
