package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// headerModel shows the title, the subtitle, and the sessions counter.
type headerModel struct {
	title    string
	subtitle string
	label    string // localized "sessions" word
	lang     string
	count    int
	width    int
}

func (m headerModel) View() string {
	left := titleStyle.Render("🧠 "+m.title) + "\n" + subtitleStyle.Render("● "+m.subtitle)
	right := counterStyle.Render(fmt.Sprintf("%d %s · %s", m.count, m.label, m.lang))

	inner := max(m.width-2, 0)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	row := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)

	return headerStyle.Width(inner).Render(row)
}
