package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/drsarcastic/pkg/i18n"
)

var quickActionIcons = []string{"😫", "💯", "🏢", "🧠"}

// keyMap holds the global key bindings.
type keyMap struct {
	Quit         key.Binding
	ToggleLang   key.Binding
	QuickActions []key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		ToggleLang: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "language")),
		QuickActions: []key.Binding{
			key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "quick action 1")),
			key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "quick action 2")),
			key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "quick action 3")),
			key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "quick action 4")),
		},
	}
}

// quickActionsModel renders the quick-action chips.
type quickActionsModel struct {
	labels   []string
	keys     []key.Binding
	disabled bool
	width    int
}

func newQuickActions(bundle *i18n.Bundle, lang string, keys []key.Binding) quickActionsModel {
	m := quickActionsModel{keys: keys}
	m.setLanguage(bundle, lang)
	return m
}

// setLanguage reloads the chip labels.
func (m *quickActionsModel) setLanguage(bundle *i18n.Bundle, lang string) {
	m.labels = make([]string, len(i18n.QuickActionKeys))
	for i, k := range i18n.QuickActionKeys {
		m.labels[i] = bundle.T(lang, k)
	}
}

// text returns the prompt for action i.
func (m quickActionsModel) text(i int) string {
	if i < 0 || i >= len(m.labels) {
		return ""
	}
	return m.labels[i]
}

func (m quickActionsModel) View() string {
	style := chipStyle
	if m.disabled {
		style = chipDisabledStyle
	}

	chips := make([]string, 0, len(m.labels))
	for i, label := range m.labels {
		var b strings.Builder
		if i < len(m.keys) {
			b.WriteString(chipKeyStyle.Render(m.keys[i].Help().Key))
			b.WriteString(" ")
		}
		if i < len(quickActionIcons) {
			b.WriteString(quickActionIcons[i])
			b.WriteString(" ")
		}
		b.WriteString(label)
		chips = append(chips, style.Render(b.String()))
	}

	// Wrap chips onto as many rows as the width allows.
	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range chips {
		w := lipgloss.Width(c)
		if len(row) > 0 && m.width > 0 && rowWidth+w > m.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, c)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
