package main

import "github.com/charmbracelet/lipgloss"

// Brand colors.
var (
	colorBrand = lipgloss.Color("#FF5E5B")
	colorInk   = lipgloss.Color("#2D2D2D")
	colorMuted = lipgloss.Color("8")
	colorOK    = lipgloss.Color("2")
)

// Centralized style definitions for the TUI.
var (
	// Header styles.
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorOK)
	counterStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle   = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorBrand)

	// User message styles.
	userPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")) // blue
	userBlockStyle  = lipgloss.NewStyle().PaddingLeft(1)

	// Bot message styles.
	botPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	botBlockStyle  = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(colorBrand)

	timeStyle = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)

	// Typing indicator.
	spinnerStyle = lipgloss.NewStyle().Foreground(colorBrand)

	// Quick action chips.
	chipStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBrand).
			PaddingLeft(1).
			PaddingRight(1)
	chipDisabledStyle = chipStyle.
				Foreground(colorMuted).
				BorderForeground(colorMuted)
	chipKeyStyle = lipgloss.NewStyle().Bold(true)

	// General utility styles.
	dimStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
	noteStyle   = lipgloss.NewStyle().Foreground(colorInk).Italic(true).PaddingLeft(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
