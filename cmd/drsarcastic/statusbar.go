package main

import (
	"fmt"
	"time"
)

// statusBarModel shows the footer, the model name, and the last round-trip time.
type statusBarModel struct {
	footer   string
	model    string
	duration time.Duration
	failed   bool
}

func newStatusBar(footer, model string) statusBarModel {
	return statusBarModel{footer: footer, model: model}
}

func (m statusBarModel) View() string {
	line := " " + m.footer + " · " + m.model
	if m.duration > 0 {
		line += fmt.Sprintf(" · [%s]", fmtDuration(m.duration))
	}
	if m.failed {
		return statusStyle.Render(line) + errorStyle.Render(" ✗")
	}
	return statusStyle.Render(line)
}
