package main

import (
	"time"

	"github.com/germanamz/drsarcastic/pkg/engine"
)

// inputSubmitMsg carries the text the user submitted from the input box.
type inputSubmitMsg struct {
	text string
}

// turnDoneMsg is returned by the tea.Cmd that runs a turn's completion.
type turnDoneMsg struct {
	turn  engine.Turn
	reply string
	err   error
}

// initDrainMsg fires after a short delay so that stale terminal responses
// (e.g. OSC 11 background-color replies) are discarded before focusing input.
type initDrainMsg struct{}

// tickMsg drives the typing indicator.
type tickMsg time.Time
