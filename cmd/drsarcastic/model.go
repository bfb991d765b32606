package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/drsarcastic/pkg/engine"
	"github.com/germanamz/drsarcastic/pkg/i18n"
)

// appState represents the application state machine.
type appState int

const (
	stateIdle appState = iota
	stateProcessing
)

// appModel is the root bubbletea model. Every session mutation happens in
// Update; the only work done off the event loop is Turn.Run.
type appModel struct {
	ctx       context.Context
	eng       *engine.Engine
	sess      *engine.Session
	log       *slog.Logger
	keys      keyMap
	header    headerModel
	chatView  chatViewModel
	quick     quickActionsModel
	inputBox  inputModel
	statusBar statusBarModel
	state     appState
	width     int
	height    int
}

func newAppModel(ctx context.Context, eng *engine.Engine, sess *engine.Session, log *slog.Logger) appModel {
	keys := newKeyMap()
	lang := sess.Language()
	bundle := eng.Bundle()

	m := appModel{
		ctx:       ctx,
		eng:       eng,
		sess:      sess,
		log:       log,
		keys:      keys,
		chatView:  newChatView(),
		quick:     newQuickActions(bundle, lang, keys.QuickActions),
		inputBox:  newInput(bundle.T(lang, i18n.KeyPlaceholder)),
		statusBar: newStatusBar(bundle.T(lang, i18n.KeyFooter), eng.Config().Model),
		state:     stateIdle,
	}
	m.applyLanguage()
	m.syncChat()

	return m
}

func (m appModel) Init() tea.Cmd {
	// Delay focusing the input so that stale terminal escape-sequence
	// responses (e.g. OSC 11 background-color) are drained first.
	return tea.Batch(
		tea.SetWindowTitle(m.sess.T(i18n.KeyTitle)),
		tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
			return initDrainMsg{}
		}),
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case initDrainMsg:
		if m.state != stateIdle {
			return m, nil
		}
		cmd := m.inputBox.enable()
		return m, cmd

	case inputSubmitMsg:
		return m.handleSubmit(msg)

	case turnDoneMsg:
		return m.handleTurnDone(msg)

	case tickMsg:
		if m.state == stateProcessing {
			m.chatView.advanceSpinner()
			return m, tickCmd()
		}
		return m, nil
	}

	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.chatView.View(),
		m.quick.View(),
		m.inputBox.View(),
		m.statusBar.View(),
	)
}

func (m *appModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	initMarkdownRenderer(m.width - 6)
	m.header.width = m.width
	m.quick.width = m.width
	m.inputBox.setWidth(m.width)
	m.recalcLayout()

	return *m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return *m, tea.Quit

	case key.Matches(msg, m.keys.ToggleLang):
		m.switchLanguage(m.eng.Bundle().Next(m.sess.Language()))
		return *m, nil

	case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return *m, cmd
	}

	for i, b := range m.keys.QuickActions {
		if key.Matches(msg, b) {
			if m.state == stateIdle {
				m.inputBox.setValue(m.quick.text(i))
				m.recalcLayout()
			}
			return *m, nil
		}
	}

	// Forward to input box when idle.
	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		m.recalcLayout()
		return *m, cmd
	}

	return *m, nil
}

func (m *appModel) handleSubmit(msg inputSubmitMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := m.handleCommand(strings.TrimSpace(msg.text)); handled {
		return *m, cmd
	}

	turn, ok := m.sess.Begin(msg.text)
	if !ok {
		return *m, nil
	}

	m.state = stateProcessing
	m.inputBox.disable()
	m.quick.disabled = true
	m.syncChat()
	m.chatView.setProcessing(true)
	m.recalcLayout()

	ctx := m.ctx
	runCmd := func() tea.Msg {
		reply, err := turn.Run(ctx)
		return turnDoneMsg{turn: turn, reply: reply, err: err}
	}

	return *m, tea.Batch(runCmd, tickCmd())
}

// handleCommand runs slash commands. It reports false for plain messages.
func (m *appModel) handleCommand(text string) (tea.Cmd, bool) {
	if !strings.HasPrefix(text, "/") {
		return nil, false
	}

	fields := strings.Fields(text)
	switch fields[0] {
	case "/quit", "/exit":
		return tea.Quit, true

	case "/help":
		m.chatView.addNote(m.sess.T(i18n.KeyHelp))
		return nil, true

	case "/lang":
		lang := m.eng.Bundle().Next(m.sess.Language())
		if len(fields) > 1 {
			lang = i18n.Normalize(fields[1])
		}
		m.switchLanguage(lang)
		return nil, true
	}

	return nil, false
}

func (m *appModel) handleTurnDone(msg turnDoneMsg) (tea.Model, tea.Cmd) {
	m.sess.Finish(msg.turn, msg.reply, msg.err)

	m.statusBar.duration = time.Since(msg.turn.Started)
	m.statusBar.failed = msg.err != nil
	m.state = stateIdle
	m.quick.disabled = false
	m.chatView.setProcessing(false)
	m.syncChat()
	focusCmd := m.inputBox.enable()
	m.recalcLayout()

	return *m, focusCmd
}

// switchLanguage changes the session language, which also starts a fresh
// conversation, and reloads every localized string on screen.
func (m *appModel) switchLanguage(lang string) {
	if !m.eng.Bundle().Has(lang) {
		m.chatView.addNote(errorStyle.Render("unsupported language: " + lang + " (" +
			strings.Join(m.eng.Bundle().Languages(), ", ") + ")"))
		return
	}

	if err := m.sess.SetLanguage(lang); err != nil {
		m.log.Warn("language switch", "language", lang, "error", err)
	}

	m.applyLanguage()
	m.syncChat()
	m.recalcLayout()
}

// applyLanguage reloads all localized labels for the active language.
func (m *appModel) applyLanguage() {
	lang := m.sess.Language()
	bundle := m.eng.Bundle()

	m.header.title = bundle.T(lang, i18n.KeyTitle)
	m.header.subtitle = bundle.T(lang, i18n.KeySubtitle)
	m.header.label = bundle.T(lang, i18n.KeySessions)
	m.header.lang = lang
	m.chatView.setLabels(bundle.T(lang, i18n.KeyYou), bundle.T(lang, i18n.KeyTitle), bundle.T(lang, i18n.KeyTyping))
	m.quick.setLanguage(bundle, lang)
	m.inputBox.setPlaceholder(bundle.T(lang, i18n.KeyPlaceholder))
	m.statusBar.footer = bundle.T(lang, i18n.KeyFooter)
}

// syncChat copies the session's messages into the view.
func (m *appModel) syncChat() {
	m.chatView.setMessages(m.sess.Messages())
	m.header.count = m.sess.UserCount()
}

func (m *appModel) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	fixed := lipgloss.Height(m.header.View()) +
		lipgloss.Height(m.quick.View()) +
		lipgloss.Height(m.inputBox.View()) +
		lipgloss.Height(m.statusBar.View())
	m.chatView.setSize(m.width, max(m.height-fixed, 1))
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
