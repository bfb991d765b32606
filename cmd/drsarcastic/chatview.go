package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/drsarcastic/pkg/chats/message"
	"github.com/germanamz/drsarcastic/pkg/chats/role"
)

// chatViewModel renders the conversation inside a scrollable viewport. It
// holds no conversation state of its own: setMessages is called with a
// snapshot from the session whenever the list changes.
type chatViewModel struct {
	viewport   viewport.Model
	messages   []message.Message
	notes      []string // local notices (help, bad commands) shown after the messages
	userLabel  string
	botLabel   string
	typingText string
	processing bool
	spinnerIdx int
	width      int
}

func newChatView() chatViewModel {
	return chatViewModel{
		viewport: viewport.New(0, 0),
	}
}

func (m chatViewModel) Update(msg tea.Msg) (chatViewModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m chatViewModel) View() string {
	return m.viewport.View()
}

func (m *chatViewModel) setSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// setLabels updates the localized speaker labels and typing text.
func (m *chatViewModel) setLabels(user, bot, typing string) {
	m.userLabel = user
	m.botLabel = bot
	m.typingText = typing
}

// setMessages replaces the rendered conversation. Notes are discarded when
// the conversation was reset.
func (m *chatViewModel) setMessages(msgs []message.Message) {
	if len(msgs) < len(m.messages) {
		m.notes = nil
	}
	m.messages = msgs
	m.refresh()
}

// addNote appends a local notice below the conversation.
func (m *chatViewModel) addNote(text string) {
	m.notes = append(m.notes, text)
	m.refresh()
}

// setProcessing toggles the typing indicator.
func (m *chatViewModel) setProcessing(on bool) {
	m.processing = on
	m.spinnerIdx = 0
	m.refresh()
}

// advanceSpinner moves the typing indicator to its next frame.
func (m *chatViewModel) advanceSpinner() {
	m.spinnerIdx++
	m.refresh()
}

// refresh re-renders the content and keeps the view pinned to the bottom
// when it was already there.
func (m *chatViewModel) refresh() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.render())
	if atBottom || m.processing {
		m.viewport.GotoBottom()
	}
}

func (m chatViewModel) render() string {
	blocks := make([]string, 0, len(m.messages)+len(m.notes)+1)

	for _, msg := range m.messages {
		blocks = append(blocks, m.renderMessage(msg))
	}

	for _, n := range m.notes {
		blocks = append(blocks, noteStyle.Render(n))
	}

	if m.processing {
		frame := spinnerFrames[m.spinnerIdx%len(spinnerFrames)]
		blocks = append(blocks, fmt.Sprintf("  %s %s",
			spinnerStyle.Render(frame),
			spinnerStyle.Render(m.typingText),
		))
	}

	return strings.Join(blocks, "\n\n")
}

func (m chatViewModel) renderMessage(msg message.Message) string {
	stamp := timeStyle.Render(msg.Clock())

	if msg.Role == role.User {
		label := m.userLabel + " > "
		prefix := userPrefixStyle.Render(label)
		body := indentContinuation(msg.Text, lipgloss.Width(label))
		return userBlockStyle.Render(prefix + body + "  " + stamp)
	}

	header := botPrefixStyle.Render("🤖 "+m.botLabel) + "  " + stamp
	return botBlockStyle.Render(header + "\n" + renderMarkdown(msg.Text))
}
