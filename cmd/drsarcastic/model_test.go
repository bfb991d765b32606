package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/drsarcastic/pkg/appdir"
	"github.com/germanamz/drsarcastic/pkg/chats/role"
	"github.com/germanamz/drsarcastic/pkg/engine"
	"github.com/germanamz/drsarcastic/pkg/i18n"
	"github.com/germanamz/drsarcastic/pkg/modeladapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- test helpers ---

func newTestEngine(t *testing.T, c modeladapter.Completer) *engine.Engine {
	t.Helper()

	cfg := engine.Config{
		Provider:    engine.DefaultProvider,
		Endpoint:    "https://example.com/v1/chat/completions",
		APIKey:      "sk-test",
		Model:       "test/model",
		Temperature: 1,
		MaxTokens:   128,
		Timeout:     time.Second,
		Dir:         t.TempDir(),
	}

	eng, err := engine.New(cfg,
		engine.WithCompleter(c),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	return eng
}

func newTestModel(t *testing.T, c modeladapter.Completer, lang string) appModel {
	t.Helper()

	eng := newTestEngine(t, c)
	m := newAppModel(context.Background(), eng, eng.NewSession(lang), eng.Logger())
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, initDrainMsg{})

	return m
}

func replyWith(text string) modeladapter.Completer {
	return modeladapter.CompleterFunc(func(context.Context, string) (string, error) {
		return text, nil
	})
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()

	next, _ := updateCmd(t, m, msg)
	return next
}

func updateCmd(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	am, ok := next.(appModel)
	require.True(t, ok, "Update returned %T", next)

	return am, cmd
}

// findTurnDone runs the commands of a batch until one yields turnDoneMsg.
func findTurnDone(t *testing.T, cmd tea.Cmd) turnDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)

	msg := cmd()
	if done, ok := msg.(turnDoneMsg); ok {
		return done
	}

	batch, ok := msg.(tea.BatchMsg)
	require.True(t, ok, "got %T", msg)

	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(turnDoneMsg); ok {
			return done
		}
	}

	t.Fatal("no turnDoneMsg in batch")
	return turnDoneMsg{}
}

func typeText(t *testing.T, m appModel, text string) appModel {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// --- submission flow ---

func TestModel_SubmitRoundTrip(t *testing.T) {
	m := newTestModel(t, replyWith("Oh, **brilliant**."), "en")

	m = typeText(t, m, "my cat ignores me")
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Empty(t, m.inputBox.value())

	submit, ok := cmd().(inputSubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "my cat ignores me", submit.text)

	m, cmd = updateCmd(t, m, submit)
	assert.Equal(t, stateProcessing, m.state)
	assert.False(t, m.inputBox.enabled)
	assert.True(t, m.quick.disabled)
	assert.True(t, m.sess.Busy())
	assert.Equal(t, 1, m.header.count)
	assert.Contains(t, m.chatView.View(), i18n.Default().T("en", i18n.KeyTyping))

	done := findTurnDone(t, cmd)
	require.NoError(t, done.err)

	m = update(t, m, done)
	assert.Equal(t, stateIdle, m.state)
	assert.True(t, m.inputBox.enabled)
	assert.False(t, m.quick.disabled)
	assert.False(t, m.sess.Busy())
	assert.False(t, m.statusBar.failed)
	assert.Positive(t, m.statusBar.duration)

	msgs := m.sess.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, role.Bot, msgs[2].Role)
	assert.Equal(t, "Oh, **brilliant**.", msgs[2].Text)
	assert.Len(t, m.chatView.messages, 3)
}

func TestModel_SubmitWhileBusyIsIgnored(t *testing.T) {
	var calls atomic.Int32
	c := modeladapter.CompleterFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		return "ok", nil
	})
	m := newTestModel(t, c, "en")

	m, cmd := updateCmd(t, m, inputSubmitMsg{text: "first"})
	require.NotNil(t, cmd)

	m, cmd2 := updateCmd(t, m, inputSubmitMsg{text: "second"})
	assert.Nil(t, cmd2)
	assert.Equal(t, 2, m.sess.Len())

	// Keys do not reach the disabled input.
	m = typeText(t, m, "typing")
	assert.Empty(t, m.inputBox.value())

	m = update(t, m, findTurnDone(t, cmd))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 3, m.sess.Len())
}

func TestModel_BlankEnterDoesNothing(t *testing.T) {
	m := newTestModel(t, replyWith("x"), "en")

	m = typeText(t, m, "   ")
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, stateIdle, m.state)
	assert.Equal(t, 1, m.sess.Len())
}

func TestModel_BlankSubmitIsRejected(t *testing.T) {
	m := newTestModel(t, replyWith("x"), "en")

	m, cmd := updateCmd(t, m, inputSubmitMsg{text: " \n "})
	assert.Nil(t, cmd)
	assert.Equal(t, stateIdle, m.state)
	assert.Equal(t, 1, m.sess.Len())
}

func TestModel_FailureShowsLocalizedFallback(t *testing.T) {
	c := modeladapter.CompleterFunc(func(context.Context, string) (string, error) {
		return "", modeladapter.Fail(errors.New("503"))
	})
	m := newTestModel(t, c, "fr")

	m, cmd := updateCmd(t, m, inputSubmitMsg{text: "aide"})
	done := findTurnDone(t, cmd)
	require.ErrorIs(t, done.err, modeladapter.ErrCompletionFailed)

	m = update(t, m, done)
	assert.True(t, m.statusBar.failed)

	msgs := m.sess.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, i18n.Default().T("fr", i18n.KeyErrorMessage), msgs[2].Text)
}

// --- language ---

func TestModel_ToggleLanguageResetsConversation(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	m, cmd := updateCmd(t, m, inputSubmitMsg{text: "hello"})
	m = update(t, m, findTurnDone(t, cmd))
	require.Equal(t, 3, m.sess.Len())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, "fr", m.sess.Language())
	msgs := m.sess.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, i18n.Default().T("fr", i18n.KeyInitialMessage), msgs[0].Text)
	assert.Equal(t, 0, m.header.count)
	assert.Equal(t, "séances", m.header.label)
	assert.Equal(t, i18n.Default().T("fr", i18n.QuickActionKeys[0]), m.quick.text(0))

	prefs, err := appdir.LoadPreferences(m.eng.Dir())
	require.NoError(t, err)
	assert.Equal(t, "fr", prefs.Language)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, "en", m.sess.Language())
}

func TestModel_LangCommand(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	m = update(t, m, inputSubmitMsg{text: "/lang fr_FR"})
	assert.Equal(t, "fr", m.sess.Language())
	assert.Equal(t, 1, m.sess.Len())

	m = update(t, m, inputSubmitMsg{text: "/lang"})
	assert.Equal(t, "en", m.sess.Language())
}

func TestModel_LangCommandSameLanguageKeepsConversation(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")
	m.sess.AppendUser("keep me")

	m = update(t, m, inputSubmitMsg{text: "/lang en"})

	assert.Equal(t, "en", m.sess.Language())
	require.Equal(t, 2, m.sess.Len())
	assert.Equal(t, "keep me", m.sess.Messages()[1].Text)
}

func TestModel_LangCommandUnsupported(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")
	m.sess.AppendUser("keep me")

	m = update(t, m, inputSubmitMsg{text: "/lang de"})

	assert.Equal(t, "en", m.sess.Language())
	assert.Equal(t, 2, m.sess.Len())
	require.Len(t, m.chatView.notes, 1)
	assert.Contains(t, m.chatView.notes[0], "unsupported language: de")
}

func TestModel_LateReplyAfterLanguageSwitch(t *testing.T) {
	m := newTestModel(t, replyWith("too late"), "en")

	m, cmd := updateCmd(t, m, inputSubmitMsg{text: "hello"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Equal(t, 1, m.sess.Len())

	m = update(t, m, findTurnDone(t, cmd))

	msgs := m.sess.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "too late", msgs[1].Text)
	assert.Equal(t, stateIdle, m.state)
}

// --- commands and keys ---

func TestModel_HelpCommand(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	m, cmd := updateCmd(t, m, inputSubmitMsg{text: "/help"})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.sess.Len())
	require.Len(t, m.chatView.notes, 1)
	assert.Contains(t, m.chatView.notes[0], "/lang")
}

func TestModel_QuitCommand(t *testing.T) {
	for _, text := range []string{"/quit", "/exit"} {
		m := newTestModel(t, replyWith("ok"), "en")

		_, cmd := updateCmd(t, m, inputSubmitMsg{text: text})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_UnknownSlashIsSent(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	m, cmd := updateCmd(t, m, inputSubmitMsg{text: "/shrug"})
	require.NotNil(t, cmd)
	assert.Equal(t, stateProcessing, m.state)
	assert.Equal(t, "/shrug", m.sess.Messages()[1].Text)
}

func TestModel_QuickActionFillsInput(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF3})
	assert.Equal(t, i18n.Default().T("en", "quickActions.workCrazy"), m.inputBox.value())
	assert.Equal(t, 1, m.sess.Len(), "quick actions do not send")
}

func TestModel_QuickActionDisabledWhileBusy(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	m = update(t, m, inputSubmitMsg{text: "hi"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Empty(t, m.inputBox.value())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	view := m.View()
	assert.Contains(t, view, "Dr. Sarcastic AI")
	assert.Contains(t, view, "0 sessions")
	assert.Contains(t, view, "test/model")
	assert.Contains(t, view, "F1")
}

func TestModel_ViewBeforeResize(t *testing.T) {
	eng := newTestEngine(t, replyWith("ok"))
	m := newAppModel(context.Background(), eng, eng.NewSession("en"), eng.Logger())

	assert.Equal(t, "Loading...", m.View())
}

func TestModel_TickStopsWhenIdle(t *testing.T) {
	m := newTestModel(t, replyWith("ok"), "en")

	_, cmd := updateCmd(t, m, tickMsg(time.Now()))
	assert.Nil(t, cmd)

	m = update(t, m, inputSubmitMsg{text: "hi"})
	before := m.chatView.spinnerIdx
	m, cmd = updateCmd(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, before+1, m.chatView.spinnerIdx)
}
