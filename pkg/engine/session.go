package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/germanamz/drsarcastic/pkg/chats/chat"
	"github.com/germanamz/drsarcastic/pkg/chats/message"
	"github.com/germanamz/drsarcastic/pkg/chats/role"
	"github.com/germanamz/drsarcastic/pkg/i18n"
	"github.com/germanamz/drsarcastic/pkg/modeladapter"
	"github.com/germanamz/drsarcastic/pkg/sessionctx"
)

// Session is one conversation with Dr. Sarcastic. It owns the message list,
// the active language, and the busy flag. Only one turn may be in flight at a
// time. All methods are safe for concurrent use.
type Session struct {
	id        string
	completer modeladapter.Completer
	bundle    *i18n.Bundle
	events    *EventBus
	persist   func(lang string) error
	log       *slog.Logger

	mu   sync.Mutex
	chat *chat.Chat
	lang string
	busy bool
}

// Turn is a submission accepted by Begin. Run performs the completion and is
// the only part of a turn that may execute off the caller's goroutine.
type Turn struct {
	SessionID string
	Language  string
	Prompt    string
	User      message.Message
	Started   time.Time

	completer modeladapter.Completer
}

type sessionDeps struct {
	id        string
	lang      string
	completer modeladapter.Completer
	bundle    *i18n.Bundle
	events    *EventBus
	persist   func(lang string) error
	log       *slog.Logger
}

func newSession(d sessionDeps) *Session {
	s := &Session{
		id:        d.id,
		completer: d.completer,
		bundle:    d.bundle,
		events:    d.events,
		persist:   d.persist,
		log:       d.log,
		chat:      chat.New(),
		lang:      d.lang,
	}
	s.Reset(s.T(i18n.KeyInitialMessage))

	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Reset replaces the conversation with a single bot message. The busy flag is
// left untouched.
func (s *Session) Reset(greeting string) message.Message {
	m := message.NewBot(greeting)

	s.mu.Lock()
	s.chat.Reset(m)
	s.mu.Unlock()

	s.publish(EventReset, m)

	return m
}

// AppendUser appends a user message. Empty or whitespace-only text is
// rejected and reported as false.
func (s *Session) AppendUser(text string) (message.Message, bool) {
	m := message.NewUser(text)
	if m.IsBlank() {
		return message.Message{}, false
	}

	s.mu.Lock()
	s.chat.Append(m)
	s.mu.Unlock()

	s.publish(EventMessageAdded, m)

	return m, true
}

// AppendBot appends a bot message.
func (s *Session) AppendBot(text string) message.Message {
	m := message.NewBot(text)

	s.mu.Lock()
	s.chat.Append(m)
	s.mu.Unlock()

	s.publish(EventMessageAdded, m)

	return m
}

// SetBusy sets the busy flag.
func (s *Session) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = busy
}

// Busy reports whether a turn is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.busy
}

// Language returns the active language tag.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lang
}

// T translates key in the active language.
func (s *Session) T(key string) string {
	return s.bundle.T(s.Language(), key)
}

// SetLanguage switches the active language, resets the conversation to that
// language's greeting, and persists the choice. Selecting the language that
// is already active changes nothing. The reset and switch happen even when
// persisting fails; the persistence error is returned.
func (s *Session) SetLanguage(lang string) error {
	if !s.bundle.Has(lang) {
		return fmt.Errorf("engine: unsupported language %q", lang)
	}

	s.mu.Lock()
	if s.lang == lang {
		s.mu.Unlock()
		return nil
	}
	s.lang = lang
	s.mu.Unlock()

	s.publish(EventLanguageChanged, lang)
	s.Reset(s.bundle.T(lang, i18n.KeyInitialMessage))

	if s.persist == nil {
		return nil
	}
	if err := s.persist(lang); err != nil {
		return fmt.Errorf("engine: persist language: %w", err)
	}

	return nil
}

// Begin accepts a submission. It returns false, with no effect, when text is
// blank or a turn is already in flight. Otherwise the user message is
// appended, the session becomes busy, and the returned Turn carries the
// prompt built from the active language's system prompt and the raw text.
func (s *Session) Begin(text string) (Turn, bool) {
	m := message.NewUser(text)
	if m.IsBlank() {
		return Turn{}, false
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Turn{}, false
	}

	s.chat.Append(m)
	s.busy = true
	lang := s.lang
	s.mu.Unlock()

	s.publish(EventMessageAdded, m)
	s.publish(EventSendStart, m)

	return Turn{
		SessionID: s.id,
		Language:  lang,
		Prompt:    s.bundle.T(lang, i18n.KeySystemPrompt) + text,
		User:      m,
		Started:   time.Now(),
		completer: s.completer,
	}, true
}

// Run performs the completion for the turn. It touches no session state.
func (t Turn) Run(ctx context.Context) (string, error) {
	if t.completer == nil {
		return "", modeladapter.Fail(errors.New("engine: turn has no completer"))
	}

	return t.completer.Complete(sessionctx.WithSessionID(ctx, t.SessionID), t.Prompt)
}

// Finish settles a turn: it appends exactly one bot message, the reply
// verbatim or the localized error message when err is non-nil, and clears
// the busy flag. The error message uses the language active at settlement.
func (s *Session) Finish(t Turn, reply string, err error) message.Message {
	text := reply
	if err != nil {
		s.log.Error("turn failed", "message", t.User.ID, "error", err)
		s.publish(EventError, err)
		text = s.T(i18n.KeyErrorMessage)
	}

	m := message.NewBot(text)

	s.mu.Lock()
	s.chat.Append(m)
	s.busy = false
	s.mu.Unlock()

	s.publish(EventMessageAdded, m)
	s.publish(EventSendEnd, SendResult{
		Duration: time.Since(t.Started),
		Failed:   err != nil,
	})

	return m
}

// Send runs a whole turn synchronously and returns the bot message. It
// reports false when the submission was rejected by Begin.
func (s *Session) Send(ctx context.Context, text string) (message.Message, bool) {
	t, ok := s.Begin(text)
	if !ok {
		return message.Message{}, false
	}

	reply, err := t.Run(ctx)

	return s.Finish(t, reply, err), true
}

// Messages returns a snapshot of the conversation.
func (s *Session) Messages() []message.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chat.Messages()
}

// Len returns the number of messages in the conversation.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chat.Len()
}

// UserCount returns the number of user messages, shown as the sessions
// counter in the header.
func (s *Session) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chat.CountRole(role.User)
}

func (s *Session) publish(kind EventKind, data any) {
	s.events.Publish(Event{
		Kind:      kind,
		SessionID: s.id,
		Timestamp: time.Now(),
		Data:      data,
	})
}
