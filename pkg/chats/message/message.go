// Package message defines the Message record rendered in the conversation.
package message

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/germanamz/drsarcastic/pkg/chats/role"
)

// Message is one entry in the conversation. Text may contain markdown.
// It is a value type that copies cheaply.
type Message struct {
	ID        string
	Role      role.Role
	Text      string
	Timestamp time.Time
}

// New creates a message with a fresh ID, stamped with the given instant.
func New(r role.Role, text string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      r,
		Text:      text,
		Timestamp: at,
	}
}

// NewUser creates a user message stamped with the current time.
func NewUser(text string) Message {
	return New(role.User, text, time.Now())
}

// NewBot creates a bot message stamped with the current time.
func NewBot(text string) Message {
	return New(role.Bot, text, time.Now())
}

// IsBlank reports whether the message text is empty or only whitespace.
func (m Message) IsBlank() bool {
	return strings.TrimSpace(m.Text) == ""
}

// Clock returns the hour and minute of the timestamp as "15:04".
func (m Message) Clock() string {
	if m.Timestamp.IsZero() {
		return ""
	}
	return m.Timestamp.Format("15:04")
}
