// Package chat provides the append-only conversation container.
package chat

import (
	"github.com/germanamz/drsarcastic/pkg/chats/message"
	"github.com/germanamz/drsarcastic/pkg/chats/role"
)

// Chat is an ordered, append-only list of messages. The only other mutation
// is Reset, which replaces the whole list. The zero value is ready to use.
// Chat is not safe for concurrent use; callers must synchronize externally.
type Chat struct {
	messages []message.Message
}

// New creates a Chat pre-populated with the given messages.
func New(msgs ...message.Message) *Chat {
	return &Chat{messages: msgs}
}

// Append adds one or more messages to the conversation.
func (c *Chat) Append(msgs ...message.Message) {
	c.messages = append(c.messages, msgs...)
}

// Reset discards the conversation and starts over with the given messages.
func (c *Chat) Reset(msgs ...message.Message) {
	c.messages = append([]message.Message(nil), msgs...)
}

// Len returns the number of messages in the conversation.
func (c *Chat) Len() int {
	return len(c.messages)
}

// Messages returns a copy of all messages in the conversation.
func (c *Chat) Messages() []message.Message {
	cp := make([]message.Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// CountRole returns how many messages have the given role.
func (c *Chat) CountRole(r role.Role) int {
	n := 0
	for _, m := range c.messages {
		if m.Role == r {
			n++
		}
	}
	return n
}
