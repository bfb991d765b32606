// Package chats provides the data model for a Dr. Sarcastic conversation.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/drsarcastic/pkg/chats/role] holds message origins (user, bot)
//   - [github.com/germanamz/drsarcastic/pkg/chats/message] holds timestamped message records
//   - [github.com/germanamz/drsarcastic/pkg/chats/chat] holds the append-only conversation container
//
// No provider or API code is included. Chats is a foundation layer that the
// engine and the terminal UI build on.
package chats
