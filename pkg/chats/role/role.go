// Package role defines who authored a message in a conversation.
package role

// Role represents the origin of a message.
type Role string

const (
	User Role = "user"
	Bot  Role = "bot"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case User, Bot:
		return true
	}
	return false
}

// String returns the underlying string value of the role.
func (r Role) String() string {
	return string(r)
}
