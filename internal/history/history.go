// Package history holds the chat-style transcript shown for a session.
package history

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Entry is one displayed line of the user/AI exchange.
type Entry struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// Log is an append-only, insertion-ordered transcript. Like the quota
// tracker it is owned by a single session, which serializes access.
type Log struct {
	entries []Entry
}

// NewLog returns an empty transcript.
func NewLog() *Log {
	return &Log{}
}

// Append adds one entry at the end of the transcript.
func (l *Log) Append(role Role, message string) {
	l.entries = append(l.entries, Entry{Role: role, Message: message})
}

// Clear empties the transcript. There is no undo.
func (l *Log) Clear() {
	l.entries = nil
}

// Len reports the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a snapshot copy safe to render after the log moves on.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
