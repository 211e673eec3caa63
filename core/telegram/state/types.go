package state

// State identifies the continuation step a conversation is waiting on.
type State string

const (
	// StateIdle indicates there is no pending continuation for the chat.
	StateIdle State = "idle"
)

// Session stores the pending continuation and its context payload for a chat.
type Session struct {
	State State
	Data  map[string]string
}

// Manager owns conversation state keyed by chat id. At most one pending
// continuation exists per chat; Set replaces any previous one.
type Manager interface {
	// Set registers a continuation, overwriting whatever was pending.
	Set(chatID int64, st State, data map[string]string)
	// Take atomically reads and clears the pending continuation.
	// Exactly one caller observes a pending state under concurrent access.
	Take(chatID int64) (State, map[string]string, bool)
	// Peek returns the pending state without clearing it.
	Peek(chatID int64) State
	// InProgress reports whether the chat has a pending continuation.
	InProgress(chatID int64) bool
	// Clear drops any pending continuation for the chat.
	Clear(chatID int64)
}
