package state

import (
	"sync"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs an in-memory Manager implementation.
// Entries live only for the process lifetime; there is one small session
// per chat with a pending continuation.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

// Set registers a continuation for the chat, replacing any pending one.
func (m *memoryManager) Set(chatID int64, st State, data map[string]string) {
	if st == StateIdle || st == "" {
		m.Clear(chatID)
		return
	}
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = &Session{State: st, Data: copied}
}

// Take reads and clears the pending continuation in one critical section,
// so two concurrent takers can never both observe it.
func (m *memoryManager) Take(chatID int64) (State, map[string]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[chatID]
	if !ok || sess.State == StateIdle {
		return StateIdle, nil, false
	}
	delete(m.sessions, chatID)
	return sess.State, sess.Data, true
}

// Peek returns the pending state of a chat, or StateIdle if none exists.
func (m *memoryManager) Peek(chatID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[chatID]; ok {
		return sess.State
	}
	return StateIdle
}

// InProgress reports whether the chat currently has a pending continuation.
func (m *memoryManager) InProgress(chatID int64) bool {
	return m.Peek(chatID) != StateIdle
}

// Clear removes the session for a chat.
func (m *memoryManager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
