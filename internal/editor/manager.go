package editor

import (
	"fmt"
	"sync"

	"github.com/sero63211/daye-course-builder/internal/models"
)

// Manager tracks the open editing sessions of the process, keyed by session
// id. Each session owns its own staging store; closing a session drops both.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Open creates a new session for a lesson and registers it
func (m *Manager) Open(lessonID, authorID int, saved []models.LearningStep, learned []models.ContentItem) *Session {
	session := NewSession(lessonID, authorID, saved, learned)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return session
}

// Get returns a registered session by id
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("editing session not found")
	}
	return session, nil
}

// Close removes a session and releases its staged media
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok {
		session.Staging().Clear()
		delete(m.sessions, sessionID)
	}
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
