package mocks

import (
	"context"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// SessionSink is a mock implementation of ports.SessionSink.
type SessionSink struct {
	Sessions []entities.Session
	Kinds    []entities.ImportKind
	Anchors  []string
	Err      error

	SaveCallCount int
}

// SaveSessions records the sessions it receives.
func (m *SessionSink) SaveSessions(_ context.Context, kind entities.ImportKind, anchor string, sessions []entities.Session) (int, error) {
	m.SaveCallCount++
	if m.Err != nil {
		return 0, m.Err
	}
	m.Kinds = append(m.Kinds, kind)
	m.Anchors = append(m.Anchors, anchor)
	m.Sessions = append(m.Sessions, sessions...)
	return len(sessions), nil
}
