// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// RosterStore is an in-memory implementation of ports.RosterStore.
type RosterStore struct {
	Roster  entities.Roster
	LoadErr error
	SaveErr error

	LoadCallCount int
	SaveCallCount int
}

// NewRosterStore creates a RosterStore holding a copy of roster.
func NewRosterStore(roster entities.Roster) *RosterStore {
	return &RosterStore{Roster: roster.Clone()}
}

// Load returns a copy of the stored roster.
func (m *RosterStore) Load(_ context.Context) (entities.Roster, error) {
	m.LoadCallCount++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Roster.Clone(), nil
}

// Save replaces the stored roster.
func (m *RosterStore) Save(_ context.Context, roster entities.Roster) error {
	m.SaveCallCount++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Roster = roster.Clone()
	return nil
}
