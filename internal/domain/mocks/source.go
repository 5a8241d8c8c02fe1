package mocks

import (
	"context"
	"time"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// EventSource is a mock implementation of ports.EventSource.
type EventSource struct {
	Events []entities.Event
	Err    error

	From    time.Time
	Horizon time.Duration
}

// Upcoming returns the configured events.
func (m *EventSource) Upcoming(_ context.Context, from time.Time, horizon time.Duration) ([]entities.Event, error) {
	m.From = from
	m.Horizon = horizon
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events, nil
}
