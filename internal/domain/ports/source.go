package ports

import (
	"context"
	"time"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// EventSource produces upcoming events from an external calendar.
type EventSource interface {
	// Upcoming returns events starting within [from, from+horizon), sorted by start.
	Upcoming(ctx context.Context, from time.Time, horizon time.Duration) ([]entities.Event, error)
}
