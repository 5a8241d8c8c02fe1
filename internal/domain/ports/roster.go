// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// RosterStore loads and persists the identity table. Persistence is always a
// full rewrite of the roster, never a patch.
type RosterStore interface {
	// Load reads the whole roster in stored order.
	Load(ctx context.Context) (entities.Roster, error)

	// Save replaces the stored roster with the given one.
	Save(ctx context.Context, roster entities.Roster) error
}
