package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

// RosterHandler lists and extends the roster.
type RosterHandler struct {
	store ports.RosterStore
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(store ports.RosterStore) *RosterHandler {
	return &RosterHandler{
		store: store,
	}
}

// List returns the roster in stored order.
func (h *RosterHandler) List(ctx context.Context) (entities.Roster, error) {
	roster, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	return roster, nil
}

// Add appends a new identity with the next free id and no aliases.
// A name that already resolves to someone is rejected.
func (h *RosterHandler) Add(ctx context.Context, name string) (entities.Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Identity{}, errors.New("name is required")
	}

	roster, err := h.store.Load(ctx)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("loading roster: %w", err)
	}

	if pos, ok := roster.FindByName(name); ok {
		return entities.Identity{}, fmt.Errorf("%q already on roster as %s", name, roster[pos].Label())
	}

	identity := entities.Identity{ID: roster.NextID(), Name: name}
	roster = append(roster, identity)

	if err := h.store.Save(ctx, roster); err != nil {
		return entities.Identity{}, fmt.Errorf("saving roster: %w", err)
	}
	return identity, nil
}
