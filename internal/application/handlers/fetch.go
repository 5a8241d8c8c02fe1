package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

// FetchHandler downloads upcoming events into the events file.
type FetchHandler struct {
	source ports.EventSource
}

// NewFetchHandler creates a new fetch handler.
func NewFetchHandler(source ports.EventSource) *FetchHandler {
	return &FetchHandler{
		source: source,
	}
}

// FetchResult contains the result of a fetch.
type FetchResult struct {
	Path   string
	Events []entities.Event
}

// Handle replaces the events file at path with the events starting in
// [from, from+horizon). Fetched events carry no id yet.
func (h *FetchHandler) Handle(ctx context.Context, path string, from time.Time, horizon time.Duration) (*FetchResult, error) {
	events, err := h.source.Upcoming(ctx, from, horizon)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	if err := writeEvents(path, events); err != nil {
		return nil, err
	}

	return &FetchResult{
		Path:   path,
		Events: events,
	}, nil
}
