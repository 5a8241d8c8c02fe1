package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
	"github.com/ersonp/tutor-sync/internal/domain/services"
)

// PushHandler sends resolved calendar events to the session sink.
type PushHandler struct {
	resolver *services.AliasResolver
	sink     ports.SessionSink
}

// NewPushHandler creates a new push handler.
func NewPushHandler(resolver *services.AliasResolver, sink ports.SessionSink) *PushHandler {
	return &PushHandler{
		resolver: resolver,
		sink:     sink,
	}
}

// PushOptions controls push behavior.
type PushOptions struct {
	DryRun bool // Resolve and report without writing sessions
}

// PushResult contains the result of a push.
type PushResult struct {
	Batch    *services.BatchResult
	Sessions []entities.Session
	Pushed   int
	// Skipped counts events without an id or a timestamp.
	Skipped int
}

// Handle resolves the events file again, so aliases learned since the last
// resolve apply, and appends every usable event to the sink.
func (h *PushHandler) Handle(ctx context.Context, path string, opts PushOptions) (*PushResult, error) {
	events, err := readEvents(path)
	if err != nil {
		return nil, err
	}

	batch, err := h.resolver.ResolveAll(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("resolving events: %w", err)
	}

	sessions, err := SessionsFromEvents(batch.Events)
	if err != nil {
		return nil, err
	}

	result := &PushResult{
		Batch:    batch,
		Sessions: sessions,
		Skipped:  len(batch.Events) - len(sessions),
	}

	if opts.DryRun || len(sessions) == 0 {
		return result, nil
	}

	result.Pushed, err = h.sink.SaveSessions(ctx, entities.ImportCalendar, "", sessions)
	if err != nil {
		return nil, fmt.Errorf("saving sessions: %w", err)
	}
	return result, nil
}

// SessionsFromEvents converts events to sessions, dropping those with the
// sentinel id, no id, or no timestamp. A timestamp that does not parse is
// an error.
func SessionsFromEvents(events []entities.Event) ([]entities.Session, error) {
	sessions := make([]entities.Session, 0, len(events))
	for i, e := range events {
		id, ok := e.IdentityID()
		if !ok || e.DateTime == "" {
			continue
		}
		start, err := time.Parse(entities.DateTimeLayout, e.DateTime)
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): parsing datetime %q: %w", i+1, e.Name, e.DateTime, err)
		}
		sessions = append(sessions, entities.Session{
			StudentID: id,
			Start:     start,
			Length:    e.Length,
		})
	}
	return sessions, nil
}
