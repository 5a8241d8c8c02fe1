package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
	"github.com/ersonp/tutor-sync/internal/domain/services"
)

// ImportWeekHandler expands recurring templates and stores the sessions.
type ImportWeekHandler struct {
	scheduler *services.RecurringScheduler
	sink      ports.SessionSink
}

// NewImportWeekHandler creates a new import-week handler.
func NewImportWeekHandler(scheduler *services.RecurringScheduler, sink ports.SessionSink) *ImportWeekHandler {
	return &ImportWeekHandler{
		scheduler: scheduler,
		sink:      sink,
	}
}

// ImportWeekOptions controls import-week behavior.
type ImportWeekOptions struct {
	DryRun bool // Expand and report without writing sessions
}

// ImportWeekResult contains the result of an import-week run.
type ImportWeekResult struct {
	Schedule *services.ScheduleResult
	Pushed   int
}

// Handle reads templatesPath and imports the week containing anchor.
func (h *ImportWeekHandler) Handle(ctx context.Context, templatesPath string, anchor time.Time, opts ImportWeekOptions) (*ImportWeekResult, error) {
	templates, err := readTemplates(templatesPath)
	if err != nil {
		return nil, err
	}

	schedule, err := h.scheduler.ImportWeek(ctx, templates, anchor)
	if err != nil {
		return nil, fmt.Errorf("importing week: %w", err)
	}

	result := &ImportWeekResult{Schedule: schedule}
	if opts.DryRun || len(schedule.Sessions) == 0 {
		return result, nil
	}

	result.Pushed, err = h.sink.SaveSessions(ctx, entities.ImportRecurring,
		schedule.Anchor.Format(entities.DateLayout), schedule.Sessions)
	if err != nil {
		return nil, fmt.Errorf("saving sessions: %w", err)
	}
	return result, nil
}
