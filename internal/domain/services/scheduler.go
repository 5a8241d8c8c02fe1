package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// ErrInvalidTime is returned for a time of day that is not HH:MM.
var ErrInvalidTime = errors.New("invalid time of day")

// ScheduleResult contains the outcome of expanding templates for one week.
type ScheduleResult struct {
	// Anchor is the first day considered; WeekEnd is the Sunday of its week.
	Anchor  time.Time
	WeekEnd time.Time
	// Events holds every template as an event, with Date and DateTime left
	// empty when the occurrence is already past.
	Events []entities.Event
	// Sessions holds only occurrences with a timestamp and a resolved id.
	Sessions []entities.Session
	Batch    *BatchResult
}

// Dropped returns how many templates did not produce a session.
func (r *ScheduleResult) Dropped() int {
	return len(r.Events) - len(r.Sessions)
}

// RecurringScheduler expands weekly appointment templates into the
// concrete occurrences of a single week.
type RecurringScheduler struct {
	resolver *AliasResolver
	logger   zerolog.Logger
}

// NewRecurringScheduler creates a new RecurringScheduler.
func NewRecurringScheduler(resolver *AliasResolver, logger zerolog.Logger) *RecurringScheduler {
	return &RecurringScheduler{
		resolver: resolver,
		logger:   logger,
	}
}

// plannedTemplate is a template whose weekday and clock time were validated.
type plannedTemplate struct {
	day      entities.Weekday
	clock    time.Duration
	hasClock bool
}

// ImportWeek resolves every template's person and dates it inside the week
// containing anchor. Weekdays before the anchor's weekday get no date.
// Weekdays and times are validated before anything is resolved, so a bad
// template aborts the run without touching the roster.
func (s *RecurringScheduler) ImportWeek(ctx context.Context, templates []entities.Template, anchor time.Time) (*ScheduleResult, error) {
	plans := make([]plannedTemplate, len(templates))
	for i, tpl := range templates {
		plan, err := planTemplate(tpl)
		if err != nil {
			return nil, fmt.Errorf("template %d (%s): %w", i+1, tpl.Name, err)
		}
		plans[i] = plan
	}

	events := make([]entities.Event, len(templates))
	for i, tpl := range templates {
		events[i] = tpl.Event()
	}

	batch, err := s.resolver.ResolveAll(ctx, events)
	if err != nil {
		return nil, err
	}

	start := DateOf(anchor)
	result := &ScheduleResult{
		Anchor:   start,
		WeekEnd:  WeekEnd(start),
		Events:   make([]entities.Event, 0, len(batch.Events)),
		Sessions: make([]entities.Session, 0, len(batch.Events)),
		Batch:    batch,
	}

	for i, event := range batch.Events {
		plan := plans[i]
		date, ok := WeekDate(start, plan.day)
		if ok {
			event.Date = date.Format(entities.DateLayout)
			if plan.hasClock {
				event.DateTime = date.Add(plan.clock).Format(entities.DateTimeLayout)
			}
		}
		result.Events = append(result.Events, event)

		session, keep := sessionFor(event, date, plan)
		if !keep {
			continue
		}
		result.Sessions = append(result.Sessions, session)
	}

	s.logger.Info().
		Str("from", result.Anchor.Format(entities.DateLayout)).
		Str("to", result.WeekEnd.Format(entities.DateLayout)).
		Int("templates", len(templates)).
		Int("sessions", len(result.Sessions)).
		Msg("week expanded")

	return result, nil
}

// sessionFor builds the sink row for an event, reporting false when the
// event has no timestamp or no identity.
func sessionFor(event entities.Event, date time.Time, plan plannedTemplate) (entities.Session, bool) {
	if event.DateTime == "" {
		return entities.Session{}, false
	}
	id, ok := event.IdentityID()
	if !ok {
		return entities.Session{}, false
	}
	return entities.Session{
		StudentID: id,
		Start:     date.Add(plan.clock),
		Length:    event.Length,
	}, true
}

func planTemplate(tpl entities.Template) (plannedTemplate, error) {
	day, err := entities.ParseWeekday(tpl.Day)
	if err != nil {
		return plannedTemplate{}, err
	}
	plan := plannedTemplate{day: day}
	if tpl.Time == "" {
		return plan, nil
	}
	clock, err := ParseClock(tpl.Time)
	if err != nil {
		return plannedTemplate{}, err
	}
	plan.clock = clock
	plan.hasClock = true
	return plan, nil
}

// DateOf strips the clock from t and returns midnight of the same calendar
// day as a zone-free (UTC) value, so later arithmetic ignores DST.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOffset returns how many days date is past the Monday of its week.
func mondayOffset(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// WeekDate returns the date of day inside the Monday-Sunday week containing
// anchor. It reports false when that date is before anchor; past days are
// never rolled into the following week.
func WeekDate(anchor time.Time, day entities.Weekday) (time.Time, bool) {
	start := DateOf(anchor)
	candidate := start.AddDate(0, 0, day.Offset()-mondayOffset(start))
	if candidate.Before(start) {
		return time.Time{}, false
	}
	return candidate, true
}

// WeekEnd returns the Sunday of the week containing anchor.
func WeekEnd(anchor time.Time) time.Time {
	start := DateOf(anchor)
	return start.AddDate(0, 0, entities.Sunday.Offset()-mondayOffset(start))
}

// ParseClock parses an HH:MM time of day into its distance from midnight.
func ParseClock(value string) (time.Duration, error) {
	t, err := time.Parse(entities.ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
