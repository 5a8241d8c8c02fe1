package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// TimeLayout is the clock format written to the events file, e.g. "3:04 PM".
const TimeLayout = "3:04 PM"

// maxBodySize caps how much of a feed is read.
const maxBodySize = 16 << 20

// Source implements ports.EventSource over an ICS feed at a URL or file path.
type Source struct {
	location string
	tz       *time.Location
	client   *http.Client
	logger   zerolog.Logger
}

// NewSource creates a Source. Derived date fields are rendered in tz.
func NewSource(location string, tz *time.Location, logger zerolog.Logger) *Source {
	if tz == nil {
		tz = time.UTC
	}
	return &Source{
		location: location,
		tz:       tz,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// Upcoming fetches the feed and returns every session starting in
// [from, from+horizon), sorted by start time.
func (s *Source) Upcoming(ctx context.Context, from time.Time, horizon time.Duration) ([]entities.Event, error) {
	body, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	calEvents, skipped, err := parseCalendar(body)
	if err != nil {
		return nil, err
	}
	for _, reason := range skipped {
		s.logger.Warn().Err(reason).Msg("skipping calendar event")
	}

	to := from.Add(horizon)
	var occurrences []occurrence
	for _, ev := range calEvents {
		occ, err := expand(ev, from, to)
		if err != nil {
			s.logger.Warn().Err(err).Str("uid", ev.UID).Msg("skipping recurring event")
			continue
		}
		occurrences = append(occurrences, occ...)
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Start.Before(occurrences[j].Start)
	})

	events := make([]entities.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		events = append(events, s.toEvent(occ))
	}

	s.logger.Info().
		Int("events", len(events)).
		Time("from", from).
		Time("to", to).
		Msg("calendar fetched")

	return events, nil
}

func (s *Source) toEvent(occ occurrence) entities.Event {
	start := occ.Start.In(s.tz)

	name := occ.Event.Attendee
	if name == "" {
		name = occ.Event.Summary
	}

	var length string
	if !occ.End.IsZero() {
		length = strconv.Itoa(int(occ.End.Sub(occ.Start).Minutes()))
	}

	return entities.Event{
		Name:     name,
		Time:     start.Format(TimeLayout),
		Date:     start.Format(entities.DateLayout),
		Day:      start.Weekday().String(),
		DateTime: start.Format(entities.DateTimeLayout),
		Length:   length,
		Type:     occ.Event.Summary,
		URI:      occ.Event.UID,
	}
}

func (s *Source) read(ctx context.Context) ([]byte, error) {
	loc, err := ParseLocation(s.location)
	if err != nil {
		return nil, err
	}

	if !loc.Remote {
		body, err := os.ReadFile(loc.Value)
		if err != nil {
			return nil, fmt.Errorf("reading calendar file: %w", err)
		}
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.Value, nil)
	if err != nil {
		return nil, fmt.Errorf("building calendar request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching calendar: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading calendar response: %w", err)
	}
	return body, nil
}
