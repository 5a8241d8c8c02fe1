// Package ics reads upcoming sessions from an iCalendar feed.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// calendarEvent is a VEVENT reduced to what a session needs.
type calendarEvent struct {
	UID      string
	Summary  string
	Attendee string
	Start    time.Time
	End      time.Time
	RRule    string
	ExDates  []time.Time
}

// occurrence is one concrete instance of a calendarEvent.
type occurrence struct {
	Event calendarEvent
	Start time.Time
	End   time.Time
}

// parseCalendar returns the timed, non-cancelled VEVENTs of an ICS payload.
// Events that cannot be read are returned in skipped with a reason.
func parseCalendar(body []byte) (events []calendarEvent, skipped []error, err error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}

	for _, ve := range cal.Events() {
		ev, ok, err := parseVEvent(ve)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if ok {
			events = append(events, ev)
		}
	}
	return events, skipped, nil
}

// parseVEvent returns ok=false for events that are deliberately ignored:
// cancelled ones and all-day ones.
func parseVEvent(ve *ical.VEvent) (calendarEvent, bool, error) {
	var out calendarEvent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
		return out, false, nil
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		if cn, ok := p.ICalParameters["CN"]; ok && len(cn) > 0 && cn[0] != "" {
			out.Attendee = strings.Trim(cn[0], `"`)
			break
		}
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, false, fmt.Errorf("event %q: missing DTSTART", out.UID)
	}
	if isAllDay(dtStart) {
		return out, false, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, false, fmt.Errorf("event %q: reading DTSTART: %w", out.UID, err)
	}
	out.Start = start

	// A missing DTEND leaves End zero; the length is then unknown.
	if end, err := ve.GetEndAt(); err == nil {
		out.End = end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, start.Location()); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, true, nil
}

func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses a DATE or DATE-TIME value; floating times use loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}

// expand returns the occurrences of ev starting in [from, to).
func expand(ev calendarEvent, from, to time.Time) ([]occurrence, error) {
	duration := time.Duration(0)
	if !ev.End.IsZero() {
		duration = ev.End.Sub(ev.Start)
	}

	var starts []time.Time
	if ev.RRule == "" {
		starts = []time.Time{ev.Start}
	} else {
		r, err := rrule.StrToRRule(ev.RRule)
		if err != nil {
			return nil, fmt.Errorf("event %q: parsing RRULE %q: %w", ev.UID, ev.RRule, err)
		}
		r.DTStart(ev.Start)

		var set rrule.Set
		set.RRule(r)
		for _, ex := range ev.ExDates {
			set.ExDate(ex.In(ev.Start.Location()))
		}
		starts = set.Between(from.In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	}

	var out []occurrence
	for _, start := range starts {
		if start.Before(from) || !start.Before(to) {
			continue
		}
		occ := occurrence{Event: ev, Start: start}
		if !ev.End.IsZero() {
			occ.End = start.Add(duration)
		}
		out = append(out, occ)
	}
	return out, nil
}
