// Package services contains the domain logic for resolving names and
// expanding recurring appointments.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

// ErrMissingName is returned when an event to resolve has no name.
var ErrMissingName = errors.New("event has no name")

// ResolutionSource records how an event obtained its id.
type ResolutionSource string

const (
	ResolvedExact       ResolutionSource = "exact"
	ResolvedInteractive ResolutionSource = "interactive"
	ResolvedNone        ResolutionSource = "none"
)

// LearnedAlias is an alias remembered during a batch.
type LearnedAlias struct {
	IdentityID int
	Identity   string
	Alias      string
}

// Resolution is the outcome of resolving a single event.
type Resolution struct {
	Event  entities.Event
	Source ResolutionSource
	// Position is the roster index of the matched identity, or -1.
	Position int
	// Learned is set when an interactive match taught the roster a new alias.
	Learned *LearnedAlias
	// Warning is set when an interactive match could not be remembered.
	Warning string
}

// Matched reports whether the event resolved to an identity.
func (r Resolution) Matched() bool {
	return r.Source != ResolvedNone
}

// BatchResult contains the outcome of resolving a batch of events.
type BatchResult struct {
	Events      []entities.Event
	Resolutions []Resolution
	Learned     []LearnedAlias
	Warnings    []string
	// Unmatched lists, in input order, the names left with the sentinel id.
	Unmatched []string
}

// Count returns how many events were resolved by the given source.
func (b *BatchResult) Count(source ResolutionSource) int {
	n := 0
	for _, res := range b.Resolutions {
		if res.Source == source {
			n++
		}
	}
	return n
}

// AliasResolver maps free-text names onto roster identities, asking the
// operator when no exact match exists and learning from the answer.
type AliasResolver struct {
	store     ports.RosterStore
	prompt    ports.SelectionPrompt
	suggester ports.Suggester
	logger    zerolog.Logger
}

// NewAliasResolver creates a new AliasResolver.
func NewAliasResolver(store ports.RosterStore, prompt ports.SelectionPrompt, logger zerolog.Logger) *AliasResolver {
	return &AliasResolver{
		store:  store,
		prompt: prompt,
		logger: logger,
	}
}

// WithSuggester attaches an optional Suggester used to hint the operator.
func (r *AliasResolver) WithSuggester(s ports.Suggester) *AliasResolver {
	r.suggester = s
	return r
}

// Resolve resolves one event against roster. The returned roster is the
// snapshot to use for the next event: the same roster when nothing was
// learned, otherwise a copy carrying the new alias. The input roster is
// never modified.
func (r *AliasResolver) Resolve(ctx context.Context, event entities.Event, roster entities.Roster) (Resolution, entities.Roster, error) {
	if event.Name == "" {
		return Resolution{Event: event, Source: ResolvedNone, Position: -1}, roster, ErrMissingName
	}

	if pos, ok := roster.FindByName(event.Name); ok {
		event.ID = entities.FormatID(roster[pos].ID)
		return Resolution{Event: event, Source: ResolvedExact, Position: pos}, roster, nil
	}

	// The sentinel is set before asking so an aborted prompt still leaves a defined id.
	event.ID = entities.UnknownID
	res := Resolution{Event: event, Source: ResolvedNone, Position: -1}

	pos, err := r.ask(ctx, event.Name, roster)
	if err != nil {
		return res, roster, err
	}
	if pos < 0 {
		return res, roster, nil
	}

	next := roster.Clone()
	identity := &next[pos]
	res.Event.ID = entities.FormatID(identity.ID)
	res.Source = ResolvedInteractive
	res.Position = pos

	if !identity.AddAlias(event.Name) {
		res.Warning = fmt.Sprintf("%s is out of alias space", identity.Name)
		r.logger.Warn().
			Int("id", identity.ID).
			Str("identity", identity.Name).
			Str("alias", event.Name).
			Msg("alias slots full, not remembering")
		return res, roster, nil
	}

	res.Learned = &LearnedAlias{IdentityID: identity.ID, Identity: identity.Name, Alias: event.Name}
	r.logger.Info().
		Int("id", identity.ID).
		Str("identity", identity.Name).
		Str("alias", event.Name).
		Msg("remembering alias")
	return res, next, nil
}

// ResolveAll resolves every event in input order against one roster
// snapshot loaded from the store, then writes the snapshot back exactly
// once. Aliases learned from an event are visible to later events in the
// same batch. On error nothing is persisted.
func (r *AliasResolver) ResolveAll(ctx context.Context, events []entities.Event) (*BatchResult, error) {
	for i, event := range events {
		if event.Name == "" {
			return nil, fmt.Errorf("event %d: %w", i+1, ErrMissingName)
		}
	}

	roster, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	result := &BatchResult{
		Events:      make([]entities.Event, 0, len(events)),
		Resolutions: make([]Resolution, 0, len(events)),
	}

	snapshot := roster.Clone()
	for i, event := range events {
		res, next, err := r.Resolve(ctx, event, snapshot)
		if err != nil {
			return nil, fmt.Errorf("resolving event %d (%s): %w", i+1, event.Name, err)
		}
		snapshot = next

		result.Events = append(result.Events, res.Event)
		result.Resolutions = append(result.Resolutions, res)
		if res.Learned != nil {
			result.Learned = append(result.Learned, *res.Learned)
		}
		if res.Warning != "" {
			result.Warnings = append(result.Warnings, res.Warning)
		}
		if !res.Matched() {
			result.Unmatched = append(result.Unmatched, event.Name)
		}
	}

	if err := r.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("saving roster: %w", err)
	}

	r.logger.Debug().
		Int("events", len(events)).
		Int("learned", len(result.Learned)).
		Int("unmatched", len(result.Unmatched)).
		Msg("resolution batch committed")

	return result, nil
}

// ask pages through the roster until the operator picks someone, declines,
// or runs out of pages. It returns the roster position picked, or -1.
func (r *AliasResolver) ask(ctx context.Context, name string, roster entities.Roster) (int, error) {
	labels := roster.Labels()
	pages := Paginate(labels, PageSize)
	suggested := r.suggest(ctx, name, labels)

	for p, page := range pages {
		req := ports.SelectionRequest{
			Name:      name,
			Labels:    page,
			Page:      p,
			Pages:     len(pages),
			Suggested: -1,
		}
		if suggested >= 0 {
			req.Hint = "Suggested: " + labels[suggested]
			if suggested/PageSize == p {
				req.Suggested = suggested % PageSize
			}
		}

		sel, err := r.prompt.Select(ctx, req)
		if err != nil {
			return -1, fmt.Errorf("asking about %q: %w", name, err)
		}

		switch sel.Action {
		case ports.SelectPick:
			if sel.Index < 0 || sel.Index >= len(page) {
				return -1, fmt.Errorf("selection %d out of range for page %d", sel.Index, p+1)
			}
			return Ordinal(p, sel.Index, PageSize) - 1, nil
		case ports.SelectNone:
			return -1, nil
		}
	}

	return -1, nil
}

// suggest asks the optional suggester for a roster position. Failures only
// cost the hint.
func (r *AliasResolver) suggest(ctx context.Context, name string, labels []string) int {
	if r.suggester == nil || len(labels) == 0 {
		return -1
	}
	idx, err := r.suggester.Suggest(ctx, name, labels)
	if err != nil {
		r.logger.Warn().Err(err).Str("name", name).Msg("suggestion failed")
		return -1
	}
	if idx < 0 || idx >= len(labels) {
		return -1
	}
	return idx
}
