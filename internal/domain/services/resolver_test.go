package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/mocks"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

// testRoster builds a roster of n identities with sequential ids.
func testRoster(n int) entities.Roster {
	roster := make(entities.Roster, n)
	for i := range roster {
		roster[i] = entities.Identity{ID: i + 1, Name: fmt.Sprintf("Student %d", i+1)}
	}
	return roster
}

func newTestResolver(roster entities.Roster, prompt *mocks.Prompt) (*AliasResolver, *mocks.RosterStore) {
	store := mocks.NewRosterStore(roster)
	return NewAliasResolver(store, prompt, zerolog.Nop()), store
}

func names(values ...string) []entities.Event {
	events := make([]entities.Event, len(values))
	for i, v := range values {
		events[i] = entities.Event{Name: v}
	}
	return events
}

func TestAliasResolver_Resolve_ExactMatch(t *testing.T) {
	roster := entities.Roster{
		{ID: 4, Name: "Ann Lee", Aliases: [entities.AliasSlots]string{"Annie"}},
		{ID: 9, Name: "Ben Ortiz", Aliases: [entities.AliasSlots]string{"Annie", "Benny"}},
	}
	prompt := &mocks.Prompt{}
	resolver, _ := newTestResolver(roster, prompt)

	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{name: "canonical name", input: "Ben Ortiz", wantID: "9"},
		{name: "alias", input: "Benny", wantID: "9"},
		{name: "shared alias resolves to first identity", input: "Annie", wantID: "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, next, err := resolver.Resolve(context.Background(), entities.Event{Name: tt.input}, roster)
			require.NoError(t, err)
			assert.True(t, res.Matched())
			assert.Equal(t, ResolvedExact, res.Source)
			assert.Equal(t, tt.wantID, res.Event.ID)
			assert.Equal(t, roster, next)
		})
	}

	assert.Equal(t, 0, prompt.CallCount(), "exact matches never prompt")
}

func TestAliasResolver_Resolve_DoesNotModifyInputRoster(t *testing.T) {
	roster := testRoster(3)
	resolver, _ := newTestResolver(roster, &mocks.Prompt{Answers: []ports.Selection{mocks.Pick(0)}})

	res, next, err := resolver.Resolve(context.Background(), entities.Event{Name: "Stu"}, roster)
	require.NoError(t, err)
	require.NotNil(t, res.Learned)

	assert.Empty(t, roster[0].KnownAliases())
	assert.Equal(t, []string{"Stu"}, next[0].KnownAliases())
}

func TestAliasResolver_ResolveAll_SentinelWhenDeclined(t *testing.T) {
	roster := testRoster(3)
	prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.None()}}
	resolver, store := newTestResolver(roster, prompt)

	result, err := resolver.ResolveAll(context.Background(), names("Mystery Person"))
	require.NoError(t, err)

	require.Len(t, result.Events, 1)
	assert.Equal(t, entities.UnknownID, result.Events[0].ID)
	assert.Equal(t, ResolvedNone, result.Resolutions[0].Source)
	assert.Equal(t, []string{"Mystery Person"}, result.Unmatched)
	assert.Empty(t, result.Learned)
	assert.Equal(t, roster, store.Roster)
	assert.Equal(t, 1, store.SaveCallCount)
}

func TestAliasResolver_ResolveAll_LearnsAlias(t *testing.T) {
	roster := testRoster(3)
	roster[1].Aliases[0] = "Existing"
	prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.Pick(1)}}
	resolver, store := newTestResolver(roster, prompt)

	result, err := resolver.ResolveAll(context.Background(), names("Stu Two"))
	require.NoError(t, err)

	assert.Equal(t, "2", result.Events[0].ID)
	assert.Equal(t, ResolvedInteractive, result.Resolutions[0].Source)
	require.Len(t, result.Learned, 1)
	assert.Equal(t, LearnedAlias{IdentityID: 2, Identity: "Student 2", Alias: "Stu Two"}, result.Learned[0])
	assert.Equal(t, [entities.AliasSlots]string{"Existing", "Stu Two"}, store.Roster[1].Aliases)

	// A second run recognises the learned alias without prompting.
	prompt.Requests = nil
	second, err := resolver.ResolveAll(context.Background(), names("Stu Two"))
	require.NoError(t, err)
	assert.Equal(t, "2", second.Events[0].ID)
	assert.Equal(t, ResolvedExact, second.Resolutions[0].Source)
	assert.Equal(t, 0, prompt.CallCount())
}

func TestAliasResolver_ResolveAll_LearnedAliasVisibleToLaterEvents(t *testing.T) {
	prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.Pick(2)}}
	resolver, store := newTestResolver(testRoster(5), prompt)

	result, err := resolver.ResolveAll(context.Background(), names("Trey", "Student 1", "Trey"))
	require.NoError(t, err)

	assert.Equal(t, 1, prompt.CallCount())
	assert.Equal(t, []string{"3", "1", "3"}, []string{result.Events[0].ID, result.Events[1].ID, result.Events[2].ID})
	assert.Equal(t, ResolvedExact, result.Resolutions[2].Source)
	assert.Equal(t, 1, result.Count(ResolvedInteractive))
	assert.Equal(t, 2, result.Count(ResolvedExact))
	assert.Equal(t, 1, store.SaveCallCount)
}

func TestAliasResolver_ResolveAll_Pagination(t *testing.T) {
	prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.NextPage(), mocks.Pick(3)}}
	resolver, store := newTestResolver(testRoster(25), prompt)

	result, err := resolver.ResolveAll(context.Background(), names("Fourteen"))
	require.NoError(t, err)

	assert.Equal(t, "14", result.Events[0].ID)
	require.Len(t, prompt.Requests, 2)

	first, second := prompt.Requests[0], prompt.Requests[1]
	assert.Equal(t, 0, first.Page)
	assert.Equal(t, 3, first.Pages)
	assert.Len(t, first.Labels, 10)
	assert.Equal(t, "[01] Student 1", first.Labels[0])
	assert.Equal(t, 1, second.Page)
	assert.Equal(t, "[11] Student 11", second.Labels[0])
	assert.Equal(t, "Fourteen", second.Name)

	assert.Equal(t, []string{"Fourteen"}, store.Roster[13].KnownAliases())
}

func TestAliasResolver_ResolveAll_ExhaustingPagesLeavesUnknown(t *testing.T) {
	prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.NextPage(), mocks.NextPage(), mocks.NextPage()}}
	resolver, store := newTestResolver(testRoster(25), prompt)

	result, err := resolver.ResolveAll(context.Background(), names("Nobody"))
	require.NoError(t, err)

	assert.Equal(t, entities.UnknownID, result.Events[0].ID)
	assert.Equal(t, 3, prompt.CallCount())
	assert.Equal(t, testRoster(25), store.Roster)
}

func TestAliasResolver_ResolveAll_EmptyRoster(t *testing.T) {
	prompt := &mocks.Prompt{}
	resolver, _ := newTestResolver(entities.Roster{}, prompt)

	result, err := resolver.ResolveAll(context.Background(), names("Anyone"))
	require.NoError(t, err)

	assert.Equal(t, entities.UnknownID, result.Events[0].ID)
	assert.Equal(t, 0, prompt.CallCount())
}

func TestAliasResolver_ResolveAll_SlotExhaustion(t *testing.T) {
	full := [entities.AliasSlots]string{"a", "b", "c", "d", "e"}
	roster := entities.Roster{{ID: 1, Name: "Full House", Aliases: full}}
	prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.Pick(0)}}
	resolver, store := newTestResolver(roster, prompt)

	result, err := resolver.ResolveAll(context.Background(), names("Sixth Name"))
	require.NoError(t, err)

	assert.Equal(t, "1", result.Events[0].ID)
	assert.Equal(t, ResolvedInteractive, result.Resolutions[0].Source)
	assert.Empty(t, result.Learned)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "out of alias space")
	assert.Equal(t, full, store.Roster[0].Aliases)
}

func TestAliasResolver_ResolveAll_Errors(t *testing.T) {
	loadErr := errors.New("disk on fire")
	promptErr := errors.New("terminal closed")

	tests := []struct {
		name    string
		events  []entities.Event
		store   func(*mocks.RosterStore)
		prompt  *mocks.Prompt
		wantErr error
		errMsg  string
		loads   int
	}{
		{
			name:    "missing name",
			events:  []entities.Event{{Name: "Student 1"}, {Day: "Monday"}},
			prompt:  &mocks.Prompt{},
			wantErr: ErrMissingName,
			errMsg:  "event 2",
			loads:   0,
		},
		{
			name:    "roster load failure",
			events:  names("Student 1"),
			store:   func(s *mocks.RosterStore) { s.LoadErr = loadErr },
			prompt:  &mocks.Prompt{},
			wantErr: loadErr,
			errMsg:  "loading roster",
			loads:   1,
		},
		{
			name:    "prompt failure",
			events:  names("Student 1", "Stranger"),
			prompt:  &mocks.Prompt{Err: promptErr},
			wantErr: promptErr,
			errMsg:  "resolving event 2 (Stranger)",
			loads:   1,
		},
		{
			name:   "pick out of range",
			events: names("Stranger"),
			prompt: &mocks.Prompt{Answers: []ports.Selection{mocks.Pick(7)}},
			errMsg: "out of range",
			loads:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, store := newTestResolver(testRoster(3), tt.prompt)
			if tt.store != nil {
				tt.store(store)
			}

			result, err := resolver.ResolveAll(context.Background(), tt.events)
			require.Error(t, err)
			assert.Nil(t, result)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, tt.loads, store.LoadCallCount)
			assert.Equal(t, 0, store.SaveCallCount, "fatal errors must not persist the roster")
		})
	}
}

func TestAliasResolver_ResolveAll_SaveFailure(t *testing.T) {
	resolver, store := newTestResolver(testRoster(2), &mocks.Prompt{})
	store.SaveErr = errors.New("read-only")

	_, err := resolver.ResolveAll(context.Background(), names("Student 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving roster")
}

func TestAliasResolver_Suggestion(t *testing.T) {
	t.Run("hint shown on every page and preselected on its own page", func(t *testing.T) {
		prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.NextPage(), mocks.Pick(2)}}
		resolver, _ := newTestResolver(testRoster(15), prompt)
		suggester := &mocks.Suggester{Index: 12}
		resolver.WithSuggester(suggester)

		result, err := resolver.ResolveAll(context.Background(), names("Thirteen"))
		require.NoError(t, err)

		assert.Equal(t, "13", result.Events[0].ID)
		assert.Equal(t, []string{"Thirteen"}, suggester.Names)
		require.Len(t, prompt.Requests, 2)
		assert.Equal(t, -1, prompt.Requests[0].Suggested)
		assert.Equal(t, "Suggested: [13] Student 13", prompt.Requests[0].Hint)
		assert.Equal(t, 2, prompt.Requests[1].Suggested)
	})

	t.Run("suggester errors are ignored", func(t *testing.T) {
		prompt := &mocks.Prompt{Answers: []ports.Selection{mocks.None()}}
		resolver, _ := newTestResolver(testRoster(3), prompt)
		resolver.WithSuggester(&mocks.Suggester{Err: errors.New("rate limited")})

		result, err := resolver.ResolveAll(context.Background(), names("Someone"))
		require.NoError(t, err)
		assert.Equal(t, entities.UnknownID, result.Events[0].ID)
		assert.Equal(t, -1, prompt.Requests[0].Suggested)
		assert.Empty(t, prompt.Requests[0].Hint)
	})

	t.Run("out of range suggestion is dropped", func(t *testing.T) {
		prompt := &mocks.Prompt{}
		resolver, _ := newTestResolver(testRoster(3), prompt)
		resolver.WithSuggester(&mocks.Suggester{Index: 40})

		_, err := resolver.ResolveAll(context.Background(), names("Someone"))
		require.NoError(t, err)
		assert.Empty(t, prompt.Requests[0].Hint)
	})
}
