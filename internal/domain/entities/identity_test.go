package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_Label(t *testing.T) {
	assert.Equal(t, "[07] Jane Doe", Identity{ID: 7, Name: "Jane Doe"}.Label())
	assert.Equal(t, "[112] Wide Id", Identity{ID: 112, Name: "Wide Id"}.Label())
}

func TestIdentity_Matches(t *testing.T) {
	identity := Identity{ID: 1, Name: "Robert Smith", Aliases: [AliasSlots]string{"Bob", "Rob"}}

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "canonical name", input: "Robert Smith", expected: true},
		{name: "first alias", input: "Bob", expected: true},
		{name: "second alias", input: "Rob", expected: true},
		{name: "case differs", input: "bob", expected: false},
		{name: "empty never matches empty slots", input: "", expected: false},
		{name: "unrelated", input: "Alice", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, identity.Matches(tt.input))
		})
	}
}

func TestIdentity_AddAlias(t *testing.T) {
	t.Run("fills first empty slot", func(t *testing.T) {
		identity := Identity{ID: 1, Name: "A", Aliases: [AliasSlots]string{"x"}}
		require.True(t, identity.AddAlias("y"))
		assert.Equal(t, [AliasSlots]string{"x", "y"}, identity.Aliases)
	})

	t.Run("full slots are left untouched", func(t *testing.T) {
		full := [AliasSlots]string{"a", "b", "c", "d", "e"}
		identity := Identity{ID: 1, Name: "A", Aliases: full}
		assert.False(t, identity.AddAlias("f"))
		assert.Equal(t, full, identity.Aliases)
	})
}

func TestRoster_FindByName_FirstMatchWins(t *testing.T) {
	roster := Roster{
		{ID: 1, Name: "Ann", Aliases: [AliasSlots]string{"Shared"}},
		{ID: 2, Name: "Ben", Aliases: [AliasSlots]string{"Shared"}},
	}

	pos, ok := roster.FindByName("Shared")
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	_, ok = roster.FindByName("Nobody")
	assert.False(t, ok)
}

func TestRoster_Clone(t *testing.T) {
	roster := Roster{{ID: 1, Name: "Ann"}}
	clone := roster.Clone()
	clone[0].AddAlias("Annie")

	assert.Empty(t, roster[0].KnownAliases())
	assert.Equal(t, []string{"Annie"}, clone[0].KnownAliases())
}

func TestRoster_NextID(t *testing.T) {
	assert.Equal(t, 1, Roster{}.NextID())
	assert.Equal(t, 8, Roster{{ID: 3}, {ID: 7}, {ID: 2}}.NextID())
}

func TestParseWeekday(t *testing.T) {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for offset, name := range names {
		day, err := ParseWeekday(name)
		require.NoError(t, err)
		assert.Equal(t, offset, day.Offset())
		assert.Equal(t, name, day.String())
	}

	for _, bad := range []string{"monday", "MONDAY", "Mon", "", " Monday", "Funday"} {
		_, err := ParseWeekday(bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, errors.Is(err, ErrUnrecognizedWeekday))
	}
}

func TestEvent_IdentityID(t *testing.T) {
	id, ok := Event{ID: "12"}.IdentityID()
	require.True(t, ok)
	assert.Equal(t, 12, id)

	_, ok = Event{ID: UnknownID}.IdentityID()
	assert.False(t, ok)

	_, ok = Event{}.IdentityID()
	assert.False(t, ok)
}
