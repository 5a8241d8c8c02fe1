package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/mocks"
)

func TestRosterHandler_List(t *testing.T) {
	handler := NewRosterHandler(mocks.NewRosterStore(testRoster()))

	roster, err := handler.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"[01] Ann Lee", "[02] Ben Ode"}, roster.Labels())
}

func TestRosterHandler_Add(t *testing.T) {
	store := mocks.NewRosterStore(entities.Roster{{ID: 1, Name: "Ann Lee"}, {ID: 4, Name: "Ben Ode"}})
	handler := NewRosterHandler(store)

	identity, err := handler.Add(context.Background(), "  Cy Park ")
	require.NoError(t, err)
	assert.Equal(t, entities.Identity{ID: 5, Name: "Cy Park"}, identity)

	require.Len(t, store.Roster, 3)
	assert.Equal(t, identity, store.Roster[2])
}

func TestRosterHandler_Add_Errors(t *testing.T) {
	roster := entities.Roster{{ID: 1, Name: "Ann Lee", Aliases: [entities.AliasSlots]string{"Annie"}}}

	tests := []struct {
		name    string
		input   string
		saveErr error
		wantErr string
	}{
		{name: "empty name", input: " ", wantErr: "name is required"},
		{name: "existing name", input: "Ann Lee", wantErr: `"Ann Lee" already on roster as [01] Ann Lee`},
		{name: "existing alias", input: "Annie", wantErr: "already on roster"},
		{name: "save failure", input: "Ben Ode", saveErr: errors.New("read-only"), wantErr: "saving roster: read-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewRosterStore(roster)
			store.SaveErr = tt.saveErr

			_, err := NewRosterHandler(store).Add(context.Background(), tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
