package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/domain/mocks"
	"github.com/ersonp/tutor-sync/internal/domain/services"
)

func testRoster() entities.Roster {
	return entities.Roster{
		{ID: 1, Name: "Ann Lee"},
		{ID: 2, Name: "Ben Ode"},
	}
}

func newResolver(store *mocks.RosterStore, prompt *mocks.Prompt) *services.AliasResolver {
	return services.NewAliasResolver(store, prompt, zerolog.Nop())
}

// writeFile writes content to name inside a fresh temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
