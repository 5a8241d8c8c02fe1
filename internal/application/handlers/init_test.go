package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tutor-sync/internal/infrastructure/config"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SQL_PATH", "TUTORSYNC_ROSTER", "CALENDAR_ICS_URL", "OPENAI_API_KEY", "TUTORSYNC_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestInitHandler_Handle_Success(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := t.TempDir()

	result, err := NewInitHandler().Handle(context.Background(), tmpDir)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.True(t, config.Exists(tmpDir))

	rosterPath := filepath.Join(tmpDir, "roster.csv")
	templatesPath := filepath.Join(tmpDir, "recurring.csv")
	assert.Equal(t, []string{rosterPath, templatesPath}, result.Created)
	assert.Equal(t, "id,name,alt1,alt2,alt3,alt4,alt5\n", readFile(t, rosterPath))
	assert.Equal(t, templatesHeader, readFile(t, templatesPath))
}

func TestInitHandler_Handle_KeepsExistingRoster(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := t.TempDir()

	existing := "id,name,alt1,alt2,alt3,alt4,alt5\n1,Ann Lee,,,,,\n"
	rosterPath := filepath.Join(tmpDir, "roster.csv")
	require.NoError(t, os.WriteFile(rosterPath, []byte(existing), 0644))

	result, err := NewInitHandler().Handle(context.Background(), tmpDir)
	require.NoError(t, err)
	assert.NotContains(t, result.Created, rosterPath)
	assert.Equal(t, existing, readFile(t, rosterPath))
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := t.TempDir()

	// Initialize first
	err := config.WriteDefault(tmpDir)
	require.NoError(t, err)

	_, err = NewInitHandler().Handle(context.Background(), tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}
