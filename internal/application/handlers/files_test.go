package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

func TestWriteEvents_ReplacesFile(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "csv", file: "events.csv"},
		{name: "json", file: "events.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)

			long := []entities.Event{{Name: "Ann Lee"}, {Name: "Ben Ode"}, {Name: "Cy Park"}}
			require.NoError(t, writeEvents(path, long))
			require.NoError(t, writeEvents(path, []entities.Event{{Name: "Ann Lee", ID: "1"}}))

			events, err := readEvents(path)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, "1", events[0].ID)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "only the events file should remain")
		})
	}
}
