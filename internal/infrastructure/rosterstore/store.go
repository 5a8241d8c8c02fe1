// Package rosterstore persists the roster as a CSV file.
package rosterstore

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/infrastructure/atomicfile"
	"github.com/ersonp/tutor-sync/internal/infrastructure/parsers"
)

// FileStore implements ports.RosterStore over a single CSV file.
type FileStore struct {
	path string
}

// New creates a FileStore for the roster at path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the roster file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the whole roster.
func (s *FileStore) Load(ctx context.Context) (entities.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	roster, err := parsers.ReadRoster(f)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", s.path, err)
	}
	return roster, nil
}

// Save rewrites the whole roster. The file is replaced atomically so a
// failed write never leaves a truncated roster behind.
func (s *FileStore) Save(ctx context.Context, roster entities.Roster) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := parsers.WriteRoster(&buf, roster); err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}

	if err := atomicfile.Write(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("saving roster: %w", err)
	}
	return nil
}
