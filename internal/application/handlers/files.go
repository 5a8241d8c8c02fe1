// Package handlers contains application use case handlers.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/infrastructure/atomicfile"
	"github.com/ersonp/tutor-sync/internal/infrastructure/parsers"
)

// readEvents parses an events file, choosing the parser by extension.
func readEvents(path string) ([]entities.Event, error) {
	parser := parsers.ForFile(path)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	events, err := parser.ParseEvents(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return events, nil
}

// writeEvents rewrites an events file in the format its extension names.
// The file is replaced atomically.
func writeEvents(path string, events []entities.Event) error {
	var buf bytes.Buffer

	if strings.EqualFold(filepath.Ext(path), ".json") {
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if events == nil {
			events = []entities.Event{}
		}
		if err := enc.Encode(events); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	} else if err := parsers.WriteEvents(&buf, events); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// readTemplates parses a recurring templates CSV.
func readTemplates(path string) ([]entities.Template, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	templates, err := parsers.ReadTemplates(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return templates, nil
}
