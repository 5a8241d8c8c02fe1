package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// JSONParser parses events from a JSON array.
type JSONParser struct{}

// ParseEvents reads a JSON array of event objects.
func (p *JSONParser) ParseEvents(r io.Reader) ([]entities.Event, error) {
	var events []entities.Event

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&events); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return events, nil
}
