package parsers

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// EventColumns is the header written for event files.
var EventColumns = []string{"name", "time", "date", "day", "type", "uri", "id", "datetime", "length"}

// CSVParser parses events from CSV format.
type CSVParser struct{}

// ParseEvents reads CSV from the reader and returns parsed events.
// Only the name column is required; unknown columns are ignored.
func (p *CSVParser) ParseEvents(r io.Reader) ([]entities.Event, error) {
	reader := newReader(r)

	colIndex, err := readHeader(reader, []string{"name"})
	if err != nil {
		return nil, err
	}

	var events []entities.Event
	err = readRows(reader, func(record []string, _ int) error {
		events = append(events, entities.Event{
			Name:     getColumn(record, colIndex, "name"),
			Time:     getColumn(record, colIndex, "time"),
			Date:     getColumn(record, colIndex, "date"),
			Day:      getColumn(record, colIndex, "day"),
			Type:     getColumn(record, colIndex, "type"),
			URI:      getColumn(record, colIndex, "uri"),
			ID:       getColumn(record, colIndex, "id"),
			DateTime: getColumn(record, colIndex, "datetime"),
			Length:   getColumn(record, colIndex, "length"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// WriteEvents writes events as CSV with the EventColumns header.
func WriteEvents(w io.Writer, events []entities.Event) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(EventColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range events {
		row := []string{e.Name, e.Time, e.Date, e.Day, e.Type, e.URI, e.ID, e.DateTime, e.Length}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing event %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
