// Package parsers reads and writes the tabular files the tool works with:
// the roster, event lists and recurring templates.
package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

// EventParser parses events from a structured source.
type EventParser interface {
	ParseEvents(r io.Reader) ([]entities.Event, error)
}

// ForFormat returns the appropriate event parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) EventParser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate event parser based on file extension.
func ForFile(filename string) EventParser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// readHeader reads the header row and checks that every required column exists.
func readHeader(reader *csv.Reader, required []string) (map[string]int, error) {
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("reading CSV header: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return colIndex, nil
}

// readRows calls fn for every data row with its 1-indexed file line number.
func readRows(reader *csv.Reader, fn func(record []string, lineNum int) error) error {
	lineNum := 1 // Header is line 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if err := fn(record, lineNum); err != nil {
			return err
		}
	}
}

// newReader returns a csv.Reader tolerant of rows with missing trailing cells.
func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

// getRawColumn is getColumn without trimming, for cells that must survive a
// write-then-read cycle byte for byte.
func getRawColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
