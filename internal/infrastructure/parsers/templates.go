package parsers

import (
	"io"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// ReadTemplates parses recurring appointment templates.
// Expected columns: name, day, and optionally time, length, type.
func ReadTemplates(r io.Reader) ([]entities.Template, error) {
	reader := newReader(r)

	colIndex, err := readHeader(reader, []string{"name", "day"})
	if err != nil {
		return nil, err
	}

	var templates []entities.Template
	err = readRows(reader, func(record []string, _ int) error {
		templates = append(templates, entities.Template{
			Name:   getColumn(record, colIndex, "name"),
			Day:    getColumn(record, colIndex, "day"),
			Time:   getColumn(record, colIndex, "time"),
			Length: getColumn(record, colIndex, "length"),
			Type:   getColumn(record, colIndex, "type"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return templates, nil
}
