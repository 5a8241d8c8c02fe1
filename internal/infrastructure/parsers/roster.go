package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// RosterColumns is the exact header of a roster file.
var RosterColumns = []string{"id", "name", "alt1", "alt2", "alt3", "alt4", "alt5"}

// ReadRoster parses a roster CSV. Every column in RosterColumns is required.
// Names and aliases are kept exactly as written, surrounding spaces included,
// since matching is exact. Alias cells are packed to the front so a hand-edited file with gaps keeps
// the no-holes invariant.
func ReadRoster(r io.Reader) (entities.Roster, error) {
	reader := newReader(r)

	colIndex, err := readHeader(reader, RosterColumns)
	if err != nil {
		return nil, err
	}

	roster := entities.Roster{}
	seen := make(map[int]int)
	err = readRows(reader, func(record []string, lineNum int) error {
		identity, err := parseIdentity(record, colIndex, lineNum)
		if err != nil {
			return err
		}
		if prev, dup := seen[identity.ID]; dup {
			return fmt.Errorf("line %d: duplicate id %d (first seen on line %d)", lineNum, identity.ID, prev)
		}
		seen[identity.ID] = lineNum
		roster = append(roster, identity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return roster, nil
}

func parseIdentity(record []string, colIndex map[string]int, lineNum int) (entities.Identity, error) {
	idStr := getColumn(record, colIndex, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return entities.Identity{}, fmt.Errorf("line %d: invalid id %q", lineNum, idStr)
	}

	identity := entities.Identity{
		ID:   id,
		Name: getRawColumn(record, colIndex, "name"),
	}
	for slot := 1; slot <= entities.AliasSlots; slot++ {
		if alias := getRawColumn(record, colIndex, "alt"+strconv.Itoa(slot)); alias != "" {
			identity.AddAlias(alias)
		}
	}
	return identity, nil
}

// WriteRoster writes the full roster with the RosterColumns header.
func WriteRoster(w io.Writer, roster entities.Roster) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(RosterColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(RosterColumns))
	for _, identity := range roster {
		row[0] = strconv.Itoa(identity.ID)
		row[1] = identity.Name
		for slot, alias := range identity.Aliases {
			row[2+slot] = alias
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing identity %d: %w", identity.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
