// Package prompt holds SelectionPrompt implementations that need no terminal.
package prompt

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

// Unattended answers "none of these" to every page, so scheduled runs never
// learn aliases. Each unmatched name is logged once.
type Unattended struct {
	logger zerolog.Logger
}

// NewUnattended creates an Unattended prompt.
func NewUnattended(logger zerolog.Logger) *Unattended {
	return &Unattended{logger: logger}
}

// Select implements ports.SelectionPrompt.
func (u *Unattended) Select(ctx context.Context, req ports.SelectionRequest) (ports.Selection, error) {
	if err := ctx.Err(); err != nil {
		return ports.Selection{}, err
	}
	u.logger.Warn().Str("name", req.Name).Msg("no roster match; needs manual resolution")
	return ports.Selection{Action: ports.SelectNone}, nil
}
