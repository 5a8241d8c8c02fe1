package ports

import (
	"context"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

// SessionSink accepts the final, filtered list of sessions.
type SessionSink interface {
	// SaveSessions appends sessions and records the import, returning the
	// number of rows written.
	SaveSessions(ctx context.Context, kind entities.ImportKind, anchor string, sessions []entities.Session) (int, error)
}
