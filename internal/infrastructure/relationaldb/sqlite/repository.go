// Package sqlite provides a SQLite implementation of the SessionSink port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.SessionSink using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One connection: SQLite has a single writer and :memory: is per connection.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Sessions consumed by the billing sheet; column names are fixed.
	CREATE TABLE IF NOT EXISTS Sessions (
		Student_ID INTEGER NOT NULL,
		Date_Time TEXT NOT NULL,
		Length TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_student ON Sessions(Student_ID);

	-- One row per push or recurring import
	CREATE TABLE IF NOT EXISTS import_log (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		sessions INTEGER NOT NULL,
		anchor TEXT,
		details TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_import_log_created ON import_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveSessions appends sessions and an import_log row in one transaction.
// An empty batch writes nothing and returns zero.
func (r *Repository) SaveSessions(ctx context.Context, kind entities.ImportKind, anchor string, sessions []entities.Session) (int, error) {
	if len(sessions) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO Sessions (Student_ID, Date_Time, Length) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	students := make([]int, 0, len(sessions))
	for _, s := range sessions {
		if _, err := stmt.ExecContext(ctx, s.StudentID, s.Start.Format(entities.DateTimeLayout), nullIfEmpty(s.Length)); err != nil {
			return 0, fmt.Errorf("inserting session for student %d: %w", s.StudentID, err)
		}
		students = append(students, s.StudentID)
	}

	details, err := json.Marshal(map[string]any{"students": students})
	if err != nil {
		return 0, fmt.Errorf("marshaling details: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_log (id, kind, sessions, anchor, details, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		generateUUID(), string(kind), len(sessions), nullIfEmpty(anchor), string(details),
		timeNow().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("logging import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing sessions: %w", err)
	}
	return len(sessions), nil
}

// CountSessions returns the number of stored sessions.
func (r *Repository) CountSessions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Sessions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return count, nil
}

// ListSessions returns the stored sessions of one student in timestamp order.
func (r *Repository) ListSessions(ctx context.Context, studentID int) ([]entities.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT Student_ID, Date_Time, Length FROM Sessions WHERE Student_ID = ? ORDER BY Date_Time`, studentID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []entities.Session
	for rows.Next() {
		var s entities.Session
		var start string
		var length sql.NullString
		if err := rows.Scan(&s.StudentID, &start, &length); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		s.Start, err = time.Parse(entities.DateTimeLayout, start)
		if err != nil {
			return nil, fmt.Errorf("parsing session time %q: %w", start, err)
		}
		s.Length = length.String
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListImports returns the most recent import records, newest first.
func (r *Repository) ListImports(ctx context.Context, limit int) ([]entities.ImportRecord, error) {
	query := `
		SELECT id, kind, sessions, anchor, details, created_at
		FROM import_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import log: %w", err)
	}
	defer rows.Close()

	records := make([]entities.ImportRecord, 0, max(limit, 0))
	for rows.Next() {
		var rec entities.ImportRecord
		var kind, createdAt string
		var anchor, details sql.NullString

		if err := rows.Scan(&rec.ID, &kind, &rec.Sessions, &anchor, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning import record: %w", err)
		}

		rec.Kind = entities.ImportKind(kind)
		rec.Anchor = anchor.String
		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}

		if details.Valid && details.String != "" {
			var d struct {
				Students []int `json:"students"`
			}
			if err := json.Unmarshal([]byte(details.String), &d); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
			rec.Students = d.Students
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
