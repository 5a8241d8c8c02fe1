package entities

import "time"

// Session is one row handed to the output sink: a resolved identity, a
// concrete start timestamp and an opaque length.
type Session struct {
	StudentID int       `json:"student_id"`
	Start     time.Time `json:"start"`
	Length    string    `json:"length"`
}

// ImportKind identifies which pipeline produced a batch of sessions.
type ImportKind string

const (
	ImportCalendar  ImportKind = "calendar"
	ImportRecurring ImportKind = "recurring"
)

// ImportRecord is one entry of the import log kept next to the sessions.
type ImportRecord struct {
	ID        string     `json:"id"`
	Kind      ImportKind `json:"kind"`
	Sessions  int        `json:"sessions"`
	Anchor    string     `json:"anchor,omitempty"`
	Students  []int      `json:"students,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
