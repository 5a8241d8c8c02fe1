package entities

import "strconv"

// UnknownID is the id assigned to an event whose person could not be resolved.
const UnknownID = "Unknown"

// Layouts used for the derived date fields of an event.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	ClockLayout    = "15:04"
)

// Event is a unit of work to be identified: a free-text person name plus the
// scheduling fields filled in over its lifecycle. Empty strings mean absent.
type Event struct {
	Name     string `json:"name"`
	Day      string `json:"day,omitempty"`
	Time     string `json:"time,omitempty"`
	Date     string `json:"date,omitempty"`
	DateTime string `json:"datetime,omitempty"`
	Length   string `json:"length,omitempty"`
	Type     string `json:"type,omitempty"`
	URI      string `json:"uri,omitempty"`
	ID       string `json:"id,omitempty"`
}

// IsUnknown reports whether the event carries the sentinel id.
func (e Event) IsUnknown() bool {
	return e.ID == UnknownID
}

// IdentityID returns the numeric identity id, if the event resolved to one.
func (e Event) IdentityID() (int, bool) {
	if e.ID == "" || e.IsUnknown() {
		return 0, false
	}
	id, err := strconv.Atoi(e.ID)
	if err != nil {
		return 0, false
	}
	return id, true
}

// FormatID renders an identity id the way events store it.
func FormatID(id int) string {
	return strconv.Itoa(id)
}
