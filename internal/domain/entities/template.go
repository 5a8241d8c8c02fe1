package entities

// Template is a recurring weekly appointment: a person, a weekday and a
// time of day, without a concrete date until it is expanded for a week.
type Template struct {
	Name   string `json:"name"`
	Day    string `json:"day"`
	Time   string `json:"time"`
	Length string `json:"length,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Event converts the template into an undated event ready for resolution.
func (t Template) Event() Event {
	return Event{
		Name:   t.Name,
		Day:    t.Day,
		Time:   t.Time,
		Length: t.Length,
		Type:   t.Type,
	}
}
