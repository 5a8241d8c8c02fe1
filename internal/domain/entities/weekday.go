package entities

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedWeekday is returned for any day string outside the seven
// English weekday names.
var ErrUnrecognizedWeekday = errors.New("unrecognized weekday")

// Weekday is a day of the week counted from Monday, so its value is the
// day's offset inside a Monday-Sunday week.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// ParseWeekday maps an exact, case-sensitive English weekday name to its
// Weekday. Anything else yields ErrUnrecognizedWeekday.
func ParseWeekday(name string) (Weekday, error) {
	for day, dayName := range weekdayNames {
		if dayName == name {
			return Weekday(day), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedWeekday, name)
}

// Offset returns the number of days since Monday.
func (d Weekday) Offset() int {
	return int(d)
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}
