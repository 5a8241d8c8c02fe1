package ics

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Location is a calendar feed address: a URL fetched over HTTP, or a local
// file path.
type Location struct {
	Value  string
	Remote bool
}

// ParseLocation accepts a bare path, a file:// URL, or an http, https or
// webcal URL. webcal feeds are fetched over https.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, errors.New("calendar location is not configured")
	}
	if !strings.Contains(raw, "://") {
		return Location{Value: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parsing calendar location: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return Location{Value: raw, Remote: true}, nil
	case "webcal", "webcals":
		u.Scheme = "https"
		return Location{Value: u.String(), Remote: true}, nil
	case "file":
		path := u.Path
		if u.Host != "" && u.Host != "localhost" {
			// file://cal.ics and file://./cal.ics name relative paths.
			path = u.Host + u.Path
		}
		if path == "" {
			return Location{}, fmt.Errorf("calendar location %q has no path", raw)
		}
		return Location{Value: path}, nil
	default:
		return Location{}, fmt.Errorf("unsupported calendar location scheme %q", u.Scheme)
	}
}
