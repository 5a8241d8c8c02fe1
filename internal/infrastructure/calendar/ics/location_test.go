package ics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Location
		wantErr string
	}{
		{name: "relative path", raw: "cal.ics", want: Location{Value: "cal.ics"}},
		{name: "absolute path", raw: "/srv/cal.ics", want: Location{Value: "/srv/cal.ics"}},
		{name: "https", raw: "https://example.com/cal.ics", want: Location{Value: "https://example.com/cal.ics", Remote: true}},
		{name: "http", raw: "http://example.com/cal.ics", want: Location{Value: "http://example.com/cal.ics", Remote: true}},
		{name: "webcal", raw: "webcal://example.com/cal.ics?t=1", want: Location{Value: "https://example.com/cal.ics?t=1", Remote: true}},
		{name: "file absolute", raw: "file:///srv/cal.ics", want: Location{Value: "/srv/cal.ics"}},
		{name: "file localhost", raw: "file://localhost/srv/cal.ics", want: Location{Value: "/srv/cal.ics"}},
		{name: "file relative", raw: "file://cal.ics", want: Location{Value: "cal.ics"}},
		{name: "file dot relative", raw: "file://./data/cal.ics", want: Location{Value: "./data/cal.ics"}},
		{name: "file escaped", raw: "file:///srv/my%20cal.ics", want: Location{Value: "/srv/my cal.ics"}},
		{name: "surrounding spaces", raw: "  cal.ics ", want: Location{Value: "cal.ics"}},
		{name: "empty", raw: "", wantErr: "not configured"},
		{name: "file without path", raw: "file://", wantErr: "has no path"},
		{name: "unsupported scheme", raw: "ftp://example.com/cal.ics", wantErr: `unsupported calendar location scheme "ftp"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSource_Upcoming_FromFileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	require.NoError(t, os.WriteFile(path, []byte(crlf(testFeed)), 0644))

	src := NewSource("file://"+filepath.ToSlash(path), time.UTC, zerolog.Nop())
	events, err := src.Upcoming(context.Background(), testFrom, 24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
