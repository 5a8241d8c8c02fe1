package mocks

import (
	"context"

	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

// Prompt is a scripted implementation of ports.SelectionPrompt. Each call
// consumes the next answer; once the script runs out it answers SelectNone.
type Prompt struct {
	Answers []ports.Selection
	Err     error

	Requests []ports.SelectionRequest
}

// Pick returns a selection of the entry at index on the current page.
func Pick(index int) ports.Selection {
	return ports.Selection{Action: ports.SelectPick, Index: index}
}

// NextPage returns a selection that advances to the next page.
func NextPage() ports.Selection {
	return ports.Selection{Action: ports.SelectNextPage}
}

// None returns a "none of these" selection.
func None() ports.Selection {
	return ports.Selection{Action: ports.SelectNone}
}

// Select records the request and returns the next scripted answer.
func (m *Prompt) Select(_ context.Context, req ports.SelectionRequest) (ports.Selection, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return ports.Selection{}, m.Err
	}
	if len(m.Answers) == 0 {
		return None(), nil
	}
	answer := m.Answers[0]
	m.Answers = m.Answers[1:]
	return answer, nil
}

// CallCount returns how many pages were shown.
func (m *Prompt) CallCount() int {
	return len(m.Requests)
}
