package mocks

import "context"

// Suggester is a mock implementation of ports.Suggester.
type Suggester struct {
	Index int
	Err   error

	Names []string
}

// Suggest returns the configured index or error.
func (m *Suggester) Suggest(_ context.Context, name string, _ []string) (int, error) {
	m.Names = append(m.Names, name)
	if m.Err != nil {
		return -1, m.Err
	}
	return m.Index, nil
}
