package ports

import "context"

// Suggester proposes which roster candidate an unmatched name most likely
// refers to. It only informs the operator; it never resolves on its own.
type Suggester interface {
	// Suggest returns the zero-based index into candidates, or -1 when
	// nothing looks plausible.
	Suggest(ctx context.Context, name string, candidates []string) (int, error)
}
