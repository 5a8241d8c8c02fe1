package ports

import (
	"context"
	"errors"
)

// ErrPromptAborted is returned by a SelectionPrompt when the operator quits.
var ErrPromptAborted = errors.New("prompt aborted by operator")

// SelectionAction is what the operator did with one page of candidates.
type SelectionAction int

const (
	// SelectPick means the operator chose the entry at Selection.Index.
	SelectPick SelectionAction = iota
	// SelectNextPage means none of the entries on this page, show the next one.
	SelectNextPage
	// SelectNone means the person is not on the roster at all.
	SelectNone
)

// Selection is the operator's answer for one page.
type Selection struct {
	Action SelectionAction
	// Index is the zero-based position within the page when Action is SelectPick.
	Index int
}

// SelectionRequest describes a single page shown to the operator.
type SelectionRequest struct {
	// Name is the unresolved name being asked about.
	Name string
	// Labels are the candidates on this page, in roster order.
	Labels []string
	// Page and Pages are the zero-based page number and the page count.
	Page  int
	Pages int
	// Suggested is an in-page index to pre-select, or -1.
	Suggested int
	// Hint is an optional line of text shown with the page.
	Hint string
}

// SelectionPrompt asks a human operator to identify a name, one page at a time.
type SelectionPrompt interface {
	Select(ctx context.Context, req SelectionRequest) (Selection, error)
}
