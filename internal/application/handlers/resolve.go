package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/tutor-sync/internal/domain/services"
)

// ResolveHandler assigns roster ids to the events in a file.
type ResolveHandler struct {
	resolver *services.AliasResolver
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(resolver *services.AliasResolver) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
	}
}

// ResolveResult contains the result of resolving an events file.
type ResolveResult struct {
	Path  string
	Batch *services.BatchResult
}

// Handle resolves every event in path and rewrites the file with ids.
// The file is left as it was if resolution fails.
func (h *ResolveHandler) Handle(ctx context.Context, path string) (*ResolveResult, error) {
	events, err := readEvents(path)
	if err != nil {
		return nil, err
	}

	batch, err := h.resolver.ResolveAll(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("resolving events: %w", err)
	}

	if err := writeEvents(path, batch.Events); err != nil {
		return nil, err
	}

	return &ResolveResult{
		Path:  path,
		Batch: batch,
	}, nil
}
