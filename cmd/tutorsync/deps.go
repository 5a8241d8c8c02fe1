package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ersonp/tutor-sync/internal/application/handlers"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
	"github.com/ersonp/tutor-sync/internal/domain/services"
	"github.com/ersonp/tutor-sync/internal/infrastructure/calendar/ics"
	"github.com/ersonp/tutor-sync/internal/infrastructure/config"
	llm "github.com/ersonp/tutor-sync/internal/infrastructure/llm/openai"
	"github.com/ersonp/tutor-sync/internal/infrastructure/logging"
	"github.com/ersonp/tutor-sync/internal/infrastructure/prompt"
	"github.com/ersonp/tutor-sync/internal/infrastructure/prompt/tui"
	"github.com/ersonp/tutor-sync/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/tutor-sync/internal/infrastructure/rosterstore"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config   *config.Config
	BasePath string
	Location *time.Location
	Logger   zerolog.Logger

	ResolveHandler *handlers.ResolveHandler
	RosterHandler  *handlers.RosterHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	store     *rosterstore.FileStore
	resolver  *services.AliasResolver
	scheduler *services.RecurringScheduler
}

// depsOptions selects how the dependencies are built.
type depsOptions struct {
	// unattended swaps the terminal prompt for one that never asks and
	// switches logging to JSON lines.
	unattended bool
}

// basePath returns the working directory for data and config files.
func basePath() (string, error) {
	if globalDir != "" {
		return globalDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// withDeps loads config and builds dependencies, then calls the provided function.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(depsOptions{}, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(opts depsOptions, fn func(*internalDeps) error) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(base)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if globalLogLevel != "" {
		level = globalLogLevel
	}

	var logger zerolog.Logger
	if opts.unattended {
		logger, err = logging.NewJSON(level, os.Stderr)
	} else {
		logger, err = logging.New(level, os.Stderr)
	}
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var selectionPrompt ports.SelectionPrompt = tui.New(os.Stdin, os.Stderr)
	if opts.unattended {
		selectionPrompt = prompt.NewUnattended(logger)
	}

	store := rosterstore.New(config.ResolvePath(base, cfg.Files.Roster))
	resolver := services.NewAliasResolver(store, selectionPrompt, logger)

	if cfg.SuggestionsEnabled() && !opts.unattended {
		client, err := llm.NewClient(cfg.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}
		resolver.WithSuggester(client)
	}

	scheduler := services.NewRecurringScheduler(resolver, logger)

	deps := &internalDeps{
		Deps: Deps{
			Config:         cfg,
			BasePath:       base,
			Location:       loc,
			Logger:         logger,
			ResolveHandler: handlers.NewResolveHandler(resolver),
			RosterHandler:  handlers.NewRosterHandler(store),
		},
		store:     store,
		resolver:  resolver,
		scheduler: scheduler,
	}

	return fn(deps)
}

// path resolves a configured file path against the working directory.
func (d *Deps) path(p string) string {
	return config.ResolvePath(d.BasePath, p)
}

// withSink opens the sessions database for the duration of fn.
func withSink(ctx context.Context, d *internalDeps, fn func(*sqlite.Repository) error) error {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: d.path(d.Config.SQLite.Path)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return fn(repo)
}

// withEventSource builds the calendar source from config.
func withEventSource(d *Deps, fn func(ports.EventSource) error) error {
	location := d.Config.Calendar.ICSURL
	if location == "" {
		return fmt.Errorf("calendar.ics_url is not configured (or set CALENDAR_ICS_URL)")
	}
	loc, err := ics.ParseLocation(location)
	if err != nil {
		return fmt.Errorf("calendar.ics_url: %w", err)
	}
	if !loc.Remote {
		loc.Value = d.path(loc.Value)
	}
	return fn(ics.NewSource(loc.Value, d.Location, d.Logger))
}
