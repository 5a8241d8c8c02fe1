package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/infrastructure/config"
	"github.com/ersonp/tutor-sync/internal/infrastructure/rosterstore"
)

// templatesHeader is written to a fresh recurring templates file.
const templatesHeader = "name,day,time,length\n"

// InitHandler handles workspace initialization.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	// Created lists the data files written because they did not exist yet.
	Created []string
}

// Handle writes the default config plus empty roster and templates files.
// Existing data files are left untouched.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("tutorsync already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	result := &InitResult{ConfigPath: config.ConfigFilePath(basePath)}

	rosterPath := config.ResolvePath(basePath, cfg.Files.Roster)
	if !fileExists(rosterPath) {
		if err := rosterstore.New(rosterPath).Save(ctx, entities.Roster{}); err != nil {
			return nil, fmt.Errorf("creating roster: %w", err)
		}
		result.Created = append(result.Created, rosterPath)
	}

	templatesPath := config.ResolvePath(basePath, cfg.Files.Templates)
	if !fileExists(templatesPath) {
		if err := os.MkdirAll(filepath.Dir(templatesPath), 0755); err != nil {
			return nil, fmt.Errorf("creating directory: %w", err)
		}
		if err := os.WriteFile(templatesPath, []byte(templatesHeader), 0644); err != nil {
			return nil, fmt.Errorf("creating templates file: %w", err)
		}
		result.Created = append(result.Created, templatesPath)
	}

	return result, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
