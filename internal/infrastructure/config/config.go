// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata" // timezone database for hosts without one

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for tutorsync configuration.
	DefaultConfigDir = ".tutorsync"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DotEnvFile holds secrets and path overrides next to the working files.
	DotEnvFile = ".env"
)

// Config holds static configuration (read-only after load).
type Config struct {
	Files    FilesConfig    `yaml:"files,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Calendar CalendarConfig `yaml:"calendar,omitempty"`
	LLM      LLMConfig      `yaml:"llm,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
}

// FilesConfig locates the CSV files the tool reads and rewrites.
// Relative paths are resolved against the working directory.
type FilesConfig struct {
	Roster    string `yaml:"roster,omitempty"`
	Events    string `yaml:"events,omitempty"`
	Templates string `yaml:"templates,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite sessions database.
type SQLiteConfig struct {
	Path string `yaml:"path,omitempty"`
}

// CalendarConfig holds configuration for the ICS event source.
type CalendarConfig struct {
	// ICSURL is an http(s) URL or a local file path.
	ICSURL      string `yaml:"ics_url,omitempty"`
	Timezone    string `yaml:"timezone,omitempty"`
	HorizonDays int    `yaml:"horizon_days,omitempty"`
}

// LLMConfig holds configuration for the optional alias suggester.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Files: FilesConfig{
			Roster:    "roster.csv",
			Events:    "events.csv",
			Templates: "recurring.csv",
		},
		SQLite: SQLiteConfig{
			Path: "sessions.db",
		},
		Calendar: CalendarConfig{
			Timezone:    "America/Edmonton",
			HorizonDays: 14,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads .env and .tutorsync/config.yaml from basePath. Both files are
// optional. Precedence: config file, then environment, then defaults, with
// the exception of SQL_PATH which always wins when set.
func Load(basePath string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(basePath, DotEnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(ConfigFilePath(basePath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults(Default())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides fills unset values from the environment.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("SQL_PATH"); path != "" {
		c.SQLite.Path = path
	}
	setIfEmpty(&c.Files.Roster, os.Getenv("TUTORSYNC_ROSTER"))
	setIfEmpty(&c.Calendar.ICSURL, os.Getenv("CALENDAR_ICS_URL"))
	setIfEmpty(&c.LLM.APIKey, os.Getenv("OPENAI_API_KEY"))
	setIfEmpty(&c.Log.Level, os.Getenv("TUTORSYNC_LOG_LEVEL"))
	if days := os.Getenv("TUTORSYNC_HORIZON_DAYS"); days != "" && c.Calendar.HorizonDays == 0 {
		if n, err := strconv.Atoi(days); err == nil {
			c.Calendar.HorizonDays = n
		}
	}
}

func (c *Config) applyDefaults(d *Config) {
	setIfEmpty(&c.Files.Roster, d.Files.Roster)
	setIfEmpty(&c.Files.Events, d.Files.Events)
	setIfEmpty(&c.Files.Templates, d.Files.Templates)
	setIfEmpty(&c.SQLite.Path, d.SQLite.Path)
	setIfEmpty(&c.Calendar.Timezone, d.Calendar.Timezone)
	if c.Calendar.HorizonDays == 0 {
		c.Calendar.HorizonDays = d.Calendar.HorizonDays
	}
	setIfEmpty(&c.LLM.Provider, d.LLM.Provider)
	setIfEmpty(&c.LLM.Model, d.LLM.Model)
	setIfEmpty(&c.Log.Level, d.Log.Level)
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Calendar.HorizonDays < 0 {
		return fmt.Errorf("calendar.horizon_days must not be negative, got %d", c.Calendar.HorizonDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the calendar timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

// Horizon returns how far ahead the calendar is fetched.
func (c *Config) Horizon() time.Duration {
	return time.Duration(c.Calendar.HorizonDays) * 24 * time.Hour
}

// SuggestionsEnabled reports whether the LLM suggester can be used.
func (c *Config) SuggestionsEnabled() bool {
	return c.LLM.APIKey != ""
}

// ResolvePath returns p unchanged if absolute, otherwise joined to basePath.
func ResolvePath(basePath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(basePath, p)
}

// ConfigDir returns the path to the .tutorsync config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
