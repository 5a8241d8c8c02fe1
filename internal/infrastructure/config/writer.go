package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# tutorsync configuration

files:
  roster: roster.csv
  events: events.csv
  templates: recurring.csv

sqlite:
  path: sessions.db # SQL_PATH in .env overrides this

calendar:
  # ics_url: https://example.com/calendar.ics (or set CALENDAR_ICS_URL)
  timezone: America/Edmonton
  horizon_days: 14

llm:
  provider: openai
  model: gpt-4o-mini
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

log:
  level: info
`

// WriteDefault creates the .tutorsync directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Exists checks if a tutorsync config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
