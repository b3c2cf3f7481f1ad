// Package config loads, validates and persists the SnakePit settings
// file. Malformed files are set aside and replaced with defaults; out of
// range values are fatal, so the listener never starts with an invalid
// combo or interval.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

const fileName = "config.json"

type Config struct {
	StartKeyCombo  []string `json:"start_key_combo"`
	StopKeyCombo   []string `json:"stop_key_combo"`
	ExitKeyCombo   []string `json:"exit_key_combo"`
	IntervalClicks int      `json:"interval_clicks"`
}

// Default is the configuration written on first run: toggle clicking with
// shift+s, exit with shift+e, ten clicks per second.
func Default() Config {
	return Config{
		StartKeyCombo:  []string{"shift", "s"},
		StopKeyCombo:   []string{"shift", "s"},
		ExitKeyCombo:   []string{"shift", "e"},
		IntervalClicks: 100,
	}
}

func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return filepath.Join(".", fileName)
	}
	return filepath.Join(configDir, "snakepit", fileName)
}

// Load reads the configuration from path. A missing, empty or undecodable
// file falls back to defaults (undecodable files are renamed aside first);
// a file that decodes but fails validation is a fatal error.
func Load(path string, logger *slog.Logger) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Config file does not exist, using defaults", "path", path)
			return writeDefaults(path, logger)
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		logger.Warn("Config file is empty, using defaults", "path", path)
		return writeDefaults(path, logger)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		backup, backupErr := setAsideBroken(path)
		if backupErr != nil {
			return Config{}, fmt.Errorf("config %s contains invalid JSON and could not be set aside: %w", path, backupErr)
		}
		logger.Warn("Config file contains invalid JSON, using defaults", "path", path, "backup", backup)
		return writeDefaults(path, logger)
	}

	for _, key := range []string{"start_key_combo", "stop_key_combo", "exit_key_combo", "interval_clicks"} {
		if _, ok := raw[key]; !ok {
			logger.Warn("Config file is missing required keys, using defaults", "path", path, "missing", key)
			return writeDefaults(path, logger)
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s has wrongly typed values: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.IntervalClicks <= 5 {
		return fmt.Errorf("interval_clicks must be an integer greater than 5, got %d", c.IntervalClicks)
	}
	if _, err := c.Combos(); err != nil {
		return err
	}
	return nil
}

// Combos resolves the three configured key combinations.
func (c Config) Combos() (autoclick.Combos, error) {
	start, err := autoclick.ParseCombo(c.StartKeyCombo)
	if err != nil {
		return autoclick.Combos{}, fmt.Errorf("start_key_combo: %w", err)
	}
	stop, err := autoclick.ParseCombo(c.StopKeyCombo)
	if err != nil {
		return autoclick.Combos{}, fmt.Errorf("stop_key_combo: %w", err)
	}
	exit, err := autoclick.ParseCombo(c.ExitKeyCombo)
	if err != nil {
		return autoclick.Combos{}, fmt.Errorf("exit_key_combo: %w", err)
	}
	return autoclick.Combos{Start: start, Stop: stop, Exit: exit}, nil
}

// Interval is the wait between click cycles.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalClicks) * time.Millisecond
}

// Save writes the configuration atomically via a temp file rename.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to persist config: %w", err)
	}
	return nil
}

func writeDefaults(path string, logger *slog.Logger) (Config, error) {
	cfg := Default()
	if err := Save(path, cfg); err != nil {
		logger.Warn("Failed to write default config", "path", path, "err", err)
	}
	return cfg, nil
}

// setAsideBroken renames an undecodable config file so the user's edits
// are not silently destroyed.
func setAsideBroken(path string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	backup := filepath.Join(filepath.Dir(path), timestamp+"_broken_"+filepath.Base(path))
	if err := os.Rename(path, backup); err != nil {
		return "", err
	}
	return backup, nil
}
