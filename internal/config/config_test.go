package config_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/sora7672/snakepit-clicker/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := config.Load(path, testLogger())
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, config.Default())

	// The defaults must now be on disk.
	_, err = os.Stat(path)
	assert.NilError(t, err)

	again, err := config.Load(path, testLogger())
	assert.NilError(t, err)
	assert.Assert(t, cmp.Diff(cfg, again) == "")
}

func TestLoadEmptyFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	cfg, err := config.Load(path, testLogger())
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, config.Default())
}

func TestLoadBrokenJSONIsSetAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	cfg, err := config.Load(path, testLogger())
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, config.Default())

	entries, err := os.ReadDir(dir)
	assert.NilError(t, err)
	backups := 0
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "_broken_config.json") {
			backups++
		}
	}
	assert.Equal(t, backups, 1)
}

func TestLoadMissingKeysFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"interval_clicks": 50}`), 0o600))

	cfg, err := config.Load(path, testLogger())
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, config.Default())
}

func TestLoadRejectsIntervalOfFive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "start_key_combo": ["shift", "s"],
  "stop_key_combo": ["shift", "s"],
  "exit_key_combo": ["shift", "e"],
  "interval_clicks": 5
}`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := config.Load(path, testLogger())
	assert.ErrorContains(t, err, "interval_clicks")
}

func TestLoadRejectsWronglyTypedInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "start_key_combo": ["shift", "s"],
  "stop_key_combo": ["shift", "s"],
  "exit_key_combo": ["shift", "e"],
  "interval_clicks": "fast"
}`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := config.Load(path, testLogger())
	assert.ErrorContains(t, err, "wrongly typed")
}

func TestLoadRejectsInvalidComboKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "start_key_combo": ["Shift", "s"],
  "stop_key_combo": ["shift", "s"],
  "exit_key_combo": ["shift", "e"],
  "interval_clicks": 100
}`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := config.Load(path, testLogger())
	assert.ErrorContains(t, err, "start_key_combo")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := config.Config{
		StartKeyCombo:  []string{"ctrl", "f8"},
		StopKeyCombo:   []string{"ctrl", "f9"},
		ExitKeyCombo:   []string{"ctrl", "esc"},
		IntervalClicks: 42,
	}

	assert.NilError(t, config.Save(path, want))
	got, err := config.Load(path, testLogger())
	assert.NilError(t, err)
	assert.DeepEqual(t, got, want)
}

func TestCombosResolveConfiguredKeys(t *testing.T) {
	combos, err := config.Default().Combos()
	assert.NilError(t, err)

	assert.Equal(t, combos.Start.String(), "S + SHIFT")
	assert.Equal(t, combos.Exit.String(), "E + SHIFT")
	assert.Assert(t, combos.Stop.MatchedBy(map[string]struct{}{
		"shift": {}, "s": {},
	}))
}
