package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.TMDB.BaseURL, defaultBaseURL)
	}
	if cfg.TMDB.Pages != 1 {
		t.Fatalf("Pages = %d, want 1", cfg.TMDB.Pages)
	}
	if cfg.TMDB.Timeout != 15*time.Second {
		t.Fatalf("Timeout = %v, want 15s", cfg.TMDB.Timeout)
	}
	if !cfg.UI.RestoreSession {
		t.Fatalf("RestoreSession = false, want true")
	}
	if cfg.IsConfigured() {
		t.Fatalf("IsConfigured = true without an API key")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
tmdb:
  api_key: "  abc123  "
  base_url: "http://127.0.0.1:9099/3/"
  language: de-DE
  pages: 3
  timeout: 5s
network:
  probe_address: "127.0.0.1:9099"
  probe_timeout: 250ms
ui:
  grid_columns: 6
  restore_session: false
logging:
  level: debug
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "abc123" {
		t.Fatalf("APIKey = %q, want abc123", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BaseURL != "http://127.0.0.1:9099/3" {
		t.Fatalf("BaseURL = %q, want trailing slash trimmed", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Language != "de-DE" || cfg.TMDB.Pages != 3 {
		t.Fatalf("TMDB = %+v", cfg.TMDB)
	}
	if cfg.TMDB.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want 5s", cfg.TMDB.Timeout)
	}
	if cfg.Network.ProbeTimeout != 250*time.Millisecond {
		t.Fatalf("ProbeTimeout = %v, want 250ms", cfg.Network.ProbeTimeout)
	}
	if cfg.UI.GridColumns != 6 || cfg.UI.RestoreSession {
		t.Fatalf("UI = %+v", cfg.UI)
	}
	if !cfg.IsConfigured() {
		t.Fatalf("IsConfigured = false with API key set")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MARQUEE_TMDB_API_KEY", "from-env")
	t.Setenv("MARQUEE_TMDB_PAGES", "2")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.Pages != 2 {
		t.Fatalf("Pages = %d, want 2", cfg.TMDB.Pages)
	}
}

func TestLoad_ClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
tmdb:
  pages: 99
  base_url: "   "
ui:
  grid_columns: 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.Pages != maxPages {
		t.Fatalf("Pages = %d, want %d", cfg.TMDB.Pages, maxPages)
	}
	if cfg.TMDB.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want default", cfg.TMDB.BaseURL)
	}
	if cfg.UI.GridColumns != 4 {
		t.Fatalf("GridColumns = %d, want 4", cfg.UI.GridColumns)
	}
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb: [\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(dir)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "config") {
		t.Fatalf("Load error = %q, want it to mention config", err.Error())
	}
}

func TestSave_RoundTrips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := DefaultConfig()
	cfg.TMDB.APIKey = "saved-key"
	cfg.TMDB.Region = "GB"
	cfg.UI.ShowAdult = true
	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.TMDB.APIKey != "saved-key" || loaded.TMDB.Region != "GB" {
		t.Fatalf("TMDB = %+v", loaded.TMDB)
	}
	if !loaded.UI.ShowAdult {
		t.Fatalf("ShowAdult = false, want true")
	}
	if loaded.TMDB.Timeout != cfg.TMDB.Timeout {
		t.Fatalf("Timeout = %v, want %v", loaded.TMDB.Timeout, cfg.TMDB.Timeout)
	}
}

func TestPrefsPath(t *testing.T) {
	if got := PrefsPath("/tmp/marquee"); got != filepath.Join("/tmp/marquee", "prefs.toml") {
		t.Fatalf("PrefsPath = %q", got)
	}
}
