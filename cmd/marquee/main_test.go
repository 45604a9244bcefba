package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/logging"
	"github.com/mmcdole/marquee/internal/store"
)

func TestOpenStore_FallsBackToMemory(t *testing.T) {
	// A regular file where the cache directory should be
	blocker := filepath.Join(t.TempDir(), "cache")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := openStore(blocker, logging.NullLogger())
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer s.Close()

	snap := domain.Snapshot{Order: domain.Popular, Movies: []domain.Movie{{ID: 7}}}
	if err := s.SaveSession(snap); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	if got, ok := s.LoadSession(); !ok || len(got.Movies) != 1 {
		t.Fatalf("LoadSession() = %#v, %v; want the saved snapshot", got, ok)
	}
}

func TestOpenStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := openStore(dir, logging.NullLogger())
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "marquee.db")); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}

func TestRestoredSession(t *testing.T) {
	s, err := store.NewMovieStore("")
	if err != nil {
		t.Fatalf("NewMovieStore() error = %v", err)
	}
	defer s.Close()

	snap := domain.Snapshot{Order: domain.TopRated, Movies: []domain.Movie{{ID: 1, Title: "Heat"}}}
	if err := s.SaveSession(snap); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	cfg := config.DefaultConfig()
	logger := logging.NullLogger()

	tests := []struct {
		name    string
		restore bool
		order   domain.SortOrder
		fresh   bool
		want    bool
	}{
		{"matching order", true, domain.TopRated, false, true},
		{"other order", true, domain.Popular, false, false},
		{"fresh flag", true, domain.TopRated, true, false},
		{"restore disabled", false, domain.TopRated, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.UI.RestoreSession = tt.restore
			got := restoredSession(cfg, s, tt.order, tt.fresh, logger)
			if (got != nil) != tt.want {
				t.Fatalf("restoredSession() = %v, want restored = %v", got, tt.want)
			}
			if got != nil && len(got.Movies) != 1 {
				t.Fatalf("len(Movies) = %d, want 1", len(got.Movies))
			}
		})
	}
}

func TestDescribeSetupError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrapped: %w", domain.ErrAuthFailed), "The API key was rejected. Please try again."},
		{domain.ErrServerOffline, "Could not reach TMDB. Check your network connection."},
		{fmt.Errorf("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := describeSetupError(tt.err); got != tt.want {
			t.Fatalf("describeSetupError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
