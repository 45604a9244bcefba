package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/logging"
	"github.com/mmcdole/marquee/internal/netcheck"
	"github.com/mmcdole/marquee/internal/prefs"
	"github.com/mmcdole/marquee/internal/screen"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		fresh       bool
		configDir   string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&fresh, "fresh", false, "ignore the saved session and fetch again")
	flag.StringVar(&configDir, "config", config.DefaultDir(), "configuration directory")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(configDir, fresh); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string, fresh bool) error {
	// Load configuration
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(configDir, cfg, logger)
	}

	client := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger,
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithRegion(cfg.TMDB.Region),
		tmdb.WithPages(cfg.TMDB.Pages),
		tmdb.WithAdult(cfg.UI.ShowAdult),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
	)

	movieStore, err := openStore(config.CachePath(), logger)
	if err != nil {
		return err
	}
	defer movieStore.Close()

	prefStore := prefs.NewStore(config.PrefsPath(configDir), logger)
	probe := netcheck.New(cfg.Network.ProbeAddress, cfg.Network.ProbeTimeout, netcheck.WithLogger(logger))

	// Each list page is a separate request
	fetchTimeout := cfg.TMDB.Timeout * time.Duration(cfg.TMDB.Pages)

	surface := tui.NewSurface()
	ctrl := screen.NewController(client, prefStore, probe,
		screen.WithPresenter(surface),
		screen.WithLogger(logger),
		screen.WithFetchTimeout(fetchTimeout),
	)

	model := tui.NewModel(tui.Options{
		Controller:   ctrl,
		Surface:      surface,
		Details:      client,
		Store:        movieStore,
		Restored:     restoredSession(cfg, movieStore, prefStore.SortOrder(), fresh, logger),
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		GridColumns:  cfg.UI.GridColumns,
		Logger:       logger,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// openStore opens the on-disk cache in dir, falling back to a memory-only
// store when it can't be opened
func openStore(dir string, logger *slog.Logger) (*store.MovieStore, error) {
	s, err := store.NewMovieStore(dir)
	if err == nil {
		return s, nil
	}
	logger.Warn("cache unavailable, using memory only", "dir", dir, "error", err)

	s, err = store.NewMovieStore("")
	if err != nil {
		return nil, fmt.Errorf("failed to create memory store: %w", err)
	}
	return s, nil
}

// restoredSession returns the saved snapshot when it can stand in for the
// first fetch: restoring is enabled, not overridden, and the snapshot
// belongs to the stored category.
func restoredSession(cfg *config.Config, s domain.Store, order domain.SortOrder, fresh bool, logger *slog.Logger) *domain.Snapshot {
	if !cfg.UI.RestoreSession || fresh {
		return nil
	}

	snap, ok := s.LoadSession()
	if !ok {
		return nil
	}
	if snap.Order != order {
		logger.Debug("saved session is for another category", "saved", snap.Order.Key(), "stored", order.Key())
		return nil
	}

	logger.Info("restoring session", "order", order.Key(), "count", len(snap.Movies), "saved_at", snap.SavedAt)
	return snap
}
