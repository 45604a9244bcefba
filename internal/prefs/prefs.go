// Package prefs persists the user's selected movie category.
// Preferences are stored in ~/.config/marquee/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mmcdole/marquee/internal/domain"
)

// Prefs is the on-disk shape of the preferences file.
type Prefs struct {
	SortOrder string `toml:"sort_order"`
}

const defaultPrefsPath = "~/.config/marquee/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing or unreadable
// file yields the defaults.
func Load(path string) (Prefs, error) {
	defaults := Prefs{SortOrder: domain.DefaultSortOrder.Key()}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, nil // Graceful degradation
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return defaults, nil // Graceful degradation
	}
	if strings.TrimSpace(p.SortOrder) == "" {
		p.SortOrder = defaults.SortOrder
	}
	return p, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Store implements domain.PreferenceStore on top of the prefs file.
// The current value is held in memory so reads never touch disk.
type Store struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	order domain.SortOrder
}

// NewStore loads the preferences at path. An unknown stored category
// falls back to the default.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p, _ := Load(path)
	order, err := domain.ParseSortOrder(p.SortOrder)
	if err != nil {
		logger.Warn("ignoring stored sort order", "value", p.SortOrder, "error", err)
	}
	return &Store{path: path, logger: logger, order: order}
}

// SortOrder returns the stored category
func (s *Store) SortOrder() domain.SortOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

// SetSortOrder records the category and writes it through to disk. The
// in-memory value is updated even when the write fails.
func (s *Store) SetSortOrder(order domain.SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("invalid sort order %d", int(order))
	}

	s.mu.Lock()
	s.order = order
	s.mu.Unlock()

	if err := Save(s.path, Prefs{SortOrder: order.Key()}); err != nil {
		return err
	}
	s.logger.Debug("saved sort order", "order", order.Key(), "path", s.path)
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
