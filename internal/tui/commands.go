package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

// detailsTimeout bounds one details request
const detailsTimeout = 15 * time.Second

// DetailsCache is the subset of the local store used for details
type DetailsCache interface {
	GetDetails(id int64) (*domain.MovieDetails, bool)
	SaveDetails(details *domain.MovieDetails) error
}

// LoadDetailsCmd serves details from cache, falling back to the API and
// caching the result
func LoadDetailsCmd(repo domain.DetailsRepository, cache DetailsCache, id int64, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if cache != nil {
			if details, ok := cache.GetDetails(id); ok {
				return DetailsLoadedMsg{ID: id, Details: details}
			}
		}
		if repo == nil {
			return DetailsLoadedMsg{ID: id, Err: errors.New("details unavailable")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), detailsTimeout)
		defer cancel()

		details, err := repo.FetchDetails(ctx, id)
		if err != nil {
			return DetailsLoadedMsg{ID: id, Err: err}
		}

		if cache != nil {
			if err := cache.SaveDetails(details); err != nil {
				logger.Warn("failed to cache details", "id", id, "error", err)
			}
		}
		return DetailsLoadedMsg{ID: id, Details: details}
	}
}

// StatusCmd shows message in the footer
func StatusCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message}
	}
}

// ErrCmd reports err in the footer, prefixed with label
func ErrCmd(err error, label string) tea.Cmd {
	return func() tea.Msg {
		return ErrMsg{Err: err, Context: label}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
