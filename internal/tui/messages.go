package tui

import "github.com/mmcdole/marquee/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DetailsLoadedMsg carries the extended record for one movie
type DetailsLoadedMsg struct {
	ID      int64
	Details *domain.MovieDetails
	Err     error
}

// StatusMsg shows a transient footer message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
