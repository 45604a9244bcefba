package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/screen"
)

// Surface receives the controller's output. The controller calls it
// synchronously from inside Update; the model then drains it with sync.
type Surface struct {
	state    screen.ViewState
	version  uint64
	selected *domain.Movie
}

// NewSurface creates a surface showing the uninitialized state
func NewSurface() *Surface {
	return &Surface{state: screen.Uninitialized{}}
}

// Render implements screen.Presenter
func (s *Surface) Render(state screen.ViewState) {
	s.state = state
	s.version++
}

// ShowMovie implements screen.Presenter
func (s *Surface) ShowMovie(movie domain.Movie) {
	s.selected = &movie
}

// State returns the last rendered state
func (s *Surface) State() screen.ViewState {
	return s.state
}

// Version increments on every Render
func (s *Surface) Version() uint64 {
	return s.version
}

// takeSelected returns and clears a pending movie pick
func (s *Surface) takeSelected() (domain.Movie, bool) {
	if s.selected == nil {
		return domain.Movie{}, false
	}
	movie := *s.selected
	s.selected = nil
	return movie, true
}
