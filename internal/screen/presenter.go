package screen

import "github.com/mmcdole/marquee/internal/domain"

// Presenter is the surface the controller drives. Render is called after
// every state transition; ShowMovie when the user picks a movie.
type Presenter interface {
	Render(state ViewState)
	ShowMovie(movie domain.Movie)
}

type nopPresenter struct{}

func (nopPresenter) Render(ViewState)       {}
func (nopPresenter) ShowMovie(domain.Movie) {}

// PresenterFuncs adapts plain functions to Presenter. Nil fields are
// ignored.
type PresenterFuncs struct {
	RenderFunc    func(ViewState)
	ShowMovieFunc func(domain.Movie)
}

func (p PresenterFuncs) Render(state ViewState) {
	if p.RenderFunc != nil {
		p.RenderFunc(state)
	}
}

func (p PresenterFuncs) ShowMovie(movie domain.Movie) {
	if p.ShowMovieFunc != nil {
		p.ShowMovieFunc(movie)
	}
}
