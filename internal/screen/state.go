package screen

import "github.com/mmcdole/marquee/internal/domain"

// ViewState is what the movie screen currently shows. Exactly one of
// Uninitialized, Loading, Content or Failed.
type ViewState interface {
	// SortOrder is the category the state belongs to
	SortOrder() domain.SortOrder
	String() string
	viewState()
}

// Uninitialized is the state before Initialize
type Uninitialized struct{}

func (Uninitialized) SortOrder() domain.SortOrder { return domain.DefaultSortOrder }
func (Uninitialized) String() string              { return "uninitialized" }
func (Uninitialized) viewState()                  {}

// Loading means a fetch is in flight and there is nothing to show yet
type Loading struct {
	Order domain.SortOrder
}

func (s Loading) SortOrder() domain.SortOrder { return s.Order }
func (Loading) String() string                { return "loading" }
func (Loading) viewState()                    {}

// Content holds the fetched movies; an empty list is valid
type Content struct {
	Order  domain.SortOrder
	Movies []domain.Movie
}

func (s Content) SortOrder() domain.SortOrder { return s.Order }
func (Content) String() string                { return "content" }
func (Content) viewState()                    {}

// Failed holds the reason the last fetch failed. An empty Reason means
// no reason is available, which is how lost connectivity is reported.
type Failed struct {
	Order  domain.SortOrder
	Reason string
}

func (s Failed) SortOrder() domain.SortOrder { return s.Order }
func (Failed) String() string                { return "failed" }
func (Failed) viewState()                    {}

// NoConnection reports whether the failure carries no reason
func (s Failed) NoConnection() bool { return s.Reason == "" }
