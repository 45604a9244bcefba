package screen

import "github.com/mmcdole/marquee/internal/domain"

// FetchResultMsg carries the outcome of one fetch back into the update
// loop. Err is nil on success.
type FetchResultMsg struct {
	RequestID uint64
	Order     domain.SortOrder
	Movies    []domain.Movie
	Err       error
}
