package domain

import (
	"fmt"
	"strings"
)

// SortOrder selects the movie category every fetch is parameterized by.
type SortOrder int

const (
	NowPlaying SortOrder = iota
	Popular
	TopRated
	Upcoming
)

// DefaultSortOrder is used when no preference has been stored yet.
const DefaultSortOrder = Popular

// AllSortOrders returns the categories in menu order
func AllSortOrders() []SortOrder {
	return []SortOrder{NowPlaying, Popular, TopRated, Upcoming}
}

// String returns the display name for the sort order
func (o SortOrder) String() string {
	switch o {
	case NowPlaying:
		return "Now Playing"
	case Popular:
		return "Popular"
	case TopRated:
		return "Top Rated"
	case Upcoming:
		return "Upcoming"
	default:
		return "Unknown"
	}
}

// Key returns the stable token used for persistence. It doubles as the
// TMDB list path segment (/movie/{key}).
func (o SortOrder) Key() string {
	switch o {
	case NowPlaying:
		return "now_playing"
	case Popular:
		return "popular"
	case TopRated:
		return "top_rated"
	case Upcoming:
		return "upcoming"
	default:
		return ""
	}
}

// Valid reports whether o is one of the known categories
func (o SortOrder) Valid() bool {
	return o >= NowPlaying && o <= Upcoming
}

// ParseSortOrder accepts a persisted key ("top_rated"), a display name
// ("Top Rated") or a dashed form ("top-rated"), case-insensitively.
func ParseSortOrder(s string) (SortOrder, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for _, o := range AllSortOrders() {
		if o.Key() == normalized {
			return o, nil
		}
	}
	return DefaultSortOrder, fmt.Errorf("unknown sort order %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (o SortOrder) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid sort order %d", int(o))
	}
	return []byte(o.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *SortOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
