package domain

import "context"

// MovieRepository fetches category listings from the remote movie API.
type MovieRepository interface {
	FetchMovies(ctx context.Context, order SortOrder) ([]Movie, error)
}

// DetailsRepository fetches extended metadata for a single movie.
type DetailsRepository interface {
	FetchDetails(ctx context.Context, id int64) (*MovieDetails, error)
}

// PreferenceStore persists the selected sort order across restarts.
type PreferenceStore interface {
	// SortOrder returns the stored order, or DefaultSortOrder if never set
	SortOrder() SortOrder
	SetSortOrder(order SortOrder) error
}

// Connectivity reports whether the network is reachable. Called
// synchronously before every fetch.
type Connectivity interface {
	IsConnected() bool
}

// ConnectivityFunc adapts a plain function to Connectivity.
type ConnectivityFunc func() bool

func (f ConnectivityFunc) IsConnected() bool { return f() }

// Store handles the local BoltDB cache.
type Store interface {
	// === Session (restoration) ===
	LoadSession() (*Snapshot, bool)
	SaveSession(snap Snapshot) error
	ClearSession() error

	// === Details ===
	GetDetails(id int64) (*MovieDetails, bool)
	SaveDetails(details *MovieDetails) error

	InvalidateAll()
	Close() error
}
