package domain

import (
	"fmt"
	"strings"
	"time"
)

// Movie is a single movie record as listed by a category query.
type Movie struct {
	ID            int64   // TMDB movie ID
	Title         string  // Display title
	OriginalTitle string  // Title in the original language
	Overview      string  // Plot synopsis
	PosterPath    string  // Relative poster path (e.g. "/abc.jpg")
	BackdropPath  string  // Relative backdrop path
	ReleaseDate   string  // YYYY-MM-DD, may be empty
	Rating        float64 // Vote average (0-10 scale)
	VoteCount     int
	Popularity    float64
	Adult         bool
	Language      string // ISO 639-1 original language
	GenreIDs      []int
}

// Year returns the release year (0 if unknown)
func (m Movie) Year() int {
	if t, ok := m.Released(); ok {
		return t.Year()
	}
	return 0
}

// Released parses the release date.
func (m Movie) Released() (time.Time, bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormattedRating returns the rating as "7.4" or "–" when unrated
func (m Movie) FormattedRating() string {
	if m.VoteCount == 0 && m.Rating == 0 {
		return "–"
	}
	return fmt.Sprintf("%.1f", m.Rating)
}

// FormattedReleaseDate returns the release date as "Jan 2, 2006"
func (m Movie) FormattedReleaseDate() string {
	t, ok := m.Released()
	if !ok {
		return m.ReleaseDate
	}
	return t.Format("Jan 2, 2006")
}

// PosterURL builds an absolute poster URL from the image base and a size
// token such as "w342". Returns "" when the movie has no poster.
func (m Movie) PosterURL(imageBase, size string) string {
	return imageURL(imageBase, size, m.PosterPath)
}

// BackdropURL builds an absolute backdrop URL.
func (m Movie) BackdropURL(imageBase, size string) string {
	return imageURL(imageBase, size, m.BackdropPath)
}

func imageURL(base, size, path string) string {
	if path == "" || base == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}

// Genre is a TMDB genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails holds the extended metadata shown on the details pane.
type MovieDetails struct {
	Movie
	Tagline  string
	Runtime  time.Duration
	Status   string // "Released", "Post Production", ...
	Genres   []Genre
	Homepage string
	IMDbID   string
	Budget   int64
	Revenue  int64
}

// FormattedRuntime returns the runtime in a human-readable format
func (d MovieDetails) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := int(d.Runtime.Hours())
	mins := int(d.Runtime.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// GenreNames returns the genre names joined with ", "
func (d MovieDetails) GenreNames() string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// Snapshot is the last rendered movie list of a screen instance, handed
// back to a new instance so it can skip the initial fetch.
type Snapshot struct {
	Order   SortOrder `json:"order"`
	Movies  []Movie   `json:"movies"`
	SavedAt time.Time `json:"saved_at"`
}
