package tmdb

import (
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapMovies converts list results to domain movies
func MapMovies(results []MovieResult) []domain.Movie {
	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		movies = append(movies, mapMovie(r))
	}
	return movies
}

func mapMovie(r MovieResult) domain.Movie {
	movie := domain.Movie{
		ID:            r.ID,
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Overview:      r.Overview,
		PosterPath:    r.PosterPath,
		BackdropPath:  r.BackdropPath,
		ReleaseDate:   r.ReleaseDate,
		Rating:        r.VoteAverage,
		VoteCount:     r.VoteCount,
		Popularity:    r.Popularity,
		Adult:         r.Adult,
		Language:      r.OriginalLanguage,
		GenreIDs:      r.GenreIDs,
	}
	if movie.Title == "" {
		movie.Title = movie.OriginalTitle
	}
	return movie
}

// MapDetails converts a details response to domain details
func MapDetails(d DetailsResponse) *domain.MovieDetails {
	details := &domain.MovieDetails{
		Movie:    mapMovie(d.MovieResult),
		Tagline:  d.Tagline,
		Runtime:  time.Duration(d.Runtime) * time.Minute,
		Status:   d.Status,
		Homepage: d.Homepage,
		IMDbID:   d.IMDbID,
		Budget:   d.Budget,
		Revenue:  d.Revenue,
	}

	details.Genres = make([]domain.Genre, 0, len(d.Genres))
	for _, g := range d.Genres {
		details.Genres = append(details.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	// Details responses carry full genres instead of genre_ids
	if len(details.GenreIDs) == 0 {
		for _, g := range d.Genres {
			details.GenreIDs = append(details.GenreIDs, g.ID)
		}
	}
	return details
}
