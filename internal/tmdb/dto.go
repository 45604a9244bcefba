package tmdb

// MovieResult is a movie as it appears in a list response
type MovieResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
}

// ListResponse is the paged envelope of /movie/{list}
type ListResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// GenreResult is a genre id/name pair
type GenreResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DetailsResponse is the body of /movie/{id}
type DetailsResponse struct {
	MovieResult
	Tagline  string        `json:"tagline"`
	Runtime  int           `json:"runtime"` // minutes
	Status   string        `json:"status"`
	Genres   []GenreResult `json:"genres"`
	Homepage string        `json:"homepage"`
	IMDbID   string        `json:"imdb_id"`
	Budget   int64         `json:"budget"`
	Revenue  int64         `json:"revenue"`
}

// ConfigurationResponse is the body of /configuration
type ConfigurationResponse struct {
	Images struct {
		BaseURL       string   `json:"base_url"`
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

// errorResponse is TMDB's error envelope
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
