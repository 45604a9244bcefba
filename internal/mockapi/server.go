// Package mockapi serves a deterministic imitation of the TMDB v3 API
// for offline demos and client tests.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultAPIKey is accepted when a Server is created with an empty key
	DefaultAPIKey = "marquee-demo-key"

	pageSize = 20
)

// Server holds fixture state behind a chi router. Fixtures can be
// replaced and failures injected while the server is running.
type Server struct {
	apiKey string
	logger *slog.Logger
	router chi.Router

	mu       sync.Mutex
	lists    map[string][]Movie
	failures map[string]failure
	latency  time.Duration
	requests []string
}

type failure struct {
	status  int
	message string
}

type errorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

type listBody struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type genreBody struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type detailsBody struct {
	Movie
	Tagline  string      `json:"tagline"`
	Runtime  int         `json:"runtime"`
	Status   string      `json:"status"`
	Genres   []genreBody `json:"genres"`
	Homepage string      `json:"homepage"`
	IMDbID   string      `json:"imdb_id"`
	Budget   int64       `json:"budget"`
	Revenue  int64       `json:"revenue"`
}

// New creates a server loaded with DefaultLists
func New(apiKey string, logger *slog.Logger) *Server {
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		apiKey:   apiKey,
		logger:   logger,
		lists:    DefaultLists(),
		failures: make(map[string]failure),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Route("/3", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/configuration", s.handleConfiguration)
		r.Get("/movie/{key}", s.handleMovie)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// APIKey returns the key the server accepts
func (s *Server) APIKey() string {
	return s.apiKey
}

// SetList replaces the fixture list for a category path segment
func (s *Server) SetList(name string, movies []Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[name] = movies
}

// Fail makes every request whose path ends in suffix answer with status
// and a TMDB-style error body. An empty message sends an empty body.
func (s *Server) Fail(suffix string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[suffix] = failure{status: status, message: message}
}

// ClearFailures removes all injected failures
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// SetLatency delays every response
func (s *Server) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Requests returns the request URIs seen so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.RequestURI())
		latency := s.latency
		var injected *failure
		for suffix, f := range s.failures {
			if strings.HasSuffix(r.URL.Path, suffix) {
				injected = &f
				break
			}
		}
		s.mu.Unlock()

		s.logger.Debug("mock request", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-r.Context().Done():
				return
			}
		}

		if injected != nil {
			if injected.message == "" {
				w.WriteHeader(injected.status)
				return
			}
			writeError(w, injected.status, 0, injected.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("api_key")
		if key == "" {
			key = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if key != s.apiKey {
			writeError(w, http.StatusUnauthorized, 7, "Invalid API key: You must be granted a valid key.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleConfiguration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"images": map[string]any{
			"base_url":        "http://image.tmdb.org/t/p/",
			"secure_base_url": "https://image.tmdb.org/t/p/",
			"poster_sizes":    []string{"w92", "w154", "w185", "w342", "w500", "w780", "original"},
		},
	})
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		s.handleDetails(w, id)
		return
	}
	s.handleList(w, r, key)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, name string) {
	s.mu.Lock()
	movies, ok := s.lists[name]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, 34, "The resource you requested could not be found.")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, 22, "Invalid page: Pages start at 1 and max at 500.")
			return
		}
		page = n
	}

	totalPages := (len(movies) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	results := []Movie{}
	start := (page - 1) * pageSize
	if start < len(movies) {
		end := min(start+pageSize, len(movies))
		results = movies[start:end]
	}

	writeJSON(w, http.StatusOK, listBody{
		Page:         page,
		Results:      results,
		TotalPages:   totalPages,
		TotalResults: len(movies),
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, id int64) {
	mv, ok := s.find(id)
	if !ok {
		writeError(w, http.StatusNotFound, 34, "The resource you requested could not be found.")
		return
	}

	genres := make([]genreBody, 0, len(mv.GenreIDs))
	for _, gid := range mv.GenreIDs {
		genres = append(genres, genreBody{ID: gid, Name: genreNames[gid]})
	}
	status := "Released"
	if mv.VoteCount == 0 {
		status = "Post Production"
	}

	writeJSON(w, http.StatusOK, detailsBody{
		Movie:    mv,
		Tagline:  mv.Tagline,
		Runtime:  mv.Runtime,
		Status:   status,
		Genres:   genres,
		Homepage: "https://www.themoviedb.org/movie/" + strconv.FormatInt(mv.ID, 10),
		IMDbID:   mv.IMDbID,
		Budget:   mv.Budget,
		Revenue:  mv.Revenue,
	})
}

func (s *Server) find(id int64) (Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.lists {
		for _, mv := range list {
			if mv.ID == id {
				return mv, true
			}
		}
	}
	for _, mv := range catalog {
		if mv.ID == id {
			return mv, true
		}
	}
	return Movie{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, errorBody{StatusCode: code, StatusMessage: message, Success: false})
}
