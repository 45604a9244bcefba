package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Marquee/1.0"
)

// APIError is a non-success response that doesn't map to a domain
// sentinel. Message carries TMDB's status_message when present.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// Client implements domain.MovieRepository and domain.DetailsRepository
// for the TMDB v3 API
type Client struct {
	baseURL      string
	apiKey       string
	language     string
	region       string
	pages        int
	includeAdult bool
	httpClient   *http.Client
	logger       *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLanguage sets the ISO 639-1 language tag sent with every request
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithRegion sets the ISO 3166-1 region used for release dates
func WithRegion(region string) Option {
	return func(c *Client) { c.region = region }
}

// WithPages sets how many list pages make up one fetch
func WithPages(n int) Option {
	return func(c *Client) { c.pages = n }
}

// WithAdult keeps adult titles in list results
func WithAdult(include bool) Option {
	return func(c *Client) { c.includeAdult = include }
}

// WithTimeout sets the HTTP client timeout. The client is copied first so
// one passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new TMDB API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		pages:   1,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an authenticated GET and returns the body of a 200
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	case http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	}

	c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "body", string(body))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope errorResponse
	if json.Unmarshal(body, &envelope) == nil {
		apiErr.Code = envelope.StatusCode
		apiErr.Message = envelope.StatusMessage
	}
	return nil, apiErr
}

// transportError maps a failed round trip to a domain error. Deadlines,
// whether from ctx or the HTTP client, become ErrTimeout; cancellation is
// returned as-is.
func (c *Client) transportError(ctx context.Context, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", domain.ErrTimeout, ctxErr)
		}
		return ctxErr
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		c.logger.Warn("tmdb request timed out", "path", path, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}

	c.logger.Error("tmdb request failed", "path", path, "error", err)
	return domain.ErrServerOffline
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// FetchMovies returns the listing for order, concatenating up to the
// configured number of pages
func (c *Client) FetchMovies(ctx context.Context, order domain.SortOrder) ([]domain.Movie, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("invalid sort order %d", int(order))
	}
	path := "/movie/" + order.Key()

	results, err := fetchPages(ctx, func(ctx context.Context, page int) ([]MovieResult, int, error) {
		return c.fetchListPage(ctx, path, page)
	}, c.pages)
	if err != nil {
		return nil, err
	}

	results = dedupe(results, func(r MovieResult) int64 { return r.ID })
	movies := MapMovies(results)
	if !c.includeAdult {
		movies = withoutAdult(movies)
	}

	c.logger.Debug("fetched movies", "order", order.Key(), "count", len(movies))
	return movies, nil
}

func (c *Client) fetchListPage(ctx context.Context, path string, page int) ([]MovieResult, int, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if c.region != "" {
		query.Set("region", c.region)
	}

	var resp ListResponse
	if err := c.getJSON(ctx, path, query, &resp); err != nil {
		return nil, 0, err
	}
	totalPages := resp.TotalPages
	if totalPages == 0 {
		totalPages = resp.Page // Fallback if total_pages not provided
	}
	return resp.Results, totalPages, nil
}

func withoutAdult(movies []domain.Movie) []domain.Movie {
	out := movies[:0]
	for _, m := range movies {
		if !m.Adult {
			out = append(out, m)
		}
	}
	return out
}

// FetchDetails returns extended metadata for one movie
func (c *Client) FetchDetails(ctx context.Context, id int64) (*domain.MovieDetails, error) {
	var resp DetailsResponse
	path := "/movie/" + strconv.FormatInt(id, 10)
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return MapDetails(resp), nil
}

// FetchConfiguration returns the API's image configuration
func (c *Client) FetchConfiguration(ctx context.Context) (*ConfigurationResponse, error) {
	var resp ConfigurationResponse
	if err := c.getJSON(ctx, "/configuration", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateKey checks that the configured API key is accepted
func (c *Client) ValidateKey(ctx context.Context) error {
	_, err := c.FetchConfiguration(ctx)
	if errors.Is(err, domain.ErrAuthFailed) {
		c.logger.Warn("api key rejected")
	}
	return err
}
