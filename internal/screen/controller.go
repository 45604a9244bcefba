// Package screen holds the movie screen's view-state controller: which
// category is shown, whether it is loading, showing movies or showing an
// error, and which fetch result is allowed to land.
package screen

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

const defaultFetchTimeout = 30 * time.Second

// Controller owns the screen's ViewState and issues every fetch. It is
// confined to the Bubble Tea update loop and has no locks; fetches run
// as tea.Cmds and report back through FetchResultMsg.
type Controller struct {
	repo      domain.MovieRepository
	prefs     domain.PreferenceStore
	conn      domain.Connectivity
	presenter Presenter
	logger    *slog.Logger

	parent       context.Context
	fetchTimeout time.Duration

	state       ViewState
	order       domain.SortOrder
	requestID   uint64
	inFlight    bool
	initialized bool
	cancel      context.CancelFunc
}

// Option configures a Controller
type Option func(*Controller)

// WithPresenter sets the surface that receives renders and selections
func WithPresenter(p Presenter) Option {
	return func(c *Controller) {
		if p != nil {
			c.presenter = p
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFetchTimeout bounds each fetch
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithContext sets the parent context of every fetch
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.parent = ctx
		}
	}
}

// NewController reads the stored sort order once; later changes go
// through SetSortOrder.
func NewController(
	repo domain.MovieRepository,
	prefs domain.PreferenceStore,
	conn domain.Connectivity,
	opts ...Option,
) *Controller {
	c := &Controller{
		repo:         repo,
		prefs:        prefs,
		conn:         conn,
		presenter:    nopPresenter{},
		logger:       slog.Default(),
		parent:       context.Background(),
		fetchTimeout: defaultFetchTimeout,
		state:        Uninitialized{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.order = prefs.SortOrder()
	if !c.order.Valid() {
		c.order = domain.DefaultSortOrder
	}
	return c
}

// Initialize starts the screen. A non-nil restored snapshot is shown
// as-is without fetching; otherwise the stored category is fetched.
// Only the first call has any effect.
func (c *Controller) Initialize(restored *domain.Snapshot) tea.Cmd {
	if c.initialized {
		c.logger.Warn("screen already initialized")
		return nil
	}
	c.initialized = true

	if restored != nil {
		movies := restored.Movies
		if movies == nil {
			movies = []domain.Movie{}
		}
		c.logger.Debug("restoring movies", "order", c.order.Key(), "count", len(movies))
		c.transition(Content{Order: c.order, Movies: movies})
		return nil
	}

	return c.load()
}

// SetSortOrder stores the new category and then fetches it. A failed
// write is logged and the fetch still goes out.
func (c *Controller) SetSortOrder(order domain.SortOrder) tea.Cmd {
	if !order.Valid() {
		c.logger.Warn("ignoring invalid sort order", "order", int(order))
		return nil
	}
	c.initialized = true

	if err := c.prefs.SetSortOrder(order); err != nil {
		c.logger.Error("failed to save sort order", "order", order.Key(), "error", err)
	}
	c.order = order

	return c.load()
}

// Retry refetches the current category regardless of state
func (c *Controller) Retry() tea.Cmd {
	c.initialized = true
	return c.load()
}

// load issues a new request id and, when online, a fetch carrying it.
// The id is consumed even when offline so that an older fetch still in
// flight can no longer land.
func (c *Controller) load() tea.Cmd {
	c.cancelInFlight()
	c.inFlight = false

	c.requestID++
	id := c.requestID
	order := c.order

	if !c.conn.IsConnected() {
		c.logger.Debug("offline, skipping fetch", "order", order.Key(), "request_id", id)
		c.transition(Failed{Order: order})
		return nil
	}

	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel
	c.inFlight = true
	c.transition(Loading{Order: order})

	repo, timeout, logger := c.repo, c.fetchTimeout, c.logger
	logger.Debug("fetch issued", "order", order.Key(), "request_id", id)

	return func() tea.Msg {
		ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
		defer cancelTimeout()

		start := time.Now()
		movies, err := repo.FetchMovies(ctx, order)
		logger.Debug("fetch finished",
			"order", order.Key(),
			"request_id", id,
			"count", len(movies),
			"error", err,
			"duration", time.Since(start))
		return FetchResultMsg{RequestID: id, Order: order, Movies: movies, Err: err}
	}
}

// OnFetchSucceeded shows movies if id is the latest request. It reports
// whether the result was applied.
func (c *Controller) OnFetchSucceeded(id uint64, movies []domain.Movie) bool {
	if !c.accept(id) {
		return false
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	c.transition(Content{Order: c.order, Movies: movies})
	return true
}

// OnFetchFailed shows the failure if id is the latest request. An empty
// reason is rendered as a connectivity problem.
func (c *Controller) OnFetchFailed(id uint64, reason string) bool {
	if !c.accept(id) {
		return false
	}
	c.transition(Failed{Order: c.order, Reason: reason})
	return true
}

// HandleResult routes a FetchResultMsg to OnFetchSucceeded or
// OnFetchFailed
func (c *Controller) HandleResult(msg FetchResultMsg) bool {
	if msg.Err != nil {
		return c.OnFetchFailed(msg.RequestID, domain.Reason(msg.Err))
	}
	return c.OnFetchSucceeded(msg.RequestID, msg.Movies)
}

// SelectedMovie forwards a pick to the presenter. No state changes.
func (c *Controller) SelectedMovie(movie domain.Movie) {
	c.logger.Debug("movie selected", "id", movie.ID, "title", movie.Title)
	c.presenter.ShowMovie(movie)
}

// Stop cancels any fetch in flight. Results that still arrive are
// dropped.
func (c *Controller) Stop() {
	c.cancelInFlight()
	c.inFlight = false
}

func (c *Controller) accept(id uint64) bool {
	if !c.inFlight || id != c.requestID {
		c.logger.Debug("dropping stale result", "request_id", id, "latest", c.requestID)
		return false
	}
	c.inFlight = false
	c.cancelInFlight()
	return true
}

func (c *Controller) cancelInFlight() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) transition(next ViewState) {
	prev := c.state
	c.state = next
	c.logger.Debug("view state changed",
		"from", prev.String(),
		"to", next.String(),
		"order", next.SortOrder().Key(),
		"request_id", c.requestID)
	c.presenter.Render(next)
}

// State returns the current view state
func (c *Controller) State() ViewState { return c.state }

// SortOrder returns the active category
func (c *Controller) SortOrder() domain.SortOrder { return c.order }

// RequestID returns the latest issued request id
func (c *Controller) RequestID() uint64 { return c.requestID }

// IsLoading reports whether a fetch for the latest request is in flight
func (c *Controller) IsLoading() bool { return c.inFlight }

// Movies returns the shown movies when in Content
func (c *Controller) Movies() ([]domain.Movie, bool) {
	content, ok := c.state.(Content)
	if !ok {
		return nil, false
	}
	return content.Movies, true
}

// Snapshot captures the shown movies for a later Initialize. Only
// Content produces a snapshot.
func (c *Controller) Snapshot() (*domain.Snapshot, bool) {
	content, ok := c.state.(Content)
	if !ok {
		return nil, false
	}
	movies := make([]domain.Movie, len(content.Movies))
	copy(movies, content.Movies)
	return &domain.Snapshot{Order: content.Order, Movies: movies, SavedAt: time.Now()}, true
}
