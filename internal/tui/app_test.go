package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/screen"
)

type fakeRepo struct {
	mu         sync.Mutex
	lists      map[domain.SortOrder][]domain.Movie
	err        error
	detailsErr error
	fetched    []domain.SortOrder
}

func (r *fakeRepo) FetchMovies(_ context.Context, order domain.SortOrder) ([]domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetched = append(r.fetched, order)
	if r.err != nil {
		return nil, r.err
	}
	return r.lists[order], nil
}

func (r *fakeRepo) FetchDetails(_ context.Context, id int64) (*domain.MovieDetails, error) {
	if r.detailsErr != nil {
		return nil, r.detailsErr
	}
	for _, movies := range r.lists {
		for _, m := range movies {
			if m.ID == id {
				return &domain.MovieDetails{Movie: m, Tagline: "Tagline for " + m.Title}, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) fetchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fetched)
}

type fakePrefs struct {
	order domain.SortOrder
}

func (p *fakePrefs) SortOrder() domain.SortOrder { return p.order }
func (p *fakePrefs) SetSortOrder(order domain.SortOrder) error {
	p.order = order
	return nil
}

type fakeStore struct {
	session *domain.Snapshot
	details map[int64]*domain.MovieDetails
	cleared bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{details: make(map[int64]*domain.MovieDetails)}
}

func (s *fakeStore) LoadSession() (*domain.Snapshot, bool) { return s.session, s.session != nil }
func (s *fakeStore) SaveSession(snap domain.Snapshot) error {
	s.session = &snap
	return nil
}
func (s *fakeStore) ClearSession() error {
	s.session = nil
	s.cleared = true
	return nil
}
func (s *fakeStore) GetDetails(id int64) (*domain.MovieDetails, bool) {
	d, ok := s.details[id]
	return d, ok
}
func (s *fakeStore) SaveDetails(details *domain.MovieDetails) error {
	s.details[details.ID] = details
	return nil
}
func (s *fakeStore) InvalidateAll() { s.details = make(map[int64]*domain.MovieDetails) }
func (s *fakeStore) Close() error   { return nil }

type harness struct {
	model   Model
	repo    *fakeRepo
	prefs   *fakePrefs
	store   *fakeStore
	online  bool
	pending []tea.Msg // produced by commands, not yet delivered
}

func newHarness(t *testing.T, restored *domain.Snapshot) *harness {
	t.Helper()
	repo := &fakeRepo{lists: map[domain.SortOrder][]domain.Movie{
		domain.Popular:  {{ID: 1, Title: "Dune"}, {ID: 2, Title: "Alien"}},
		domain.TopRated: {{ID: 3, Title: "Heat"}},
		domain.Upcoming: {{ID: 4, Title: "Sinners"}},
	}}
	h := &harness{
		repo:   repo,
		prefs:  &fakePrefs{order: domain.Popular},
		store:  newFakeStore(),
		online: true,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	surface := NewSurface()
	ctrl := screen.NewController(h.repo, h.prefs,
		domain.ConnectivityFunc(func() bool { return h.online }),
		screen.WithPresenter(surface),
		screen.WithLogger(logger),
	)
	h.model = NewModel(Options{
		Controller:  ctrl,
		Surface:     surface,
		Details:     h.repo,
		Store:       h.store,
		Restored:    restored,
		GridColumns: 4,
		Logger:      logger,
	})

	statusDuration, errorDuration = time.Millisecond, time.Millisecond
	t.Cleanup(func() {
		statusDuration, errorDuration = 3*time.Second, 5*time.Second
	})

	h.collect(h.model.Init())
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// collect runs cmd and queues what it produced. Spinner ticks are
// dropped so tests never wait on timers.
func (h *harness) collect(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.collect(c)
		}
	case nil:
	default:
		if !isSpinnerTick(msg) {
			h.pending = append(h.pending, msg)
		}
	}
}

func isSpinnerTick(msg tea.Msg) bool {
	_, ok := msg.(spinner.TickMsg)
	return ok
}

func (h *harness) send(msg tea.Msg) {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	h.collect(cmd)
}

func (h *harness) key(s string) {
	switch s {
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

// takeFetches removes and returns the queued fetch results
func (h *harness) takeFetches() []screen.FetchResultMsg {
	var out []screen.FetchResultMsg
	var rest []tea.Msg
	for _, msg := range h.pending {
		if f, ok := msg.(screen.FetchResultMsg); ok {
			out = append(out, f)
		} else {
			rest = append(rest, msg)
		}
	}
	h.pending = rest
	return out
}

// step delivers only the oldest queued message
func (h *harness) step() {
	if len(h.pending) == 0 {
		return
	}
	msg := h.pending[0]
	h.pending = h.pending[1:]
	h.send(msg)
}

// flush delivers every queued message, including ones they produce
func (h *harness) flush() {
	for len(h.pending) > 0 {
		msg := h.pending[0]
		h.pending = h.pending[1:]
		h.send(msg)
	}
}

func (h *harness) state() screen.ViewState {
	return h.model.ctrl.State()
}

func TestModelFetchesStoredOrderOnStart(t *testing.T) {
	h := newHarness(t, nil)

	if _, ok := h.state().(screen.Loading); !ok {
		t.Fatalf("state = %s, want loading", h.state())
	}
	if view := h.model.View(); !strings.Contains(view, "Loading Popular movies") {
		t.Fatalf("View() missing loading text:\n%s", view)
	}

	h.flush()

	content, ok := h.state().(screen.Content)
	if !ok {
		t.Fatalf("state = %s, want content", h.state())
	}
	if len(content.Movies) != 2 {
		t.Fatalf("len(Movies) = %d, want 2", len(content.Movies))
	}
	if got := h.model.Grid.Len(); got != 2 {
		t.Fatalf("Grid.Len() = %d, want 2", got)
	}
	view := h.model.View()
	for _, want := range []string{"Dune", "Alien", "2 movies"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModelRestoredSnapshotSkipsFetch(t *testing.T) {
	snap := &domain.Snapshot{Order: domain.Popular, Movies: []domain.Movie{{ID: 9, Title: "Arrival"}}}
	h := newHarness(t, snap)
	h.flush()

	if got := h.repo.fetchCount(); got != 0 {
		t.Fatalf("fetches = %d, want 0", got)
	}
	if !strings.Contains(h.model.View(), "Arrival") {
		t.Fatal("View() should show the restored movie")
	}
}

func TestModelCategoryKeyPersistsBeforeFetch(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()

	h.key("3")
	if h.prefs.order != domain.TopRated {
		t.Fatalf("stored order = %v, want %v", h.prefs.order, domain.TopRated)
	}
	if _, ok := h.state().(screen.Loading); !ok {
		t.Fatalf("state = %s, want loading", h.state())
	}

	h.flush()
	content, ok := h.state().(screen.Content)
	if !ok || content.Order != domain.TopRated {
		t.Fatalf("state = %#v, want top rated content", h.state())
	}
	if !strings.Contains(h.model.View(), "Heat") {
		t.Fatal("View() should show the top rated list")
	}
}

func TestModelLatestCategoryWins(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()

	h.key("3")
	h.key("4")
	fetches := h.takeFetches()
	if len(fetches) != 2 {
		t.Fatalf("queued fetches = %d, want 2", len(fetches))
	}

	// Newest result lands first, then the stale one
	h.send(fetches[1])
	h.send(fetches[0])

	content, ok := h.state().(screen.Content)
	if !ok || content.Order != domain.Upcoming {
		t.Fatalf("state = %#v, want upcoming content", h.state())
	}
	if movie, _ := h.model.Grid.SelectedMovie(); movie.Title != "Sinners" {
		t.Fatalf("selected = %q, want %q", movie.Title, "Sinners")
	}
}

func TestModelOfflineShowsNoConnection(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()

	h.online = false
	h.key("r")

	failed, ok := h.state().(screen.Failed)
	if !ok || !failed.NoConnection() {
		t.Fatalf("state = %#v, want failed without reason", h.state())
	}
	if !strings.Contains(h.model.View(), "No internet connection") {
		t.Fatal("View() should report the missing connection")
	}

	h.online = true
	h.key("r")
	h.flush()
	if _, ok := h.state().(screen.Content); !ok {
		t.Fatalf("state after retry = %s, want content", h.state())
	}
}

func TestModelOfflineRetryStopsLoadingFooter(t *testing.T) {
	h := newHarness(t, nil)
	if !h.model.ctrl.IsLoading() {
		t.Fatal("first fetch should be in flight")
	}

	// Initial fetch result is still queued when the connection drops
	h.online = false
	h.key("r")

	view := h.model.View()
	if !strings.Contains(view, "No internet connection") {
		t.Fatalf("View() should report the missing connection:\n%s", view)
	}
	if strings.Contains(view, "Loading") {
		t.Fatalf("View() shows loading next to the failure:\n%s", view)
	}

	h.flush()
	if _, ok := h.state().(screen.Failed); !ok {
		t.Fatalf("state = %s, want failed", h.state())
	}
	if strings.Contains(h.model.View(), "Loading") {
		t.Fatal("stale result should not bring back the loading footer")
	}
}

func TestModelRefreshClearsCacheAndShowsStatus(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()
	h.store.details[1] = &domain.MovieDetails{Movie: domain.Movie{ID: 1}}

	h.key("R")
	if len(h.store.details) != 0 {
		t.Fatal("R should drop cached details")
	}
	fetches := h.takeFetches()
	if len(fetches) != 1 {
		t.Fatalf("fetches = %d, want 1", len(fetches))
	}
	h.send(fetches[0])
	h.step()

	if h.model.StatusMsg != "Cache cleared" || h.model.StatusIsErr {
		t.Fatalf("status = %q (err %v), want %q", h.model.StatusMsg, h.model.StatusIsErr, "Cache cleared")
	}
	if !strings.Contains(h.model.View(), "Cache cleared") {
		t.Fatal("View() should show the status in the footer")
	}

	h.flush()
	if h.model.StatusMsg != "" {
		t.Fatalf("status = %q after clear, want empty", h.model.StatusMsg)
	}
}

func TestModelDetailsErrorReportedInFooter(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()
	h.repo.detailsErr = errors.New("boom")

	h.key("enter")
	h.step() // DetailsLoadedMsg
	h.step() // ErrMsg

	if !h.model.StatusIsErr || h.model.StatusMsg != "details: boom" {
		t.Fatalf("status = %q (err %v), want %q", h.model.StatusMsg, h.model.StatusIsErr, "details: boom")
	}
	if !strings.Contains(h.model.View(), "Details unavailable: boom") {
		t.Fatal("details pane should show the error inline")
	}
}

func TestModelFailureShowsReason(t *testing.T) {
	h := newHarness(t, nil)
	h.repo.err = errors.New("Invalid API key: You must be granted a valid key.")
	h.key("r")
	h.flush()

	if _, ok := h.state().(screen.Failed); !ok {
		t.Fatalf("state = %s, want failed", h.state())
	}
	view := h.model.View()
	for _, want := range []string{"Couldn't load movies", "Invalid API key", "to retry"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModelEnterOpensDetails(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()

	h.key("l")
	h.key("enter")
	if !h.model.Details.IsVisible() {
		t.Fatal("enter should open the details pane")
	}
	if got := h.model.Details.Movie().Title; got != "Alien" {
		t.Fatalf("details movie = %q, want %q", got, "Alien")
	}

	h.flush()
	if h.model.Details.IsLoading() {
		t.Fatal("details should have loaded")
	}
	if _, ok := h.store.details[2]; !ok {
		t.Fatal("details should be cached in the store")
	}
	if !strings.Contains(h.model.View(), "Tagline for Alien") {
		t.Fatal("View() should show the loaded tagline")
	}

	// Selecting a movie does not change the view state
	if _, ok := h.state().(screen.Content); !ok {
		t.Fatalf("state = %s, want content", h.state())
	}

	h.key("esc")
	if h.model.Details.IsVisible() {
		t.Fatal("esc should close the details pane")
	}
}

func TestModelSortModalSwitchesCategory(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()

	h.key("s")
	if !h.model.SortModal.IsVisible() {
		t.Fatal("s should open the sort modal")
	}
	h.key("j")
	h.key("enter")
	h.flush()

	if got := h.model.ctrl.SortOrder(); got != domain.TopRated {
		t.Fatalf("SortOrder() = %v, want %v", got, domain.TopRated)
	}
}

func TestModelQuitSavesSession(t *testing.T) {
	h := newHarness(t, nil)
	h.flush()

	h.key("q")
	if h.store.session == nil {
		t.Fatal("quit should save a session snapshot")
	}
	if got := len(h.store.session.Movies); got != 2 {
		t.Fatalf("saved movies = %d, want 2", got)
	}

	var quit bool
	for _, msg := range h.pending {
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
		}
	}
	if !quit {
		t.Fatal("q should quit the program")
	}
}

func TestModelQuitWithoutContentClearsSession(t *testing.T) {
	h := newHarness(t, nil)
	h.store.session = &domain.Snapshot{Order: domain.Popular}

	h.key("q")
	if !h.store.cleared || h.store.session != nil {
		t.Fatal("quitting while loading should clear the old snapshot")
	}
}
