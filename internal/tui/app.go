package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/screen"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout proportions
const (
	DetailsPercent  = 40
	MinDetailsWidth = 36
	MinSplitWidth   = 100

	// Header line plus footer line
	ChromeHeight = 2
)

// How long footer messages stay up
var (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Options wires the model to the rest of the application
type Options struct {
	Controller   *screen.Controller
	Surface      *Surface
	Details      domain.DetailsRepository
	Store        domain.Store
	Restored     *domain.Snapshot
	ImageBaseURL string
	GridColumns  int
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Screen logic
	ctrl     *screen.Controller
	surface  *Surface
	rendered uint64 // surface version last applied to the components
	restored *domain.Snapshot

	// Services
	detailsRepo domain.DetailsRepository
	store       domain.Store
	logger      *slog.Logger

	// UI Components
	Grid      components.MovieGrid
	Details   components.DetailsPane
	SortModal components.SortModal
	Spinner   spinner.Model
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	surface := opts.Surface
	if surface == nil {
		surface = NewSurface()
	}

	return Model{
		ctrl:        opts.Controller,
		surface:     surface,
		restored:    opts.Restored,
		detailsRepo: opts.Details,
		store:       opts.Store,
		logger:      logger,
		Grid:        components.NewMovieGrid(opts.GridColumns),
		Details:     components.NewDetailsPane(opts.ImageBaseURL),
		SortModal:   components.NewSortModal(),
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		Help: help.New(),
	}
}

// Init starts the screen and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.ctrl.Initialize(m.restored),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKeyMsg(msg)
		cmds = append(cmds, cmd)

	case screen.FetchResultMsg:
		if !m.ctrl.HandleResult(msg) {
			m.logger.Debug("ignored fetch result", "request_id", msg.RequestID, "order", msg.Order.Key())
		}

	case DetailsLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to load details", "id", msg.ID, "error", msg.Err)
		}
		if m.Details.SetDetails(msg.ID, msg.Details, msg.Err) && msg.Err != nil {
			cmds = append(cmds, ErrCmd(msg.Err, "details"))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		cmds = append(cmds, ClearStatusCmd(errorDuration))

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		cmds = append(cmds, ClearStatusCmd(statusDuration))

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false

	default:
		// Mouse wheel and friends scroll the details pane
		if m.Details.IsVisible() {
			var cmd tea.Cmd
			m.Details, cmd, _ = m.Details.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// handleKeyMsg routes a key press to the topmost layer that wants it
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	// Help overlay: any key closes it
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.SortModal.IsVisible() {
		if handled, selection := m.SortModal.HandleKey(msg); handled {
			if selection != nil {
				return m, m.ctrl.SetSortOrder(*selection)
			}
			return m, nil
		}
	}

	if m.Details.IsVisible() {
		if key.Matches(msg, Keys.Quit) {
			return m, m.quit()
		}
		var cmd tea.Cmd
		var closed bool
		m.Details, cmd, closed = m.Details.Update(msg)
		if closed {
			m.Grid.SetFocused(true)
			m.updateLayout()
		}
		return m, cmd
	}

	// Typing into the grid filter swallows everything
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, m.quit()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.ctrl.SortOrder())
		return m, nil

	case key.Matches(msg, Keys.NowPlaying):
		return m, m.ctrl.SetSortOrder(domain.NowPlaying)
	case key.Matches(msg, Keys.Popular):
		return m, m.ctrl.SetSortOrder(domain.Popular)
	case key.Matches(msg, Keys.TopRated):
		return m, m.ctrl.SetSortOrder(domain.TopRated)
	case key.Matches(msg, Keys.Upcoming):
		return m, m.ctrl.SetSortOrder(domain.Upcoming)

	case key.Matches(msg, Keys.Retry):
		return m, m.ctrl.Retry()

	case key.Matches(msg, Keys.Refresh):
		if m.store != nil {
			m.store.InvalidateAll()
		}
		return m, tea.Batch(m.ctrl.Retry(), StatusCmd("Cache cleared"))
	}

	// Remaining keys only mean something while movies are shown
	if _, ok := m.ctrl.State().(screen.Content); !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Filter) && !m.Grid.IsFiltering():
		m.Grid.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if movie, ok := m.Grid.SelectedMovie(); ok {
			m.ctrl.SelectedMovie(movie)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

// sync applies whatever the controller rendered since the last call
func (m *Model) sync() tea.Cmd {
	if v := m.surface.Version(); v != m.rendered {
		m.rendered = v
		state := m.surface.State()
		m.Grid.SetTitle(state.SortOrder().String())
		if content, ok := state.(screen.Content); ok {
			m.Grid.SetMovies(content.Movies)
		}
	}

	movie, ok := m.surface.takeSelected()
	if !ok {
		return nil
	}
	m.Details.Open(movie)
	m.Grid.SetFocused(false)
	m.updateLayout()
	return LoadDetailsCmd(m.detailsRepo, m.store, movie.ID, m.logger)
}

// quit stops the controller and saves the shown movies for next start
func (m *Model) quit() tea.Cmd {
	m.ctrl.Stop()
	m.saveSession()
	return tea.Quit
}

func (m *Model) saveSession() {
	if m.store == nil {
		return
	}

	snap, ok := m.ctrl.Snapshot()
	if !ok {
		// Nothing worth restoring; drop any older snapshot
		if err := m.store.ClearSession(); err != nil {
			m.logger.Warn("failed to clear session", "error", err)
		}
		return
	}
	if err := m.store.SaveSession(*snap); err != nil {
		m.logger.Error("failed to save session", "error", err)
		return
	}
	m.logger.Info("session saved", "order", snap.Order.Key(), "count", len(snap.Movies))
}
