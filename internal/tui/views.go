package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/screen"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const appName = "marquee"

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)

	// Overlay sort modal if visible
	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}

	return view
}

// renderHeader renders the app name and the category tabs
func (m Model) renderHeader() string {
	active := m.ctrl.SortOrder()

	parts := []string{styles.AppNameStyle.Render(appName)}
	for i, order := range domain.AllSortOrders() {
		label := fmt.Sprintf("%d %s", i+1, order)
		if order == active {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.TabStyle.Render(label))
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(header)
}

// renderBody renders the area between header and footer for the
// current view state
func (m Model) renderBody() string {
	height := m.bodyHeight()

	switch state := m.ctrl.State().(type) {
	case screen.Content:
		return m.renderContent()
	case screen.Failed:
		return m.center(RenderFailure(state, m.Width), height)
	case screen.Loading:
		return m.center(m.Spinner.View()+" "+styles.DimStyle.Render("Loading "+state.Order.String()+" movies..."), height)
	default:
		return m.center(m.Spinner.View(), height)
	}
}

// renderContent renders the grid with the details pane when open
func (m Model) renderContent() string {
	if !m.Details.IsVisible() {
		return m.Grid.View()
	}

	layout := m.calculateLayout(m.Width)
	if layout.stacked {
		return m.Details.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.Grid.View(), m.Details.View())
}

func (m Model) center(content string, height int) string {
	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, content)
}

// RenderFailure renders a failed state. A failure without reason is a
// connectivity problem.
func RenderFailure(state screen.Failed, width int) string {
	title := "Couldn't load movies"
	detail := state.Reason
	if state.NoConnection() {
		title = "No internet connection"
		detail = "Check your network connection."
	}

	wrapWidth := min(max(width-8, 20), 60)
	lines := []string{
		styles.ErrorStyle.Bold(true).Render(title),
		"",
		styles.SubtitleStyle.Render(styles.WordWrap(detail, wrapWidth)),
		"",
		styles.DimStyle.Render("Press ") + styles.AccentStyle.Render("r") + styles.DimStyle.Render(" to retry"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderFooter renders a single-line footer
func (m Model) renderFooter() string {
	// Left side: spinner while fetching, status message, or a count
	var left string
	switch {
	case m.ctrl.IsLoading():
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	default:
		if movies, ok := m.ctrl.Movies(); ok {
			left = styles.DimStyle.Render(pluralize(len(movies), "movie"))
		}
	}

	// Center section: context-specific hints
	var bindings []key.Binding
	switch {
	case m.Details.IsVisible():
		bindings = []key.Binding{components.DetailsKeys.Close, components.DetailsKeys.Up, components.DetailsKeys.Down}
	case m.Grid.IsFilterTyping():
		bindings = []key.Binding{components.GridKeys.Enter, components.GridKeys.Escape}
	default:
		bindings = Keys.ShortHelp()
	}
	center := m.Help.ShortHelpView(bindings)

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	groups := Keys.FullHelp()
	groups = append(groups, []key.Binding{
		components.GridKeys.Home,
		components.GridKeys.End,
		components.GridKeys.HalfUp,
		components.GridKeys.HalfDown,
		components.GridKeys.PageUp,
		components.GridKeys.PageDown,
	})

	h := m.Help
	h.ShowAll = true
	body := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.FullHelpView(groups) + "\n\n" +
		styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
