package components

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for the grid
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title line at the top of the grid interior
	HeaderLines = 1

	// Each cell is two text lines inside a rounded border
	CellHeight = 4

	// Cells narrower than this drop a column instead
	MinCellWidth = 18

	DefaultColumns = 4
)

// MovieGrid lays movies out as cards in rows and columns
type MovieGrid struct {
	movies  []domain.Movie
	columns int

	// Selection
	cursor    int
	rowOffset int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      fuzzy.Matches // nil when no query is applied
}

// NewMovieGrid creates a grid showing at most columns cards per row
func NewMovieGrid(columns int) MovieGrid {
	if columns <= 0 {
		columns = DefaultColumns
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return MovieGrid{
		columns:     columns,
		filterInput: ti,
		focused:     true,
	}
}

// SetMovies replaces the content and resets selection and filter
func (g *MovieGrid) SetMovies(movies []domain.Movie) {
	g.movies = movies
	g.cursor = 0
	g.rowOffset = 0
	g.clearFilter()
}

// Movies returns the unfiltered content
func (g MovieGrid) Movies() []domain.Movie {
	return g.movies
}

// SetSize updates the component dimensions
func (g *MovieGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetTitle sets the text shown on the grid's first line
func (g *MovieGrid) SetTitle(title string) {
	g.title = title
}

// SetFocused sets the focus state
func (g *MovieGrid) SetFocused(focused bool) {
	g.focused = focused
}

// Columns returns the number of cards per row at the current width
func (g MovieGrid) Columns() int {
	inner := g.width - BorderWidth
	fit := inner / MinCellWidth
	if fit < 1 {
		fit = 1
	}
	if fit < g.columns {
		return fit
	}
	return g.columns
}

// visibleRows returns how many card rows fit
func (g MovieGrid) visibleRows() int {
	rows := (g.height - BorderHeight - HeaderLines - g.filterLines()) / CellHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (g MovieGrid) filterLines() int {
	if g.filterActive {
		return 1
	}
	return 0
}

// Cursor returns the current cursor position
func (g MovieGrid) Cursor() int {
	return g.cursor
}

// SetCursor moves the cursor, clamped to the visible items
func (g *MovieGrid) SetCursor(pos int) {
	last := g.Len() - 1
	if last < 0 {
		g.cursor = 0
		return
	}
	g.cursor = max(0, min(pos, last))
	g.ensureVisible()
}

// Len returns the number of visible items (accounting for filter)
func (g MovieGrid) Len() int {
	if g.matches != nil {
		return len(g.matches)
	}
	return len(g.movies)
}

// IsEmpty returns true if there are no visible items
func (g MovieGrid) IsEmpty() bool {
	return g.Len() == 0
}

// SelectedMovie returns the movie under the cursor
func (g MovieGrid) SelectedMovie() (domain.Movie, bool) {
	if g.cursor >= g.Len() {
		return domain.Movie{}, false
	}
	return g.movies[g.mapIndex(g.cursor)], true
}

// mapIndex maps a cursor position to the index in movies
func (g MovieGrid) mapIndex(i int) int {
	if g.matches != nil && i < len(g.matches) {
		return g.matches[i].Index
	}
	return i
}

func (g MovieGrid) matchedIndexes(i int) []int {
	if g.matches != nil && i < len(g.matches) {
		return g.matches[i].MatchedIndexes
	}
	return nil
}

// ensureVisible scrolls so the cursor row is on screen
func (g *MovieGrid) ensureVisible() {
	cols := g.Columns()
	rows := g.visibleRows()
	row := g.cursor / cols

	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+rows {
		g.rowOffset = row - rows + 1
	}
}

// ToggleFilter activates the filter input
func (g *MovieGrid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.ensureVisible()
}

// IsFiltering returns true if filter mode is active
func (g MovieGrid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (g MovieGrid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// FilterQuery returns the applied filter text
func (g MovieGrid) FilterQuery() string {
	return g.filterQuery
}

// ClearFilter deactivates the filter and shows all items
func (g *MovieGrid) ClearFilter() {
	g.clearFilter()
}

func (g *MovieGrid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.matches = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
}

// applyFilter fuzzy-matches titles against the current query
func (g *MovieGrid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.matches = nil
		return
	}

	titles := make([]string, len(g.movies))
	for i, m := range g.movies {
		titles[i] = strings.ToLower(m.Title)
	}

	lower := strings.ToLower(query)
	g.matches = fuzzy.Find(lower, titles)
	if len(g.matches) == 0 {
		g.matches = typoMatches(lower, titles)
	}

	// Reset cursor to best match
	g.cursor = 0
	g.rowOffset = 0
}

// typoMatches finds titles within a small edit distance of the query.
// Used when subsequence matching finds nothing, so "intersteler" still
// finds "Interstellar".
func typoMatches(query string, titles []string) fuzzy.Matches {
	tolerance := max(1, utf8.RuneCountInString(query)/4)

	matches := fuzzy.Matches{}
	for i, title := range titles {
		best := fuzzysearch.LevenshteinDistance(query, title)
		for _, word := range strings.Fields(title) {
			best = min(best, fuzzysearch.LevenshteinDistance(query, word))
		}
		if best <= tolerance {
			matches = append(matches, fuzzy.Match{Str: title, Index: i, Score: -best})
		}
	}

	// Closest first
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}

// Init initializes the component
func (g MovieGrid) Init() tea.Cmd {
	return nil
}

// Update handles navigation and filter input
func (g MovieGrid) Update(msg tea.Msg) (MovieGrid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Typing into the filter
	if g.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, GridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(msg, GridKeys.Enter):
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case msg.String() == "backspace" && g.filterInput.Value() == "":
				g.clearFilter()
				return g, nil
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	// Filter applied but blurred
	if g.filterActive {
		switch {
		case key.Matches(keyMsg, GridKeys.Escape):
			g.clearFilter()
			return g, nil
		case key.Matches(keyMsg, GridKeys.Filter):
			g.filterInput.Focus()
			return g, nil
		}
	}

	count := g.Len()
	if count == 0 {
		return g, nil
	}

	cols := g.Columns()
	page := g.visibleRows() * cols

	switch {
	case key.Matches(keyMsg, GridKeys.Left):
		g.SetCursor(g.cursor - 1)
	case key.Matches(keyMsg, GridKeys.Right):
		g.SetCursor(g.cursor + 1)
	case key.Matches(keyMsg, GridKeys.Up):
		if g.cursor-cols >= 0 {
			g.SetCursor(g.cursor - cols)
		}
	case key.Matches(keyMsg, GridKeys.Down):
		if g.cursor+cols < count {
			g.SetCursor(g.cursor + cols)
		} else if g.cursor/cols < (count-1)/cols {
			// Partial last row: land on its last card
			g.SetCursor(count - 1)
		}
	case key.Matches(keyMsg, GridKeys.Home):
		g.cursor = 0
		g.rowOffset = 0
	case key.Matches(keyMsg, GridKeys.End):
		g.SetCursor(count - 1)
	case key.Matches(keyMsg, GridKeys.HalfDown):
		g.SetCursor(g.cursor + max(cols, page/2/cols*cols))
	case key.Matches(keyMsg, GridKeys.HalfUp):
		g.SetCursor(g.cursor - max(cols, page/2/cols*cols))
	case key.Matches(keyMsg, GridKeys.PageDown):
		g.SetCursor(g.cursor + page)
	case key.Matches(keyMsg, GridKeys.PageUp):
		g.SetCursor(g.cursor - page)
	}

	return g, nil
}

// View renders the component
func (g MovieGrid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	innerWidth := g.width - frameW

	return style.
		Width(innerWidth).
		Height(g.height - frameH).
		Render(g.renderContent(innerWidth))
}

func (g MovieGrid) renderContent(innerWidth int) string {
	count := g.Len()

	// Header: title left, position right
	position := ""
	if count > 0 {
		position = fmt.Sprintf("%d/%d", g.cursor+1, count)
	}
	titleWidth := innerWidth - len(position) - 1
	left := styles.AccentStyle.Render(styles.Truncate(g.title, titleWidth))
	gap := innerWidth - lipgloss.Width(left) - len(position)
	header := left + strings.Repeat(" ", max(gap, 1)) + styles.DimStyle.Render(position)

	var body string
	if count == 0 {
		empty := "No movies"
		if g.filterActive && g.filterQuery != "" {
			empty = "No matches"
		}
		body = "\n" + styles.DimStyle.Render(empty)
	} else {
		body = g.renderRows(innerWidth)
	}

	content := header + "\n" + body
	if g.filterActive {
		// Pin the filter bar to the last interior line
		used := lipgloss.Height(content)
		free := g.height - BorderHeight - used - 1
		if free > 0 {
			content += strings.Repeat("\n", free)
		}
		content += "\n" + g.renderFilterBar()
	}
	return content
}

func (g MovieGrid) renderRows(innerWidth int) string {
	cols := g.Columns()
	cellWidth := innerWidth / cols
	count := g.Len()

	start := g.rowOffset * cols
	end := min(start+g.visibleRows()*cols, count)

	var rows []string
	for rowStart := start; rowStart < end; rowStart += cols {
		var cells []string
		for i := rowStart; i < min(rowStart+cols, end); i++ {
			movie := g.movies[g.mapIndex(i)]
			cells = append(cells, g.renderCell(movie, g.matchedIndexes(i), i == g.cursor, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// renderCell renders one movie card
func (g MovieGrid) renderCell(movie domain.Movie, matched []int, selected bool, cellWidth int) string {
	style := styles.GridCellStyle
	titleStyle := styles.SubtitleStyle
	if selected && g.focused {
		style = styles.GridCellSelectedStyle
		titleStyle = styles.TitleStyle
	}

	// Width covers padding, not border
	textWidth := cellWidth - BorderWidth - style.GetHorizontalPadding()
	if textWidth < 1 {
		textWidth = 1
	}

	title := highlightTitle(movie.Title, textWidth, matched, titleStyle)

	var meta []string
	if year := movie.Year(); year > 0 {
		meta = append(meta, styles.DimStyle.Render(fmt.Sprintf("%d", year)))
	}
	meta = append(meta, styles.RatingStyle(movie.Rating).Render("★ "+movie.FormattedRating()))
	metaLine := strings.Join(meta, styles.DimStyle.Render(" · "))

	return style.
		Width(cellWidth - BorderWidth).
		Render(title + "\n" + metaLine)
}

// highlightTitle truncates title and emphasizes fuzzy-matched bytes
func highlightTitle(title string, width int, matched []int, base lipgloss.Style) string {
	truncated := styles.Truncate(title, width)
	if len(matched) == 0 {
		return base.Render(truncated)
	}

	hit := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hit[idx] = true
	}

	body, tail := truncated, ""
	if truncated != title {
		body = strings.TrimSuffix(truncated, "…")
		tail = truncated[len(body):]
	}

	var b strings.Builder
	for i, r := range body {
		if hit[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	if tail != "" {
		b.WriteString(base.Render(tail))
	}
	return b.String()
}

// renderFilterBar renders the filter input with a match count
func (g MovieGrid) renderFilterBar() string {
	input := g.filterInput.View()
	if g.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.Len(), len(g.movies)))
}
