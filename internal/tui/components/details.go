package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for the details pane
const (
	DetailsBorderHeight = 2
	DetailsTitleLines   = 2 // title line + blank line
	DetailsMaxBodyWidth = 80
	posterSize          = "w500"
)

// DetailsPane shows extended metadata for one movie. The list entry is
// rendered immediately; the extended record fills in once loaded.
type DetailsPane struct {
	movie     domain.Movie
	details   *domain.MovieDetails
	loading   bool
	err       error
	imageBase string

	visible  bool
	width    int
	height   int
	viewport viewport.Model
}

// NewDetailsPane creates a hidden details pane
func NewDetailsPane(imageBase string) DetailsPane {
	return DetailsPane{
		imageBase: imageBase,
		viewport:  viewport.New(0, 0),
	}
}

// Open shows movie and marks its extended record as loading
func (d *DetailsPane) Open(movie domain.Movie) {
	d.movie = movie
	d.details = nil
	d.err = nil
	d.loading = true
	d.visible = true
	d.refresh()
	d.viewport.GotoTop()
}

// SetDetails fills in the extended record if it belongs to the open movie
func (d *DetailsPane) SetDetails(id int64, details *domain.MovieDetails, err error) bool {
	if !d.visible || id != d.movie.ID {
		return false
	}
	d.loading = false
	d.details = details
	d.err = err
	d.refresh()
	return true
}

// Close hides the pane
func (d *DetailsPane) Close() {
	d.visible = false
	d.details = nil
	d.err = nil
	d.loading = false
}

// IsVisible returns true if the pane is open
func (d DetailsPane) IsVisible() bool {
	return d.visible
}

// IsLoading returns true while the extended record is outstanding
func (d DetailsPane) IsLoading() bool {
	return d.loading
}

// Movie returns the movie being shown
func (d DetailsPane) Movie() domain.Movie {
	return d.movie
}

// SetSize updates the component dimensions
func (d *DetailsPane) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = max(width-BorderWidth-1, 10)
	d.viewport.Height = max(height-DetailsBorderHeight-DetailsTitleLines, 1)
	d.refresh()
}

func (d *DetailsPane) refresh() {
	d.viewport.SetContent(d.renderBody(d.viewport.Width))
}

// Update handles closing; everything else scrolls the viewport. It
// returns closed=true when the user dismissed the pane.
func (d DetailsPane) Update(msg tea.Msg) (DetailsPane, tea.Cmd, bool) {
	if !d.visible {
		return d, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, DetailsKeys.Close) {
		d.Close()
		return d, nil, true
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd, false
}

// View renders the component
func (d DetailsPane) View() string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()
	contentWidth := max(d.width-frameW-1, 10)

	title := styles.AccentStyle.Render(styles.Truncate("Details", contentWidth))
	if d.viewport.TotalLineCount() > d.viewport.Height {
		pct := fmt.Sprintf("%3.0f%%", d.viewport.ScrollPercent()*100)
		title = styles.AccentStyle.Render(styles.Truncate("Details", contentWidth-len(pct)-1)) +
			" " + styles.DimStyle.Render(pct)
	}

	return style.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Render(title + "\n\n" + d.viewport.View())
}

// renderBody renders the scrollable content
func (d DetailsPane) renderBody(width int) string {
	if width < 1 {
		return ""
	}

	var b strings.Builder
	movie := d.movie
	if d.details != nil {
		movie = d.details.Movie
	}

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(movie.Title, width)))
	b.WriteString("\n")
	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(movie.OriginalTitle, width)))
		b.WriteString("\n")
	}
	if d.details != nil && d.details.Tagline != "" {
		b.WriteString(styles.ItalicStyle.Render(styles.WordWrap(d.details.Tagline, width)))
		b.WriteString("\n")
	}

	// Meta line: release · runtime · status
	var meta []string
	if date := movie.FormattedReleaseDate(); date != "" {
		meta = append(meta, date)
	}
	if d.details != nil {
		if rt := d.details.FormattedRuntime(); rt != "" {
			meta = append(meta, rt)
		}
		if d.details.Status != "" && d.details.Status != "Released" {
			meta = append(meta, d.details.Status)
		}
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	rating := styles.RatingStyle(movie.Rating).Render("★ " + movie.FormattedRating())
	if movie.VoteCount > 0 {
		rating += styles.DimStyle.Render(fmt.Sprintf(" (%d votes)", movie.VoteCount))
	}
	b.WriteString(rating)
	b.WriteString("\n")

	if d.details != nil && len(d.details.Genres) > 0 {
		b.WriteString(styles.SubtitleStyle.Render(styles.WordWrap(d.details.GenreNames(), width)))
		b.WriteString("\n")
	}

	switch {
	case d.loading:
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("Loading details..."))
		b.WriteString("\n")
	case d.err != nil:
		b.WriteString("\n")
		reason := domain.Reason(d.err)
		if reason == "" {
			reason = "no internet connection"
		}
		b.WriteString(styles.ErrorStyle.Render(styles.WordWrap("Details unavailable: "+reason, width)))
		b.WriteString("\n")
	}

	if movie.Overview != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(styles.WordWrap(movie.Overview, min(width, DetailsMaxBodyWidth))))
		b.WriteString("\n")
	}

	// Footer facts
	var facts []string
	if url := movie.PosterURL(d.imageBase, posterSize); url != "" {
		facts = append(facts, "Poster  "+url)
	}
	if d.details != nil {
		if d.details.IMDbID != "" {
			facts = append(facts, "IMDb    https://www.imdb.com/title/"+d.details.IMDbID)
		}
		if d.details.Homepage != "" {
			facts = append(facts, "Web     "+d.details.Homepage)
		}
		if d.details.Budget > 0 {
			facts = append(facts, "Budget  "+formatDollars(d.details.Budget))
		}
		if d.details.Revenue > 0 {
			facts = append(facts, "Revenue "+formatDollars(d.details.Revenue))
		}
	}
	if len(facts) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
		b.WriteString("\n")
		for _, f := range facts {
			b.WriteString(styles.DimStyle.Render(styles.Truncate(f, width)))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatDollars renders 185000000 as "$185.0M"
func formatDollars(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("$%.1fM", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("$%.0fK", float64(n)/1e3)
	default:
		return fmt.Sprintf("$%d", n)
	}
}
