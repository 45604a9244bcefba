package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func numberedMovies(n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		movies[i] = domain.Movie{ID: int64(i + 1), Title: "Movie " + string(rune('A'+i))}
	}
	return movies
}

func newTestGrid(movies []domain.Movie) MovieGrid {
	g := NewMovieGrid(4)
	g.SetSize(80, 30)
	g.SetMovies(movies)
	return g
}

func TestMovieGridColumnsClampToWidth(t *testing.T) {
	g := NewMovieGrid(4)

	g.SetSize(80, 30)
	if got := g.Columns(); got != 4 {
		t.Fatalf("Columns() at width 80 = %d, want 4", got)
	}

	g.SetSize(40, 30)
	if got := g.Columns(); got != 2 {
		t.Fatalf("Columns() at width 40 = %d, want 2", got)
	}

	g.SetSize(5, 30)
	if got := g.Columns(); got != 1 {
		t.Fatalf("Columns() at width 5 = %d, want 1", got)
	}
}

func TestMovieGridNavigation(t *testing.T) {
	g := newTestGrid(numberedMovies(10))

	steps := []struct {
		key  tea.KeyMsg
		want int
	}{
		{runes("l"), 1},
		{runes("j"), 5},
		{runes("j"), 9},
		{runes("j"), 9}, // already on the last row
		{runes("k"), 5},
		{runes("h"), 4},
		{runes("G"), 9},
		{runes("g"), 0},
		{runes("h"), 0},
	}

	for i, step := range steps {
		g, _ = g.Update(step.key)
		if got := g.Cursor(); got != step.want {
			t.Fatalf("step %d (%s): Cursor() = %d, want %d", i, step.key, got, step.want)
		}
	}
}

func TestMovieGridDownIntoPartialRow(t *testing.T) {
	g := newTestGrid(numberedMovies(10))
	g.SetCursor(6)

	g, _ = g.Update(runes("j"))
	if got := g.Cursor(); got != 9 {
		t.Fatalf("Cursor() = %d, want 9", got)
	}
}

func TestMovieGridSelectedMovie(t *testing.T) {
	g := newTestGrid(nil)
	if _, ok := g.SelectedMovie(); ok {
		t.Fatal("SelectedMovie() on empty grid should report false")
	}

	g.SetMovies(numberedMovies(3))
	g.SetCursor(2)
	movie, ok := g.SelectedMovie()
	if !ok || movie.ID != 3 {
		t.Fatalf("SelectedMovie() = %v, %v, want ID 3", movie.ID, ok)
	}

	g.SetCursor(99)
	if got := g.Cursor(); got != 2 {
		t.Fatalf("SetCursor(99) left cursor at %d, want 2", got)
	}
}

func TestMovieGridFilter(t *testing.T) {
	g := newTestGrid([]domain.Movie{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "Inception"},
		{ID: 3, Title: "Interstellar"},
		{ID: 4, Title: "Up"},
	})

	g.ToggleFilter()
	if !g.IsFilterTyping() {
		t.Fatal("IsFilterTyping() = false after ToggleFilter")
	}

	for _, r := range "inter" {
		g, _ = g.Update(runes(string(r)))
	}

	if got := g.FilterQuery(); got != "inter" {
		t.Fatalf("FilterQuery() = %q, want %q", got, "inter")
	}
	if got := g.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	movie, _ := g.SelectedMovie()
	if movie.Title != "Interstellar" {
		t.Fatalf("SelectedMovie().Title = %q, want %q", movie.Title, "Interstellar")
	}

	// Enter accepts the filter and returns to navigation
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if g.IsFilterTyping() || !g.IsFiltering() {
		t.Fatal("enter should blur the input and keep the filter applied")
	}

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if g.IsFiltering() {
		t.Fatal("esc should clear the filter")
	}
	if got := g.Len(); got != 4 {
		t.Fatalf("Len() after clear = %d, want 4", got)
	}
}

func TestMovieGridFilterNoMatches(t *testing.T) {
	g := newTestGrid(numberedMovies(3))
	g.ToggleFilter()
	g, _ = g.Update(runes("zzz"))

	if !g.IsEmpty() {
		t.Fatalf("Len() = %d, want 0", g.Len())
	}
	if !strings.Contains(g.View(), "No matches") {
		t.Fatal("View() should report no matches")
	}
}

func TestMovieGridFilterToleratesTypos(t *testing.T) {
	g := newTestGrid([]domain.Movie{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "Interstellar"},
	})

	g.ToggleFilter()
	g, _ = g.Update(runes("intersteler"))

	if got := g.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	movie, _ := g.SelectedMovie()
	if movie.Title != "Interstellar" {
		t.Fatalf("SelectedMovie().Title = %q, want %q", movie.Title, "Interstellar")
	}
}

func TestMovieGridSetMoviesResetsState(t *testing.T) {
	g := newTestGrid(numberedMovies(8))
	g.SetCursor(5)
	g.ToggleFilter()

	g.SetMovies(numberedMovies(2))
	if g.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", g.Cursor())
	}
	if g.IsFiltering() {
		t.Fatal("SetMovies should clear the filter")
	}
}

func TestMovieGridViewShowsTitles(t *testing.T) {
	g := newTestGrid([]domain.Movie{
		{ID: 1, Title: "Dune", ReleaseDate: "2021-09-15", Rating: 7.8, VoteCount: 100},
	})
	g.SetTitle("Popular")

	view := g.View()
	for _, want := range []string{"Popular", "Dune", "2021", "7.8", "1/1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestMovieGridIgnoresKeysWhenUnfocused(t *testing.T) {
	g := newTestGrid(numberedMovies(4))
	g.SetFocused(false)

	g, _ = g.Update(runes("l"))
	if g.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", g.Cursor())
	}
}
