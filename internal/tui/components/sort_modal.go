package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const sortModalWidth = 22

// SortModal is a small popup for choosing the movie category
type SortModal struct {
	visible bool
	options []domain.SortOrder
	cursor  int
	active  domain.SortOrder
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: domain.AllSortOrders()}
}

// Show displays the modal with the cursor on the active category
func (m *SortModal) Show(active domain.SortOrder) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// A non-nil selection means the user confirmed a category.
func (m *SortModal) HandleKey(msg tea.KeyMsg) (handled bool, selection *domain.SortOrder) {
	if !m.visible {
		return false, nil
	}

	switch {
	case key.Matches(msg, SortModalKeys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case key.Matches(msg, SortModalKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case key.Matches(msg, SortModalKeys.Enter):
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case key.Matches(msg, SortModalKeys.Escape):
		m.visible = false
		return true, nil
	}

	// Digits pick a category directly
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.options) {
		chosen := m.options[n-1]
		m.visible = false
		return true, &chosen
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+strconv.Itoa(i+1)+" "+opt.String(), sortModalWidth)

		var line string
		switch {
		case i == m.cursor:
			line = lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text)
		case opt == m.active:
			line = lipgloss.NewStyle().
				Foreground(styles.Accent).
				Render(text)
		default:
			line = lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(text)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Show movies") + "\n" + strings.Join(lines, "\n"))
}
