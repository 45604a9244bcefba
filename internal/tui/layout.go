package tui

// paneLayout holds calculated widths for the View
type paneLayout struct {
	gridWidth    int
	detailsWidth int // 0 if details are hidden or stacked
	stacked      bool
}

// calculateLayout splits the body between grid and details. Narrow
// terminals show the details pane in place of the grid.
func (m Model) calculateLayout(availableWidth int) paneLayout {
	if !m.Details.IsVisible() {
		return paneLayout{gridWidth: availableWidth}
	}
	if availableWidth < MinSplitWidth {
		return paneLayout{gridWidth: availableWidth, detailsWidth: availableWidth, stacked: true}
	}

	details := max(availableWidth*DetailsPercent/100, MinDetailsWidth)
	return paneLayout{
		gridWidth:    availableWidth - details,
		detailsWidth: details,
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	bodyHeight := m.bodyHeight()
	layout := m.calculateLayout(m.Width)

	m.Grid.SetSize(layout.gridWidth, bodyHeight)
	if layout.detailsWidth > 0 {
		m.Details.SetSize(layout.detailsWidth, bodyHeight)
	}
	m.Help.Width = m.Width
}

func (m Model) bodyHeight() int {
	return max(m.Height-ChromeHeight, 1)
}
