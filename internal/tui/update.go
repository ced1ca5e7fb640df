package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 4 // minus footer/header
		m.refreshDetails()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.ShowHelp {
				m.ShowHelp = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetails()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Rows)-1 {
				m.SelectedIdx++
				m.refreshDetails()
			}
		case "g", "home":
			m.SelectedIdx = 0
			m.refreshDetails()
		case "G", "end":
			if len(m.Rows) > 0 {
				m.SelectedIdx = len(m.Rows) - 1
				m.refreshDetails()
			}
		case "?":
			m.ShowHelp = !m.ShowHelp
		default:
			// Let the viewport handle scrolling keys (pgup/pgdn etc.)
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
			return m, cmd
		}
	}

	return m, cmd
}

// refreshDetails rebuilds the detail pane for the current selection.
func (m *AppModel) refreshDetails() {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.Rows) {
		return
	}
	m.DetailsViewport.SetContent(m.renderDetails(m.Rows[m.SelectedIdx].Node))
	m.DetailsViewport.GotoTop()
}
