package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hlbarber/treaform/internal/model"
	"github.com/hlbarber/treaform/internal/tree"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")). // Pinkish
				Bold(true)

	unselectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	detailStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)
)

func (m AppModel) View() string {
	if len(m.Rows) == 0 {
		return "\n  No module calls in this project.\n"
	}

	// Layout dimensions
	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	// Subtracting 6 for vertical margin (title, footer, borders)
	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}

	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	title := titleStyle.Render(fmt.Sprintf(" treaform — %s ", m.ProjectDir))

	if m.ShowHelp {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.renderHelp())
	}

	left := m.renderList(leftWidth, interiorHeight)
	right := m.DetailsViewport.View()

	leftBox := detailStyle.Width(leftWidth).Height(interiorHeight).Render(left)
	rightBox := detailStyle.Width(rightWidth).Height(interiorHeight).Render(right)

	footer := dimStyle.Render("  ↑/↓ navigate · g/G top/bottom · ? help · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox),
		footer,
	)
}

// renderList draws the flattened module tree, keeping the selection in
// view with a simple scroll window.
func (m AppModel) renderList(width, height int) string {
	start := 0
	if m.SelectedIdx >= height {
		start = m.SelectedIdx - height + 1
	}
	end := start + height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		row := m.Rows[i]
		line := strings.Repeat("  ", row.Depth) + row.Node.Icon() + " " + row.Node.Name

		switch {
		case row.Node.Count != nil:
			line += fmt.Sprintf("[%d]", *row.Node.Count)
		case row.Node.ForEach != nil:
			line += "{" + strings.Join(row.Node.ForEach, " ") + "}"
		}

		if len(line) > width-2 {
			line = line[:width-2]
		}

		if i == m.SelectedIdx {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(unselectedItemStyle.Render("  " + line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderDetails builds the right-hand pane for one node.
func (m AppModel) renderDetails(n model.TreeNode) string {
	var b strings.Builder

	b.WriteString(labelStyle.Render(n.Name))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Instances: %s\n", n.Instances()))
	if len(n.ForEach) > 0 {
		b.WriteString(fmt.Sprintf("Keys:      %s\n", strings.Join(n.ForEach, ", ")))
	}
	b.WriteString(fmt.Sprintf("Source:    %s\n", n.Source))
	b.WriteString(fmt.Sprintf("Relative:  %s\n", tree.RelDisplayPath(m.ProjectDir, n.Source)))
	if !n.Resolved {
		b.WriteString(warnStyle.Render(model.IconUnresolved + " source directory not found on disk"))
		b.WriteByte('\n')
	}

	files, err := model.ListConfigFiles(n.Source)
	if err == nil && len(files) > 0 {
		b.WriteString("\nConfiguration files:\n")
		for _, f := range files {
			b.WriteString(fmt.Sprintf("  %s (%d bytes)\n", f.Name, f.Size))
		}
	}

	return b.String()
}

func (m AppModel) renderHelp() string {
	help := `
  treaform interactive mode

  ↑ / k        move up
  ↓ / j        move down
  g / home     jump to top
  G / end      jump to bottom
  pgup/pgdn    scroll details
  ?            toggle this help
  q / ctrl+c   quit

  The left pane lists every module call in the plan, indented by
  nesting depth. [n] marks counted calls, {a b} marks for_each
  calls. The right pane shows the resolved source directory and
  its configuration files.
`
	return help
}
