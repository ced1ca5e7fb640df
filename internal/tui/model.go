package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hlbarber/treaform/internal/model"
)

// Row is one flattened line of the module tree: the node plus its depth,
// so the list view can indent without re-walking the tree.
type Row struct {
	Node  model.TreeNode
	Depth int
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	ProjectDir string
	Rows       []Row

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	ShowHelp    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel flattens the already-built tree into rows. The tree is
// constructed before the TUI starts, so there is no loading state.
func InitialModel(root *model.Tree[model.TreeNode], projectDir string) AppModel {
	var rows []Row
	root.Walk(func(depth int, value model.TreeNode) {
		rows = append(rows, Row{Node: value, Depth: depth})
	})

	m := AppModel{
		ProjectDir: projectDir,
		Rows:       rows,
	}
	m.refreshDetails()
	return m
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}
