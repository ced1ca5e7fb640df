package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconRoot       = "◆" // project root node
	IconCount      = "№" // counted instances
	IconForEach    = "≡" // keyed instances
	IconSingle     = " " // single instance (no icon to reduce noise)
	IconUnresolved = "✗" // source path did not resolve on disk
)

// Icon returns the instance glyph for a node.
func (n TreeNode) Icon() string {
	switch {
	case n.Name == "*":
		return IconRoot
	case n.Count != nil:
		return IconCount
	case n.ForEach != nil:
		return IconForEach
	}
	return IconSingle
}
