package tree

import (
	"io"

	"github.com/xlab/treeprint"

	"github.com/hlbarber/treaform/internal/model"
)

// Render produces the full branch-glyph diagram for a module tree,
// depth-first, children in their given order. The first node that
// fails to render aborts the whole operation.
func Render(root *model.Tree[model.TreeNode]) (string, error) {
	label, err := root.Value.Label()
	if err != nil {
		return "", err
	}

	printRoot := treeprint.NewWithRoot(label)
	if err := populateTreeNode(printRoot, root); err != nil {
		return "", err
	}
	return printRoot.String(), nil
}

func populateTreeNode(branch treeprint.Tree, node *model.Tree[model.TreeNode]) error {
	for _, child := range node.Children {
		label, err := child.Value.Label()
		if err != nil {
			return err
		}
		if err := populateTreeNode(branch.AddBranch(label), child); err != nil {
			return err
		}
	}
	return nil
}

// Print writes the rendered tree to w.
func Print(w io.Writer, root *model.Tree[model.TreeNode]) error {
	out, err := Render(root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
