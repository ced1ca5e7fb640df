// Package tree turns the decoded module-call schema into the annotated
// display tree and prints it.
package tree

import (
	"path/filepath"

	log "github.com/charmbracelet/log"

	"github.com/hlbarber/treaform/internal/model"
)

// Resolve joins a module call's declared source onto the calling
// module's directory and canonicalizes the result (symlinks resolved,
// path must exist). Canonicalization failure is not an error: the
// upstream planner is the source of truth for path correctness, and a
// missing directory here is local filesystem drift that must never
// block visualizing the topology. In that case the literal joined path
// comes back with resolved=false.
func Resolve(callerDir, source string) (string, bool) {
	var joined string
	if filepath.IsAbs(source) {
		joined = filepath.Clean(source)
	} else {
		joined = filepath.Join(callerDir, source)
	}

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		log.Debug("could not canonicalize module source", "path", joined, "err", err)
		return joined, false
	}
	return resolved, true
}

// Build produces one child tree per module call, in document order,
// recursing into each call's nested module with the resolved directory
// as the new caller directory. A module with no calls yields nil.
// Termination follows from the finiteness of the document; there is no
// depth limit and no cycle detection.
func Build(mod model.Module, callerDir string) []*model.Tree[model.TreeNode] {
	if len(mod.Calls) == 0 {
		return nil
	}

	trees := make([]*model.Tree[model.TreeNode], 0, len(mod.Calls))
	for _, call := range mod.Calls {
		source, ok := Resolve(callerDir, call.Source)
		node := model.New(model.TreeNode{
			Name:     call.Name,
			Count:    call.Count,
			ForEach:  call.ForEach,
			Source:   source,
			Resolved: ok,
		})
		node.Children = Build(call.Module, source)
		trees = append(trees, node)
	}
	return trees
}

// NewRoot builds the synthetic "*" root the module trees hang off.
// projectDir is expected to already be canonical (the driver resolves
// it up front and fails hard if it cannot).
func NewRoot(projectDir string) *model.Tree[model.TreeNode] {
	return model.New(model.TreeNode{
		Name:     "*",
		Source:   projectDir,
		Resolved: true,
	})
}

// RelDisplayPath gives the path relative to the project root when that
// is expressible, for the detail views. The printed tree always shows
// the absolute (or fallback) path.
func RelDisplayPath(projectDir, path string) string {
	rel, err := filepath.Rel(projectDir, path)
	if err != nil {
		return path
	}
	return rel
}
