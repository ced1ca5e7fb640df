package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Tree is an ordered multi-way tree. It carries no domain knowledge;
// the module tree is a Tree[TreeNode] but tests and future views are
// free to instantiate it with anything renderable.
type Tree[T any] struct {
	Value    T          `json:"value"`
	Children []*Tree[T] `json:"children,omitempty"`
}

// New returns a leaf tree holding v.
func New[T any](v T) *Tree[T] {
	return &Tree[T]{Value: v}
}

// Add appends a child, preserving insertion order.
func (t *Tree[T]) Add(child *Tree[T]) {
	t.Children = append(t.Children, child)
}

// Walk visits the tree depth-first, parent before children.
func (t *Tree[T]) Walk(fn func(depth int, value T)) {
	t.walk(0, fn)
}

func (t *Tree[T]) walk(depth int, fn func(depth int, value T)) {
	fn(depth, t.Value)
	for _, child := range t.Children {
		child.walk(depth+1, fn)
	}
}

// TreeNode is one rendered module call. Name is "*" for the synthetic
// project root. ForEach keeps the distinction between nil (no for_each)
// and empty (for_each resolved to an empty key set).
type TreeNode struct {
	Name     string   `json:"name"`
	Count    *int     `json:"count,omitempty"`
	ForEach  []string `json:"for_each"`
	Source   string   `json:"source"`
	Resolved bool     `json:"resolved"`
}

// RenderError reports a node whose source path cannot be shown as text.
// It aborts the print phase; whatever was already written stays written.
type RenderError struct {
	Node string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("module %q: source path is not valid UTF-8", e.Node)
}

// Label renders the node as a single display line:
//
//	name[3] (/abs/path)     count present
//	name{a b} (/abs/path)   for_each present, keys in document order
//	name{} (/abs/path)      for_each present but empty
//	name (/abs/path)        neither
//
// At most one instance suffix appears; count wins if both are set.
func (n TreeNode) Label() (string, error) {
	if !utf8.ValidString(n.Source) {
		return "", &RenderError{Node: n.Name}
	}

	var b strings.Builder
	b.WriteString(n.Name)
	switch {
	case n.Count != nil:
		fmt.Fprintf(&b, "[%d]", *n.Count)
	case n.ForEach != nil:
		b.WriteByte('{')
		b.WriteString(strings.Join(n.ForEach, " "))
		b.WriteByte('}')
	}
	fmt.Fprintf(&b, " (%s)", n.Source)
	return b.String(), nil
}

// Instances describes the repetition of this call for detail views:
// "count = 3", "for_each (2 keys)", or "single".
func (n TreeNode) Instances() string {
	switch {
	case n.Count != nil:
		return fmt.Sprintf("count = %d", *n.Count)
	case n.ForEach != nil:
		return fmt.Sprintf("for_each (%d keys)", len(n.ForEach))
	}
	return "single"
}
