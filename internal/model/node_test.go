package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestLabelCountSuffix(t *testing.T) {
	node := TreeNode{Name: "vpc", Count: intPtr(3), Source: "/proj/modules/vpc"}
	label, err := node.Label()
	require.NoError(t, err)
	assert.Equal(t, "vpc[3] (/proj/modules/vpc)", label)
}

func TestLabelForEachSuffix(t *testing.T) {
	node := TreeNode{Name: "vpc", ForEach: []string{"east", "west"}, Source: "/proj/modules/vpc"}
	label, err := node.Label()
	require.NoError(t, err)
	assert.Equal(t, "vpc{east west} (/proj/modules/vpc)", label)
}

func TestLabelNoSuffix(t *testing.T) {
	node := TreeNode{Name: "vpc", Source: "/proj/modules/vpc"}
	label, err := node.Label()
	require.NoError(t, err)
	assert.Equal(t, "vpc (/proj/modules/vpc)", label)
}

func TestLabelEmptyForEach(t *testing.T) {
	// Present-but-empty renders {} and stays distinguishable from absent.
	node := TreeNode{Name: "vpc", ForEach: []string{}, Source: "/p"}
	label, err := node.Label()
	require.NoError(t, err)
	assert.Equal(t, "vpc{} (/p)", label)
}

func TestLabelCountWinsOverForEach(t *testing.T) {
	// The schema does not forbid both; the renderer must still emit
	// exactly one suffix form.
	node := TreeNode{Name: "vpc", Count: intPtr(2), ForEach: []string{"a"}, Source: "/p"}
	label, err := node.Label()
	require.NoError(t, err)
	assert.Equal(t, "vpc[2] (/p)", label)
}

func TestLabelInvalidSourceEncoding(t *testing.T) {
	node := TreeNode{Name: "vpc", Source: "/proj/\xff\xfe"}
	_, err := node.Label()

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "vpc", renderErr.Node)
}

func TestInstances(t *testing.T) {
	assert.Equal(t, "count = 3", TreeNode{Count: intPtr(3)}.Instances())
	assert.Equal(t, "for_each (2 keys)", TreeNode{ForEach: []string{"a", "b"}}.Instances())
	assert.Equal(t, "single", TreeNode{}.Instances())
}

func TestTreeWalkDepthFirst(t *testing.T) {
	root := New("root")
	a := New("a")
	a.Add(New("a1"))
	root.Add(a)
	root.Add(New("b"))

	var visited []string
	var depths []int
	root.Walk(func(depth int, value string) {
		visited = append(visited, value)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"root", "a", "a1", "b"}, visited)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
}
