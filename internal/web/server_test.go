package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlbarber/treaform/internal/model"
)

func TestHandleTree(t *testing.T) {
	root := model.New(model.TreeNode{Name: "*", Source: "/proj", Resolved: true})
	root.Add(model.New(model.TreeNode{Name: "vpc", Source: "/proj/modules/vpc"}))

	req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	rec := httptest.NewRecorder()
	handleTree(root, "/proj")(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp treeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/proj", resp.ProjectDir)
	assert.Contains(t, resp.Rendered, "* (/proj)")
	assert.Contains(t, resp.Rendered, "vpc (/proj/modules/vpc)")
	require.NotNil(t, resp.Root)
	require.Len(t, resp.Root.Children, 1)
	assert.Equal(t, "vpc", resp.Root.Children[0].Value.Name)
}

func TestHandleTreeRenderFailure(t *testing.T) {
	root := model.New(model.TreeNode{Name: "*", Source: "/proj/\xff"})

	rec := httptest.NewRecorder()
	handleTree(root, "/proj")(rec, httptest.NewRequest(http.MethodGet, "/api/tree", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), []byte("x"), 0o644))

	rec := httptest.NewRecorder()
	handleFiles(rec, httptest.NewRequest(http.MethodGet, "/api/files?dir="+dir, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var files []model.ConfigFile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "main.tf", files[0].Name)
}

func TestHandleFilesMissingParam(t *testing.T) {
	rec := httptest.NewRecorder()
	handleFiles(rec, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
