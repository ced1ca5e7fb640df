package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"

	log "github.com/charmbracelet/log"

	"github.com/hlbarber/treaform/internal/model"
	"github.com/hlbarber/treaform/internal/tree"
)

//go:embed static/*
var staticFS embed.FS

// treeResponse is the /api/tree payload.
type treeResponse struct {
	ProjectDir string                      `json:"project_dir"`
	Rendered   string                      `json:"rendered"`
	Root       *model.Tree[model.TreeNode] `json:"root"`
}

// StartServer serves the already-built module tree on port 8080.
func StartServer(root *model.Tree[model.TreeNode], projectDir string) {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("/api/tree", handleTree(root, projectDir))
	mux.HandleFunc("/api/files", handleFiles)

	port := "8080"
	fmt.Printf("Starting treaform web server at http://localhost:%s\n", port)
	fmt.Printf("Go to http://localhost:%s in your browser.\n", port)

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}

func handleTree(root *model.Tree[model.TreeNode], projectDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rendered, err := tree.Render(root)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(treeResponse{
			ProjectDir: projectDir,
			Rendered:   rendered,
			Root:       root,
		})
	}
}

// handleFiles lists the configuration files of one module directory,
// for the detail panel.
func handleFiles(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		http.Error(w, "missing 'dir' query parameter", 400)
		return
	}

	files, err := model.ListConfigFiles(dir)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}
