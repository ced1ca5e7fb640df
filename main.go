package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hlbarber/treaform/internal/model"
	"github.com/hlbarber/treaform/internal/terraform"
	"github.com/hlbarber/treaform/internal/tree"
	"github.com/hlbarber/treaform/internal/tui"
	"github.com/hlbarber/treaform/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "hlbarber",
		Repository: "treaform",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/hlbarber/treaform/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: treaform [options]\n\n")
		fmt.Fprintf(os.Stderr, "treaform prints the module structure of a Terraform project.\n")
		fmt.Fprintf(os.Stderr, "It runs a plan, reads the plan's module-call graph, and renders it\n")
		fmt.Fprintf(os.Stderr, "as a tree annotated with count/for_each instances and source paths.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  treaform                      # Print the module tree of .\n")
		fmt.Fprintf(os.Stderr, "  treaform --path infra/prod    # Another project directory\n")
		fmt.Fprintf(os.Stderr, "  treaform --var env=prod -j    # Pass a variable, output JSON\n")
		fmt.Fprintf(os.Stderr, "  treaform -i                   # Browse the tree interactively\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output the module tree as JSON")
	interactiveFlag := pflag.BoolP("interactive", "i", false, "Browse the module tree in a TUI")
	webFlag := pflag.BoolP("web", "w", false, "Serve the module tree on http://localhost:8080")
	pathFlag := pflag.StringP("path", "p", ".", "The path to the Terraform project")
	varFiles := pflag.StringArray("var-file", nil, "Load variable values from the given file (repeatable)")
	vars := pflag.StringArray("var", nil, "Set a value for an input variable, as 'foo=bar' (repeatable)")
	parallelism := pflag.Uint("parallelism", 10, "Limit the number of concurrent plan operations")
	binaryFlag := pflag.String("binary", "", "Force the planning tool: 'terraform' or 'tofu'")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Enable debug logging")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("treaform version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *verboseFlag {
		log.SetLevel(log.DebugLevel)
	}

	projectDir, err := resolveProjectDir(*pathFlag)
	if err != nil {
		fatal(err)
	}

	root, err := buildTree(projectDir, terraform.PlanOptions{
		VarFiles:    *varFiles,
		Vars:        *vars,
		Parallelism: *parallelism,
	}, *binaryFlag)
	if err != nil {
		fatal(err)
	}

	switch {
	case *jsonFlag:
		runJSONMode(root)
	case *interactiveFlag:
		runTuiMode(root, projectDir)
	case *webFlag:
		web.StartServer(root, projectDir)
	default:
		if err := tree.Print(os.Stdout, root); err != nil {
			fatal(err)
		}
	}
}

// resolveProjectDir turns the --path argument into a canonical absolute
// directory. Unlike per-call source resolution this has no fallback:
// if the project itself cannot be resolved there is nothing to plan.
func resolveProjectDir(path string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not detect current directory: %w", err)
	}
	dir := path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}
	return resolved, nil
}

// buildTree runs the plan/show pipeline and assembles the display tree
// under the synthetic root.
func buildTree(projectDir string, opts terraform.PlanOptions, binaryOverride string) (*model.Tree[model.TreeNode], error) {
	bin := terraform.DetectBinary(binaryOverride)

	planFile, err := terraform.RunPlan(bin, projectDir, opts)
	if err != nil {
		return nil, err
	}

	data, err := terraform.RunShow(bin, planFile)
	if err != nil {
		return nil, err
	}

	doc, err := model.DecodeShow(data)
	if err != nil {
		return nil, err
	}

	root := tree.NewRoot(projectDir)
	root.Children = tree.Build(doc.Configuration.RootModule, projectDir)
	return root, nil
}

func runJSONMode(root *model.Tree[model.TreeNode]) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		fatal(err)
	}
}

func runTuiMode(root *model.Tree[model.TreeNode], projectDir string) {
	m := tui.InitialModel(root, projectDir)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
