package terraform

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/charmbracelet/log"
)

// PlanOptions carries the flags forwarded verbatim to `plan`.
type PlanOptions struct {
	VarFiles    []string
	Vars        []string
	Parallelism uint
}

// PlanFilePath returns the intermediate plan artifact path for a
// project: a hash of the project directory under the system temp dir.
// Re-running against the same project reuses (overwrites) one file
// instead of littering the temp dir.
func PlanFilePath(projectDir string) string {
	h := fnv.New64a()
	h.Write([]byte(projectDir))
	return filepath.Join(os.TempDir(), fmt.Sprintf("%d.plan", h.Sum64()))
}

// RunPlan executes `<binary> -chdir=<dir> plan -out <planfile>` and
// returns the plan file path. On a non-zero exit the tool's own stderr
// (or stdout, when stderr is empty) becomes the error message, so the
// user sees terraform's diagnostics rather than an exit code.
func RunPlan(bin Binary, projectDir string, opts PlanOptions) (string, error) {
	planFile := PlanFilePath(projectDir)
	args := planArgs(projectDir, opts, planFile)

	log.Debug("running plan", "binary", bin.Command(), "args", args)
	cmd := exec.Command(bin.Command(), args...)
	if err := runCapture(cmd, nil); err != nil {
		return "", fmt.Errorf("%s plan: %w", bin.Name(), err)
	}
	return planFile, nil
}

// RunShow executes `<binary> show -json <planfile>` and returns the raw
// JSON payload.
func RunShow(bin Binary, planFile string) ([]byte, error) {
	log.Debug("running show", "binary", bin.Command(), "plan", planFile)
	cmd := exec.Command(bin.Command(), "show", "-json", planFile)

	var stdout bytes.Buffer
	if err := runCapture(cmd, &stdout); err != nil {
		return nil, fmt.Errorf("%s show: %w", bin.Name(), err)
	}
	return stdout.Bytes(), nil
}

func planArgs(projectDir string, opts PlanOptions, planFile string) []string {
	args := []string{"-chdir=" + projectDir, "plan"}
	for _, f := range opts.VarFiles {
		args = append(args, "-var-file", f)
	}
	for _, v := range opts.Vars {
		args = append(args, "-var", v)
	}
	if opts.Parallelism > 0 {
		args = append(args, fmt.Sprintf("-parallelism=%d", opts.Parallelism))
	}
	return append(args, "-out", planFile)
}

// runCapture runs cmd, collecting stdout into out (or discarding it
// when out is nil) and turning a failed exit into an error carrying the
// tool's diagnostics.
func runCapture(cmd *exec.Cmd, out *bytes.Buffer) error {
	var stdout, stderr bytes.Buffer
	if out == nil {
		out = &stdout
	}
	cmd.Stdout = out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(out.String())
		}
		if msg == "" {
			return err
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}
