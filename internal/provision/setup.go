// pattern: Imperative Shell

package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"groundwork/internal/execx"
)

// setupAction pairs an ecosystem marker file with the command that
// installs its dependencies. Evaluated in table order; every matching
// action runs, and a failure never blocks the rest.
type setupAction struct {
	Name   string
	Marker string
	Argv   []string
}

// ecosystemSetup is the ordered marker table for dependency installation.
var ecosystemSetup = []setupAction{
	{Name: "npm install", Marker: "package.json", Argv: []string{"npm", "install"}},
	{Name: "cargo fetch", Marker: "Cargo.toml", Argv: []string{"cargo", "fetch"}},
	{Name: "go mod download", Marker: "go.mod", Argv: []string{"go", "mod", "download"}},
	{Name: "pip install (pyproject)", Marker: "pyproject.toml", Argv: []string{"pip", "install", "-e", "."}},
	{Name: "pip install (requirements)", Marker: "requirements.txt", Argv: []string{"pip", "install", "-r", "requirements.txt"}},
}

// Setup runs the optional environment setup actions in a new worktree.
type Setup struct {
	run        execx.RunFunc
	scriptPath string // Project setup script, relative to the worktree root
	timeout    time.Duration
}

// NewSetup creates the setup step. scriptPath may be empty to disable
// the custom script.
func NewSetup(run execx.RunFunc, scriptPath string, timeout time.Duration) *Setup {
	return &Setup{run: run, scriptPath: scriptPath, timeout: timeout}
}

// Run attempts every setup action whose marker file exists at the
// worktree root. The project setup script runs first and receives the
// full provisioning context in its environment. Actions are independent;
// failures are recorded, never escalated. No markers means no outcomes.
func (s *Setup) Run(ctx context.Context, req Request, worktreePath string) []SetupOutcome {
	var outcomes []SetupOutcome

	if s.scriptPath != "" {
		script := filepath.Join(worktreePath, s.scriptPath)
		if fileExists(script) {
			res := s.run(ctx, execx.Spec{
				Name: "setup script",
				Dir:  worktreePath,
				Argv: []string{script},
				Env: []string{
					"GROUNDWORK_WORKTREE=" + worktreePath,
					"GROUNDWORK_BRANCH=" + req.Branch,
					"GROUNDWORK_BASE_BRANCH=" + req.BaseBranch,
					"GROUNDWORK_PROJECT_ROOT=" + req.ProjectRoot,
					"GROUNDWORK_ORIGIN=" + req.Origin,
				},
				Timeout: s.timeout,
			})
			outcomes = append(outcomes, outcomeFrom("setup script", res))
		}
	}

	for _, action := range ecosystemSetup {
		if !fileExists(filepath.Join(worktreePath, action.Marker)) {
			continue
		}
		res := s.run(ctx, execx.Spec{
			Name:    action.Name,
			Dir:     worktreePath,
			Argv:    action.Argv,
			Timeout: s.timeout,
		})
		outcomes = append(outcomes, outcomeFrom(action.Name, res))
	}

	return outcomes
}

// outcomeFrom classifies one subprocess result as a SetupOutcome.
func outcomeFrom(action string, res execx.Result) SetupOutcome {
	o := SetupOutcome{Action: action, Attempted: true, Succeeded: res.Succeeded()}
	if !o.Succeeded {
		o.Detail = failureDetail(res)
	}
	return o
}

// failureDetail builds a one-line summary for a failed subprocess.
func failureDetail(res execx.Result) string {
	if res.TimedOut {
		return "timed out"
	}
	detail := fmt.Sprintf("exit %d", res.ExitCode)
	if last := lastLine(res.Output); last != "" {
		detail += ": " + last
	}
	return detail
}

// lastLine returns the last non-empty line of output.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
