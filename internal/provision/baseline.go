// pattern: Imperative Shell

package provision

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"groundwork/internal/execx"
)

// testCommand pairs an ecosystem marker file with its test invocation
// and the patterns that extract pass/fail counts from its output.
type testCommand struct {
	Marker   string
	Argv     []string
	passedRe *regexp.Regexp
	failedRe *regexp.Regexp
}

// testCommands is the ordered detection table. The first matching marker
// wins: one test run is authoritative for the baseline.
var testCommands = []testCommand{
	{
		Marker:   "package.json",
		Argv:     []string{"npm", "test"},
		passedRe: regexp.MustCompile(`(\d+) passing`),
		failedRe: regexp.MustCompile(`(\d+) failing`),
	},
	{
		Marker:   "Cargo.toml",
		Argv:     []string{"cargo", "test"},
		passedRe: regexp.MustCompile(`(\d+) passed`),
		failedRe: regexp.MustCompile(`(\d+) failed`),
	},
	{
		Marker:   "go.mod",
		Argv:     []string{"go", "test", "./..."},
		passedRe: regexp.MustCompile(`(?m)^ok\s`),
		failedRe: regexp.MustCompile(`(?m)^--- FAIL:`),
	},
	{
		Marker:   "pyproject.toml",
		Argv:     []string{"pytest"},
		passedRe: regexp.MustCompile(`(\d+) passed`),
		failedRe: regexp.MustCompile(`(\d+) failed`),
	},
	{
		Marker:   "requirements.txt",
		Argv:     []string{"pytest"},
		passedRe: regexp.MustCompile(`(\d+) passed`),
		failedRe: regexp.MustCompile(`(\d+) failed`),
	},
}

// summaryLines caps the output tail kept as a failure summary.
const summaryLines = 12

// Verifier runs the baseline test suite of a freshly provisioned worktree.
type Verifier struct {
	run     execx.RunFunc
	timeout time.Duration
}

// NewVerifier creates the baseline verification step.
func NewVerifier(run execx.RunFunc, timeout time.Duration) *Verifier {
	return &Verifier{run: run, timeout: timeout}
}

// Verify detects the project's test command by the marker convention and
// runs it exactly once. No matching marker yields NoTestsConfigured. The
// run is never retried: a fresh worktree with freshly installed
// dependencies is expected to be deterministic.
func (v *Verifier) Verify(ctx context.Context, worktreePath string) BaselineResult {
	tc, ok := detectTestCommand(worktreePath)
	if !ok {
		return BaselineResult{Kind: NoTestsConfigured}
	}

	command := strings.Join(tc.Argv, " ")
	res := v.run(ctx, execx.Spec{
		Name:    command,
		Dir:     worktreePath,
		Argv:    tc.Argv,
		Timeout: v.timeout,
	})

	output := ansi.Strip(res.Output)

	if res.Succeeded() {
		return BaselineResult{
			Kind:    BaselinePassed,
			Command: command,
			Count:   countMatches(tc.passedRe, output),
		}
	}

	summary := outputTail(output, summaryLines)
	if res.TimedOut {
		summary = "test run timed out\n" + summary
	}
	return BaselineResult{
		Kind:    BaselineFailed,
		Command: command,
		Count:   countMatches(tc.failedRe, output),
		Summary: summary,
	}
}

// detectTestCommand finds the first test command whose marker exists.
// A package.json only counts when it declares a test script.
func detectTestCommand(worktreePath string) (testCommand, bool) {
	for _, tc := range testCommands {
		if !fileExists(filepath.Join(worktreePath, tc.Marker)) {
			continue
		}
		if tc.Marker == "package.json" && !hasNpmTestScript(filepath.Join(worktreePath, tc.Marker)) {
			continue
		}
		return tc, true
	}
	return testCommand{}, false
}

// hasNpmTestScript reports whether package.json declares scripts.test.
func hasNpmTestScript(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return false
	}
	return pkg.Scripts["test"] != ""
}

// countMatches extracts a count from test output. Patterns with a
// capture group yield the captured number; patterns without one are
// counted by occurrence. Unknown output yields zero.
func countMatches(re *regexp.Regexp, output string) int {
	if re.NumSubexp() > 0 {
		total := 0
		for _, m := range re.FindAllStringSubmatch(output, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			total += n
		}
		return total
	}
	return len(re.FindAllString(output, -1))
}

// outputTail returns the last n non-empty lines of output.
func outputTail(output string, n int) string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
