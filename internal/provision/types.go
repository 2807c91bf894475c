// pattern: Functional Core

package provision

// Request is the immutable input to a provisioning run.
type Request struct {
	Origin      string // Absolute path the request was made from
	ProjectRoot string // Absolute path of the primary repository root
	Branch      string // Requested branch and worktree name
	BaseBranch  string // Branch the new worktree is based on
}

// SetupOutcome records one attempted setup action.
type SetupOutcome struct {
	Action    string // e.g. "setup script", "npm install"
	Attempted bool
	Succeeded bool
	Detail    string // Failure detail; empty on success
}

// BaselineKind tags the result of the baseline test run.
type BaselineKind int

const (
	NoTestsConfigured BaselineKind = iota
	BaselinePassed
	BaselineFailed
)

func (k BaselineKind) String() string {
	switch k {
	case BaselinePassed:
		return "passed"
	case BaselineFailed:
		return "failed"
	default:
		return "no tests configured"
	}
}

// BaselineResult is the classified outcome of the baseline test run.
type BaselineResult struct {
	Kind    BaselineKind
	Command string // Test command that ran, e.g. "go test ./..."
	Count   int    // Passed count for BaselinePassed, failed count for BaselineFailed
	Summary string // Tail of the test output for BaselineFailed
}

// Status is the terminal state of a provisioning run.
type Status int

const (
	// StatusReady means the worktree exists and its baseline is clean
	// (tests passed or none are configured).
	StatusReady Status = iota

	// StatusReadyNeedsDecision means the worktree exists but the
	// baseline failed; the caller must accept or reject it explicitly.
	StatusReadyNeedsDecision

	// StatusFailed means worktree creation itself failed; nothing ran
	// after that.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusReadyNeedsDecision:
		return "ready (needs decision)"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the single structured outcome of a provisioning run.
// Constructed once by the Orchestrator and never mutated afterwards.
type Result struct {
	WorktreePath string
	Setup        []SetupOutcome
	Baseline     *BaselineResult // nil when creation failed
	Status       Status
	Err          error // Set only for StatusFailed
}
