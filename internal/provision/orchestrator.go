// pattern: Imperative Shell

package provision

import (
	"context"

	"groundwork/internal/logging"
	"groundwork/internal/workspace"
)

// Step identifies the orchestrator's current state, for progress display.
type Step int

const (
	StepResolving Step = iota
	StepCreating
	StepSettingUp
	StepVerifying
)

func (s Step) String() string {
	switch s {
	case StepResolving:
		return "resolving worktree root"
	case StepCreating:
		return "creating worktree"
	case StepSettingUp:
		return "installing dependencies"
	case StepVerifying:
		return "running baseline tests"
	default:
		return "working"
	}
}

// StepFunc receives state transitions as they happen. Optional.
type StepFunc func(Step)

// CreateStep, SetupStep and VerifyStep are the narrow views of the
// pipeline steps the orchestrator sequences.
type CreateStep interface {
	Create(ctx context.Context, req Request, rootDir string) (string, error)
}

type SetupStep interface {
	Run(ctx context.Context, req Request, worktreePath string) []SetupOutcome
}

type VerifyStep interface {
	Verify(ctx context.Context, worktreePath string) BaselineResult
}

// SkipSetup disables environment setup: zero actions, zero outcomes.
type SkipSetup struct{}

func (SkipSetup) Run(context.Context, Request, string) []SetupOutcome { return nil }

// SkipVerify disables baseline verification; the result reads as if no
// tests were configured.
type SkipVerify struct{}

func (SkipVerify) Verify(context.Context, string) BaselineResult {
	return BaselineResult{Kind: NoTestsConfigured}
}

// Orchestrator sequences resolve -> create -> setup -> verify and
// assembles the single Result. Creation failure short-circuits the
// pipeline; setup failures and a failing baseline do not.
type Orchestrator struct {
	creator  CreateStep
	setup    SetupStep
	verifier VerifyStep
	logger   *logging.ScopedLogger

	// OnStep, when set, is called on every state transition.
	OnStep StepFunc
}

// NewOrchestrator wires the pipeline steps together.
func NewOrchestrator(c CreateStep, s SetupStep, v VerifyStep, logger *logging.ScopedLogger) *Orchestrator {
	return &Orchestrator{creator: c, setup: s, verifier: v, logger: logger}
}

// Provision runs the pipeline once. There are no retries anywhere; a
// retry is a fresh invocation by the caller.
func (o *Orchestrator) Provision(ctx context.Context, req Request) Result {
	o.step(StepResolving)
	loc := workspace.Resolve(req.Origin, req.ProjectRoot)
	o.logger.Info("resolved worktree root", "root", loc.RootDir, "origin", req.Origin)

	o.step(StepCreating)
	wtPath, err := o.creator.Create(ctx, req, loc.RootDir)
	if err != nil {
		// Fatal: no setup or tests run, no baseline in the result.
		o.logger.Error("worktree creation failed", "error", err, "branch", req.Branch)
		return Result{Status: StatusFailed, Err: err}
	}

	o.step(StepSettingUp)
	outcomes := o.setup.Run(ctx, req, wtPath)
	for _, out := range outcomes {
		if !out.Succeeded {
			o.logger.Warn("setup action failed", "action", out.Action, "detail", out.Detail)
		}
	}

	o.step(StepVerifying)
	baseline := o.verifier.Verify(ctx, wtPath)
	o.logger.Info("baseline verified", "kind", baseline.Kind.String(), "count", baseline.Count)

	status := StatusReady
	if baseline.Kind == BaselineFailed {
		status = StatusReadyNeedsDecision
	}

	return Result{
		WorktreePath: wtPath,
		Setup:        outcomes,
		Baseline:     &baseline,
		Status:       status,
	}
}

func (o *Orchestrator) step(s Step) {
	if o.OnStep != nil {
		o.OnStep(s)
	}
}
