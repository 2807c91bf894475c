package provision

import (
	"context"
	"errors"
	"testing"

	"groundwork/internal/logging"
)

type fakeCreator struct {
	path  string
	err   error
	calls int
}

func (f *fakeCreator) Create(_ context.Context, _ Request, _ string) (string, error) {
	f.calls++
	return f.path, f.err
}

type fakeSetup struct {
	outcomes []SetupOutcome
	calls    int
	gotPath  string
}

func (f *fakeSetup) Run(_ context.Context, _ Request, worktreePath string) []SetupOutcome {
	f.calls++
	f.gotPath = worktreePath
	return f.outcomes
}

type fakeVerifier struct {
	result BaselineResult
	calls  int
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) BaselineResult {
	f.calls++
	return f.result
}

func TestProvisionReady(t *testing.T) {
	c := &fakeCreator{path: "/d/radial.worktrees/feature/auth"}
	s := &fakeSetup{outcomes: []SetupOutcome{{Action: "go mod download", Attempted: true, Succeeded: true}}}
	v := &fakeVerifier{result: BaselineResult{Kind: BaselinePassed, Count: 12}}

	o := NewOrchestrator(c, s, v, logging.NopLogger())
	res := o.Provision(context.Background(), testRequest())

	if res.Status != StatusReady {
		t.Errorf("Status = %v, want StatusReady", res.Status)
	}
	if res.WorktreePath != c.path {
		t.Errorf("WorktreePath = %q", res.WorktreePath)
	}
	if res.Baseline == nil || res.Baseline.Kind != BaselinePassed {
		t.Errorf("Baseline = %+v", res.Baseline)
	}
	if len(res.Setup) != 1 {
		t.Errorf("Setup = %+v", res.Setup)
	}
	if s.gotPath != c.path {
		t.Errorf("setup ran against %q, want %q", s.gotPath, c.path)
	}
}

func TestProvisionReadyWithNoTests(t *testing.T) {
	c := &fakeCreator{path: "/p"}
	v := &fakeVerifier{result: BaselineResult{Kind: NoTestsConfigured}}

	o := NewOrchestrator(c, &fakeSetup{}, v, logging.NopLogger())
	res := o.Provision(context.Background(), testRequest())

	if res.Status != StatusReady {
		t.Errorf("Status = %v, want StatusReady for NoTestsConfigured", res.Status)
	}
}

func TestProvisionFatalHaltsPipeline(t *testing.T) {
	c := &fakeCreator{err: &PathCollisionError{Path: "/p"}}
	s := &fakeSetup{}
	v := &fakeVerifier{}

	o := NewOrchestrator(c, s, v, logging.NopLogger())
	res := o.Provision(context.Background(), testRequest())

	if res.Status != StatusFailed {
		t.Errorf("Status = %v, want StatusFailed", res.Status)
	}
	var collision *PathCollisionError
	if !errors.As(res.Err, &collision) {
		t.Errorf("Err = %v, want PathCollisionError", res.Err)
	}
	if s.calls != 0 {
		t.Error("setup must not run after a fatal creation failure")
	}
	if v.calls != 0 {
		t.Error("verify must not run after a fatal creation failure")
	}
	if len(res.Setup) != 0 {
		t.Errorf("Setup should be empty, got %+v", res.Setup)
	}
	if res.Baseline != nil {
		t.Errorf("Baseline should be absent, got %+v", res.Baseline)
	}
}

func TestProvisionSetupFailureContinues(t *testing.T) {
	c := &fakeCreator{path: "/p"}
	s := &fakeSetup{outcomes: []SetupOutcome{
		{Action: "npm install", Attempted: true, Succeeded: false, Detail: "exit 1"},
		{Action: "go mod download", Attempted: true, Succeeded: true},
	}}
	v := &fakeVerifier{result: BaselineResult{Kind: BaselinePassed, Count: 3}}

	o := NewOrchestrator(c, s, v, logging.NopLogger())
	res := o.Provision(context.Background(), testRequest())

	if v.calls != 1 {
		t.Error("verify must still run after setup failures")
	}
	if res.Status != StatusReady {
		t.Errorf("Status = %v, want StatusReady (setup failures are non-fatal)", res.Status)
	}
	// Every outcome appears in the result, failed or not.
	if len(res.Setup) != 2 {
		t.Errorf("Setup = %+v", res.Setup)
	}
}

func TestProvisionFailedBaselineNeedsDecision(t *testing.T) {
	c := &fakeCreator{path: "/p"}
	v := &fakeVerifier{result: BaselineResult{Kind: BaselineFailed, Count: 2, Summary: "2 failed"}}

	o := NewOrchestrator(c, &fakeSetup{}, v, logging.NopLogger())
	res := o.Provision(context.Background(), testRequest())

	if res.Status != StatusReadyNeedsDecision {
		t.Errorf("Status = %v, want StatusReadyNeedsDecision", res.Status)
	}
	if res.Baseline == nil || res.Baseline.Kind != BaselineFailed {
		t.Errorf("Baseline = %+v", res.Baseline)
	}
}

func TestProvisionEmitsSteps(t *testing.T) {
	c := &fakeCreator{path: "/p"}
	o := NewOrchestrator(c, &fakeSetup{}, &fakeVerifier{}, logging.NopLogger())

	var steps []Step
	o.OnStep = func(s Step) { steps = append(steps, s) }

	_ = o.Provision(context.Background(), testRequest())

	want := []Step{StepResolving, StepCreating, StepSettingUp, StepVerifying}
	if len(steps) != len(want) {
		t.Fatalf("steps = %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("steps[%d] = %v, want %v", i, steps[i], want[i])
		}
	}
}

func TestProvisionFatalEmitsNoLaterSteps(t *testing.T) {
	c := &fakeCreator{err: errors.New("boom")}
	o := NewOrchestrator(c, &fakeSetup{}, &fakeVerifier{}, logging.NopLogger())

	var steps []Step
	o.OnStep = func(s Step) { steps = append(steps, s) }

	_ = o.Provision(context.Background(), testRequest())

	if len(steps) != 2 || steps[1] != StepCreating {
		t.Errorf("steps = %v, want [resolving creating]", steps)
	}
}
