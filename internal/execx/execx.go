// pattern: Imperative Shell

package execx

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"groundwork/internal/logging"
)

// Spec describes one synchronous subprocess invocation.
type Spec struct {
	Name    string        // Action label for logging
	Dir     string        // Working directory
	Argv    []string      // Command and arguments
	Env     []string      // Extra KEY=VALUE entries appended to the inherited environment
	Timeout time.Duration // Zero means no timeout
}

// Result is the captured outcome of a subprocess run.
type Result struct {
	ExitCode int    // -1 when the process could not be started or was killed
	Output   string // Interleaved stdout and stderr, line-buffered
	TimedOut bool
}

// Succeeded reports whether the process exited cleanly.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// RunFunc is the signature consumers depend on, so tests can substitute
// a fake for Run.
type RunFunc func(ctx context.Context, spec Spec) Result

// Runner binds a scoped logger to subprocess runs.
type Runner struct {
	logger *logging.ScopedLogger
}

// NewRunner creates a Runner that logs subprocess lifecycle and output.
func NewRunner(logger *logging.ScopedLogger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the spec synchronously, capturing stdout and stderr
// line-by-line into both the logger and the returned Result. A timeout
// is reported through Result.TimedOut and a non-zero exit code, the
// same failure channel as an ordinary failing command.
func (r *Runner) Run(ctx context.Context, spec Spec) Result {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.logger.Error("failed to create stdout pipe", "error", err, "action", spec.Name)
		return Result{ExitCode: -1, Output: err.Error()}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		r.logger.Error("failed to create stderr pipe", "error", err, "action", spec.Name)
		return Result{ExitCode: -1, Output: err.Error()}
	}

	r.logger.Info("running", "action", spec.Name, "dir", spec.Dir, "argv", strings.Join(spec.Argv, " "))

	if err := cmd.Start(); err != nil {
		r.logger.Error("failed to start", "error", err, "action", spec.Name)
		return Result{ExitCode: -1, Output: err.Error()}
	}

	var buf strings.Builder
	var mu sync.Mutex
	capture := func(line, stream string) {
		mu.Lock()
		buf.WriteString(line)
		buf.WriteByte('\n')
		mu.Unlock()
		r.logger.Debug(line, "stream", stream, "action", spec.Name)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			capture(scanner.Text(), "stdout")
		}
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			capture(scanner.Text(), "stderr")
		}
	}()

	wg.Wait()
	err = cmd.Wait()

	res := Result{Output: buf.String()}
	res.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		r.logger.Warn("exited", "action", spec.Name, "exit_code", res.ExitCode, "timed_out", res.TimedOut)
		return res
	}

	r.logger.Info("exited cleanly", "action", spec.Name)
	return res
}
