// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"groundwork/internal/config"
	"groundwork/internal/execx"
	"groundwork/internal/gitx"
	"groundwork/internal/logging"
	"groundwork/internal/provision"
	"groundwork/internal/ui"
)

// Exit codes for the create command.
const (
	exitReady         = 0
	exitFailed        = 1
	exitNeedsDecision = 2
)

// createOptions holds the parsed flags for the create command.
type createOptions struct {
	branch   string
	base     string
	noSetup  bool
	noVerify bool
	yes      bool
	plain    bool
	verbose  bool
}

func parseCreateFlags(args []string) (createOptions, error) {
	var opts createOptions

	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.StringVar(&opts.base, "base", "", "base branch (default: current branch)")
	fs.BoolVar(&opts.noSetup, "no-setup", false, "skip dependency installation and setup script")
	fs.BoolVar(&opts.noVerify, "no-verify", false, "skip the baseline test run")
	fs.BoolVarP(&opts.yes, "yes", "y", false, "accept the worktree even if the baseline fails")
	fs.BoolVar(&opts.plain, "plain", false, "no spinner or prompt (for scripts and CI)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "echo subprocess output to stderr")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		return opts, fmt.Errorf("expected exactly one <branch> argument")
	}
	opts.branch = fs.Arg(0)
	return opts, nil
}

// loadConfig loads configuration from the given directory or the
// default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// runCreate provisions a worktree for a new branch and reports the outcome.
func runCreate(configDir string, args []string) int {
	opts, err := parseCreateFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\nUsage: groundwork create <branch> [--base <branch>] [--no-setup] [--no-verify] [--yes] [--plain]\n", err)
		return exitFailed
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailed
	}

	dataDir := ResolveDataDir(configDir)
	logCfg := logging.Config{
		FilePath: filepath.Join(dataDir, "groundwork.log"),
		Level:    cfg.LogLevel,
	}
	if opts.verbose {
		logCfg.Console = os.Stderr
	}
	logManager, err := logging.NewManager(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logging: %v\n", err)
		return exitFailed
	}
	defer func() { _ = logManager.Close() }()

	ctx := context.Background()
	git := gitx.NewClient()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailed
	}

	projectRoot, err := git.RepoRoot(ctx, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: not inside a git repository: %v\n", err)
		return exitFailed
	}

	baseBranch := opts.base
	if baseBranch == "" {
		baseBranch = cfg.BaseBranch
	}
	if baseBranch == "" {
		baseBranch, err = git.CurrentBranch(ctx, projectRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot determine base branch: %v\n", err)
			return exitFailed
		}
	}

	req := provision.Request{
		Origin:      cwd,
		ProjectRoot: projectRoot,
		Branch:      opts.branch,
		BaseBranch:  baseBranch,
	}

	orchestrator := buildOrchestrator(cfg, git, logManager, opts)
	styles := ui.NewStyles(cfg.Theme)

	interactive := !opts.plain && isatty.IsTerminal(os.Stdout.Fd())

	var result provision.Result
	if interactive {
		result, err = ui.RunProgress(styles, opts.branch, func(onStep func(provision.Step)) provision.Result {
			orchestrator.OnStep = onStep
			return orchestrator.Provision(ctx, req)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitFailed
		}
	} else {
		result = orchestrator.Provision(ctx, req)
	}

	fmt.Print(RenderResult(result, req, styles))

	return decide(result, opts, styles, interactive)
}

// decide maps the result's status, the flags, and (interactively) the
// user's answer to the final exit code.
func decide(result provision.Result, opts createOptions, styles *ui.Styles, interactive bool) int {
	switch result.Status {
	case provision.StatusFailed:
		return exitFailed
	case provision.StatusReady:
		return exitReady
	}

	// ReadyNeedsDecision: the baseline failed and someone has to own
	// that call.
	if opts.yes {
		return exitReady
	}
	if !interactive {
		return exitNeedsDecision
	}

	accepted, err := ui.Confirm(styles, "baseline tests failed. keep the worktree anyway?")
	if err != nil || !accepted {
		return exitNeedsDecision
	}
	return exitReady
}

// buildOrchestrator wires the pipeline from config and flags.
func buildOrchestrator(cfg config.Config, git *gitx.Client, logs logging.LoggerProvider, opts createOptions) *provision.Orchestrator {
	creator := provision.NewProvisioner(git, logs.For("provision"))

	var setup provision.SetupStep = provision.SkipSetup{}
	if !opts.noSetup {
		runner := execx.NewRunner(logs.For("provision.setup"))
		setup = provision.NewSetup(runner.Run, cfg.SetupScript, cfg.SetupTimeout())
	}

	var verifier provision.VerifyStep = provision.SkipVerify{}
	if !opts.noVerify {
		runner := execx.NewRunner(logs.For("provision.baseline"))
		verifier = provision.NewVerifier(runner.Run, cfg.TestTimeout())
	}

	return provision.NewOrchestrator(creator, setup, verifier, logs.For("provision"))
}
