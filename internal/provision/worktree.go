// pattern: Imperative Shell

package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"groundwork/internal/logging"
)

// validBranchRe matches valid branch names: alphanumeric, hyphens,
// underscores, dots, slashes.
var validBranchRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

// ValidateBranchName checks if a branch name is usable as a worktree
// directory. Names must start with an alphanumeric character and contain
// only alphanumeric, hyphens, underscores, dots, and slashes.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("branch name too long (max 100 characters)")
	}
	if !validBranchRe.MatchString(name) {
		return fmt.Errorf("invalid branch name %q: must start with alphanumeric, may contain a-z A-Z 0-9 . _ / -", name)
	}
	// Disallow ".." path traversal
	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name cannot contain '..'")
	}
	return nil
}

// WorktreeGit is the slice of gitx the provisioner needs.
type WorktreeGit interface {
	BranchExists(ctx context.Context, dir, name string) bool
	AddWorktree(ctx context.Context, repoDir, path, branch, baseBranch string) error
}

// Provisioner creates the linked working copy. This is the only step
// that mutates durable version-control state.
type Provisioner struct {
	git    WorktreeGit
	logger *logging.ScopedLogger
}

// NewProvisioner creates a Provisioner backed by the given git client.
func NewProvisioner(git WorktreeGit, logger *logging.ScopedLogger) *Provisioner {
	return &Provisioner{git: git, logger: logger}
}

// Create creates a worktree at rootDir/branch on a new branch based on
// req.BaseBranch and returns its path. Fails with *PathCollisionError if
// the target path exists and *VcsError if git refuses.
func (p *Provisioner) Create(ctx context.Context, req Request, rootDir string) (string, error) {
	if err := ValidateBranchName(req.Branch); err != nil {
		return "", &VcsError{Op: "validate branch name", Err: err}
	}

	wtPath := filepath.Join(rootDir, filepath.FromSlash(req.Branch))

	if _, err := os.Stat(wtPath); err == nil {
		return "", &PathCollisionError{Path: wtPath}
	}

	// Checked up front for a clean message; git would refuse anyway,
	// and a race here still surfaces as a VcsError from worktree add.
	if p.git.BranchExists(ctx, req.ProjectRoot, req.Branch) {
		return "", &VcsError{Op: "create worktree", Err: fmt.Errorf("branch %q already exists", req.Branch)}
	}

	// Branch names with slashes nest below the root.
	if err := os.MkdirAll(filepath.Dir(wtPath), 0755); err != nil {
		return "", &VcsError{Op: "create worktree root", Err: err}
	}

	if err := p.git.AddWorktree(ctx, req.ProjectRoot, wtPath, req.Branch, req.BaseBranch); err != nil {
		return "", &VcsError{Op: "create worktree", Err: err}
	}

	p.logger.Info("worktree created", "path", wtPath, "branch", req.Branch, "base", req.BaseBranch)
	return wtPath, nil
}
