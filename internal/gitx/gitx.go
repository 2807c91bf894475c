// pattern: Imperative Shell

package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a git command in the given directory and returns its
// stdout. A non-zero exit returns an error carrying the stderr text.
type Runner func(ctx context.Context, dir string, args ...string) (string, error)

// Git is the default Runner backed by the git binary.
func Git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("git %s: %s: %w", args[0], detail, err)
	}
	return stdout.String(), nil
}

// Client wraps the git primitives the provisioning pipeline needs.
type Client struct {
	run Runner
}

// NewClient creates a Client backed by the git binary.
func NewClient() *Client {
	return &Client{run: Git}
}

// NewClientWithRunner creates a Client with the given runner (for testing).
func NewClientWithRunner(run Runner) *Client {
	return &Client{run: run}
}

// RepoRoot returns the absolute path of the repository containing dir.
func (c *Client) RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the branch checked out in dir.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// BranchExists reports whether a local branch with the given name exists.
// A missing ref exits non-zero, so any error is treated as absent.
func (c *Client) BranchExists(ctx context.Context, dir, name string) bool {
	_, err := c.run(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// AddWorktree creates a linked working copy at path on a new branch
// based on baseBranch.
func (c *Client) AddWorktree(ctx context.Context, repoDir, path, branch, baseBranch string) error {
	_, err := c.run(ctx, repoDir, "worktree", "add", path, "-b", branch, baseBranch)
	return err
}
