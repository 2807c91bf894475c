// pattern: Functional Core

package gitx

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"
)

// Worktree describes one linked working copy of a repository.
type Worktree struct {
	Name   string // Worktree directory name
	Path   string // Absolute path to the worktree directory
	Branch string // Branch checked out in the worktree
}

// ListWorktrees runs `git worktree list --porcelain` and returns the
// linked working copies. The primary checkout is excluded. Returns nil
// if dir is not a git repo or no linked copies exist.
func (c *Client) ListWorktrees(ctx context.Context, dir string) []Worktree {
	output, err := c.run(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil
	}
	return parseWorktreeList(output)
}

// parseWorktreeList parses the porcelain output of `git worktree list`.
// Format:
//
//	worktree /path/to/worktree
//	HEAD abc123
//	branch refs/heads/branch-name
//	<blank line>
//
// The first entry is the main worktree; we skip it and return only linked copies.
func parseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	scanner := bufio.NewScanner(strings.NewReader(output))
	isFirst := true
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "worktree ") {
			// Save previous (non-first) worktree
			if current != nil && !isFirst {
				worktrees = append(worktrees, *current)
			}
			if current != nil {
				isFirst = false
			}
			path := strings.TrimPrefix(line, "worktree ")
			current = &Worktree{
				Path: path,
				Name: filepath.Base(path),
			}
		} else if strings.HasPrefix(line, "branch ") && current != nil {
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		} else if line == "" && current != nil {
			// End of entry
			if !isFirst {
				worktrees = append(worktrees, *current)
				current = nil
			} else {
				isFirst = false
				current = nil
			}
		}
	}

	// Handle last entry if no trailing newline
	if current != nil && !isFirst {
		worktrees = append(worktrees, *current)
	}

	return worktrees
}
