// pattern: Functional Core

package provision

import "fmt"

// PathCollisionError means the target worktree path already exists.
// Fatal to the request; the caller must pick a different branch name.
type PathCollisionError struct {
	Path string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("worktree path already exists: %s", e.Path)
}

// VcsError means the version-control primitive failed (branch name in
// use, disk or permission failure). Fatal; nothing runs after it.
type VcsError struct {
	Op  string
	Err error
}

func (e *VcsError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *VcsError) Unwrap() error {
	return e.Err
}
