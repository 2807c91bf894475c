// pattern: Functional Core

package workspace

import (
	"path/filepath"
	"strings"
)

// RootSuffix is appended to the project directory name to form the
// worktree root directory name (e.g. "radial" -> "radial.worktrees").
const RootSuffix = ".worktrees"

// Location is the resolved placement for a project's isolated worktrees.
type Location struct {
	// RootDir is the directory holding all worktrees for the project.
	// It is always a sibling of the project root, never nested inside it
	// or inside another worktree root.
	RootDir string
}

// RootName returns the worktree root directory name for a project root.
func RootName(projectRoot string) string {
	return filepath.Base(filepath.Clean(projectRoot)) + RootSuffix
}

// Resolve maps the caller's current location and the project root to the
// canonical worktree root. Three cases, in precedence order:
//
//  1. current is inside a branch subdirectory of a worktree root:
//     the root is the path up to and including the *.worktrees segment.
//  2. current is a worktree root itself: the root is current.
//  3. otherwise: the root is a sibling of projectRoot named
//     <projectDirName>.worktrees.
//
// Resolution compares whole path segments rather than substrings, so a
// directory like "my.worktrees.bak" inside an unrelated path never
// matches. Resolving from any location a prior run produced yields the
// same root, so repeated invocations converge instead of nesting.
func Resolve(currentLocation, projectRoot string) Location {
	cur := filepath.Clean(currentLocation)
	sep := string(filepath.Separator)

	segs := strings.Split(cur, sep)
	for i, seg := range segs {
		if isRootSegment(seg) {
			// Cases 1 and 2 collapse: everything past the root
			// segment is a branch subdirectory.
			return Location{RootDir: strings.Join(segs[:i+1], sep)}
		}
	}

	root := filepath.Clean(projectRoot)
	return Location{RootDir: filepath.Join(filepath.Dir(root), RootName(root))}
}

// isRootSegment reports whether a single path segment names a worktree
// root, i.e. "<name>.worktrees" with a non-empty name.
func isRootSegment(seg string) bool {
	return len(seg) > len(RootSuffix) && strings.HasSuffix(seg, RootSuffix)
}
