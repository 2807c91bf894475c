package workspace

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveFromProjectRoot(t *testing.T) {
	loc := Resolve("/d/radial", "/d/radial")
	want := filepath.FromSlash("/d/radial.worktrees")
	if loc.RootDir != want {
		t.Errorf("RootDir = %q, want %q", loc.RootDir, want)
	}
}

func TestResolveFromProjectSubdirectory(t *testing.T) {
	loc := Resolve("/d/radial/internal/api", "/d/radial")
	want := filepath.FromSlash("/d/radial.worktrees")
	if loc.RootDir != want {
		t.Errorf("RootDir = %q, want %q", loc.RootDir, want)
	}
}

func TestResolveInsideBranchSubdirectory(t *testing.T) {
	// Resolving from an existing worktree must reuse the root, not nest
	// a new one beneath it.
	loc := Resolve("/d/radial.worktrees/feature-x", "/d/radial")
	want := filepath.FromSlash("/d/radial.worktrees")
	if loc.RootDir != want {
		t.Errorf("RootDir = %q, want %q", loc.RootDir, want)
	}
}

func TestResolveAtWorktreeRoot(t *testing.T) {
	loc := Resolve("/d/radial.worktrees", "/d/radial")
	want := filepath.FromSlash("/d/radial.worktrees")
	if loc.RootDir != want {
		t.Errorf("RootDir = %q, want %q", loc.RootDir, want)
	}
}

func TestResolveDeepInsideBranchSubdirectory(t *testing.T) {
	loc := Resolve("/d/radial.worktrees/feature/auth/src/lib", "/d/radial")
	want := filepath.FromSlash("/d/radial.worktrees")
	if loc.RootDir != want {
		t.Errorf("RootDir = %q, want %q", loc.RootDir, want)
	}
}

func TestResolveIdempotent(t *testing.T) {
	// Different branch subdirectories of the same root converge.
	a := Resolve("/d/radial.worktrees/feature-x", "/d/radial")
	b := Resolve("/d/radial.worktrees/bugfix/auth/deep/dir", "/d/radial")
	if a.RootDir != b.RootDir {
		t.Errorf("roots diverge: %q vs %q", a.RootDir, b.RootDir)
	}
}

func TestResolveNeverNests(t *testing.T) {
	locations := []string{
		"/d/radial",
		"/d/radial/src",
		"/d/radial.worktrees",
		"/d/radial.worktrees/feature-x",
		"/d/radial.worktrees/feature/auth",
	}
	projectRoot := "/d/radial"
	for _, cur := range locations {
		loc := Resolve(cur, projectRoot)
		rel, err := filepath.Rel(projectRoot, loc.RootDir)
		if err == nil && !strings.HasPrefix(rel, "..") {
			t.Errorf("Resolve(%q) = %q is nested inside project root", cur, loc.RootDir)
		}
		// A root must never sit inside another root.
		parent := filepath.Dir(loc.RootDir)
		if isRootSegment(filepath.Base(parent)) {
			t.Errorf("Resolve(%q) = %q is nested inside another worktree root", cur, loc.RootDir)
		}
	}
}

func TestResolveIgnoresSubstringMatches(t *testing.T) {
	// Segment comparison, not substring matching: these do not name a
	// worktree root segment.
	loc := Resolve("/home/user/radial.worktrees.bak/stuff", "/d/radial")
	want := filepath.FromSlash("/d/radial.worktrees")
	if loc.RootDir != want {
		t.Errorf("RootDir = %q, want %q", loc.RootDir, want)
	}
}

func TestIsRootSegment(t *testing.T) {
	tests := []struct {
		seg  string
		want bool
	}{
		{"radial.worktrees", true},
		{"a.worktrees", true},
		{".worktrees", false}, // empty project name
		{"worktrees", false},
		{"radial.worktrees.bak", false},
		{"radial", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.seg, func(t *testing.T) {
			if got := isRootSegment(tt.seg); got != tt.want {
				t.Errorf("isRootSegment(%q) = %v, want %v", tt.seg, got, tt.want)
			}
		})
	}
}

func TestRootName(t *testing.T) {
	if got := RootName("/d/radial"); got != "radial.worktrees" {
		t.Errorf("RootName = %q, want %q", got, "radial.worktrees")
	}
	if got := RootName("/d/radial/"); got != "radial.worktrees" {
		t.Errorf("RootName = %q, want %q", got, "radial.worktrees")
	}
}
