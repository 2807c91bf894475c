// pattern: Imperative Shell
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"groundwork/internal/gitx"
)

// ResolveDataDir returns the directory for the log file and config.
// If configDir is specified, uses that; otherwise uses ~/.config/groundwork.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "groundwork")
	}
	return filepath.Join(home, ".config", "groundwork")
}

// BuildApp creates and configures the CLI application with all commands.
func BuildApp(version string, configDir string) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "create",
		Summary: "Provision a worktree for a new branch",
		Usage:   "Usage: groundwork create <branch> [--base <branch>] [--no-setup] [--no-verify] [--yes] [--plain]",
		Run: func(args []string) int {
			return runCreate(configDir, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "list",
		Summary: "List worktrees of the enclosing project",
		Usage:   "Usage: groundwork list",
		Run: func(args []string) int {
			return runList()
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: groundwork version",
		Run: func(args []string) int {
			fmt.Println(version)
			return 0
		},
	})

	return app
}

// runList prints the linked worktrees of the repository containing the
// current directory.
func runList() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ctx := context.Background()
	git := gitx.NewClient()

	root, err := git.RepoRoot(ctx, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: not inside a git repository: %v\n", err)
		return 1
	}

	worktrees := git.ListWorktrees(ctx, root)
	if len(worktrees) == 0 {
		fmt.Println("no worktrees")
		return 0
	}

	for _, wt := range worktrees {
		fmt.Printf("%-30s %s\n", wt.Branch, wt.Path)
	}
	return 0
}
