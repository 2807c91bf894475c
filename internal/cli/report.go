// pattern: Functional Core
package cli

import (
	"fmt"
	"strings"

	"groundwork/internal/provision"
	"groundwork/internal/ui"
)

// RenderResult formats a provisioning result as a human-readable report.
// Every setup outcome and the baseline appear, successful or not, so the
// caller can audit exactly what ran.
func RenderResult(res provision.Result, req provision.Request, styles *ui.Styles) string {
	var sb strings.Builder

	if res.Status == provision.StatusFailed {
		sb.WriteString(styles.Failure().Render("✗ provisioning failed"))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  branch: %s\n", req.Branch)
		if res.Err != nil {
			fmt.Fprintf(&sb, "  %s\n", res.Err)
		}
		return sb.String()
	}

	sb.WriteString(styles.Title().Render("worktree ready: " + req.Branch))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  path: %s\n", styles.Path().Render(res.WorktreePath))
	fmt.Fprintf(&sb, "  base: %s\n", req.BaseBranch)

	if len(res.Setup) > 0 {
		sb.WriteString("\n  setup:\n")
		for _, out := range res.Setup {
			mark := styles.Success().Render("✓")
			line := out.Action
			if !out.Succeeded {
				mark = styles.Failure().Render("✗")
				line += ": " + out.Detail
			}
			fmt.Fprintf(&sb, "    %s %s\n", mark, line)
		}
	}

	sb.WriteString("\n  baseline: ")
	if res.Baseline == nil {
		sb.WriteString(styles.Muted().Render("not run"))
		sb.WriteString("\n")
		return sb.String()
	}

	switch res.Baseline.Kind {
	case provision.NoTestsConfigured:
		sb.WriteString(styles.Muted().Render("no tests configured"))
		sb.WriteString("\n")
	case provision.BaselinePassed:
		sb.WriteString(styles.Success().Render(fmt.Sprintf("passed (%d)", res.Baseline.Count)))
		fmt.Fprintf(&sb, " %s\n", styles.Muted().Render(res.Baseline.Command))
	case provision.BaselineFailed:
		sb.WriteString(styles.Failure().Render(fmt.Sprintf("failed (%d)", res.Baseline.Count)))
		fmt.Fprintf(&sb, " %s\n", styles.Muted().Render(res.Baseline.Command))
		if res.Baseline.Summary != "" {
			for _, line := range strings.Split(res.Baseline.Summary, "\n") {
				fmt.Fprintf(&sb, "    %s\n", styles.Muted().Render(line))
			}
		}
	}

	return sb.String()
}
