package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/aniongithub/devcontainer-tools/internal/config"
)

// fixAllIssues applies fixes for all detected issues.
func fixAllIssues(w io.Writer, issues []Issue) error {
	var fixed int
	var failed int

	for _, issue := range issues {
		switch issue.FixAction {
		case FixRemoveLiveEnv:
			if err := os.Remove(issue.Key); err != nil {
				fmt.Fprintf(w, "  ✗ Failed to remove %s: %v\n", issue.Key, err)
				failed++
				continue
			}
			fmt.Fprintf(w, "  ✓ Removed %s\n", issue.Key)
			fixed++

		case FixInitConfig:
			path, err := config.Init(false)
			if err != nil {
				fmt.Fprintf(w, "  ✗ Failed to create config: %v\n", err)
				failed++
				continue
			}
			fmt.Fprintf(w, "  ✓ Created %s\n", path)
			fixed++
		}
	}

	fmt.Fprintf(w, "\nFixed %d issues", fixed)
	if failed > 0 {
		fmt.Fprintf(w, ", %d failed", failed)
	}
	fmt.Fprintln(w)

	if failed > 0 {
		return fmt.Errorf("%d fixes failed", failed)
	}
	return nil
}
