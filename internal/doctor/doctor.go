package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/aniongithub/devcontainer-tools/internal/cmd"
	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
)

// Env is what doctor inspects.
type Env struct {
	Config     *config.Config
	ConfigPath string
	ConfigErr  error // error from loading ConfigPath, if any
	Project    lifecycle.Project
	// Engine pings the Docker engine and returns its API version.
	// nil skips the check.
	Engine func(ctx context.Context) (string, error)
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
	// Run executes a probe command, default cmd.RunContext.
	Run func(ctx context.Context, name string, args ...string) error
	// Out receives the report (default os.Stdout).
	Out io.Writer
}

func (e *Env) lookPath(file string) (string, error) {
	if e.LookPath != nil {
		return e.LookPath(file)
	}
	return exec.LookPath(file)
}

func (e *Env) run(ctx context.Context, name string, args ...string) error {
	if e.Run != nil {
		return e.Run(ctx, name, args...)
	}
	return cmd.RunContext(ctx, "", name, args...)
}

// Run performs the diagnostic checks and optionally fixes issues.
// It returns the issues found (before fixing).
func Run(ctx context.Context, env *Env, fix bool) ([]Issue, error) {
	w := env.Out
	if w == nil {
		w = os.Stdout
	}

	var stats Stats
	var allIssues []Issue

	fmt.Fprintln(w, "Checking tools...")
	for _, issue := range checkTools(ctx, env, &stats) {
		issue.Category = CategoryTools
		allIssues = append(allIssues, issue)
	}

	fmt.Fprintln(w, "Checking configuration...")
	for _, issue := range checkConfig(env, &stats) {
		issue.Category = CategoryConfig
		allIssues = append(allIssues, issue)
	}

	fmt.Fprintln(w, "Checking project...")
	for _, issue := range checkProject(ctx, env, &stats) {
		issue.Category = CategoryProject
		allIssues = append(allIssues, issue)
	}

	printSummary(w, stats)

	if len(allIssues) == 0 {
		fmt.Fprintln(w, "\n✓ No issues found")
		return nil, nil
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(allIssues))
	printIssuesByCategory(w, allIssues)

	if fix {
		return allIssues, fixAllIssues(w, allIssues)
	}
	for _, issue := range allIssues {
		if issue.FixAction != FixNone {
			fmt.Fprintln(w, "\nRun 'devcontainer doctor --fix' to repair.")
			break
		}
	}
	return allIssues, nil
}

// printSummary prints a categorized summary.
func printSummary(w io.Writer, stats Stats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  ✓ %d tool checks passed\n", stats.ToolsOK)
	fmt.Fprintf(w, "  ✓ %d configuration checks passed\n", stats.ConfigOK)
	fmt.Fprintf(w, "  ✓ %d saved devcontainers valid\n", stats.Instances)
	if stats.Live {
		fmt.Fprintln(w, "  ● a devcontainer is live")
	} else {
		fmt.Fprintln(w, "  ○ no devcontainer is live")
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(w io.Writer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryTools:   "Tool issues",
		CategoryConfig:  "Configuration issues",
		CategoryProject: "Project issues",
	}

	for _, cat := range []IssueCategory{CategoryTools, CategoryConfig, CategoryProject} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			fmt.Fprintf(w, "  • %s: %s\n", issue.Key, issue.Description)
		}
	}
}
