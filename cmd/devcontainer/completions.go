package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/config"
)

// completionContext carries the global config. Completion skips the
// persistent pre-run, so nothing else is attached.
func completionContext() context.Context {
	ctx := context.Background()
	if cfg != nil {
		ctx = config.WithConfig(ctx, cfg)
	}
	return ctx
}

// completeTemplates completes template names from the templates directory.
func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := newProject(completionContext())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := p.TemplateNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeInstances completes saved devcontainer names of the project.
func completeInstances(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := newProject(completionContext())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := p.InstanceNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(names []string, prefix string) []string {
	var matches []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			matches = append(matches, n)
		}
	}
	return matches
}
