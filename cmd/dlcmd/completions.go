package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/dlcmd/internal/config"
	"github.com/raphi011/dlcmd/internal/project"
)

// completeProjects completes project names of the configured site.
func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil || cfg.SiteDir == "" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := project.NewCache(cfg.SiteDir).All(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, n := range names {
		if strings.HasPrefix(n, toComplete) {
			matches = append(matches, n)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeProjectCommands completes the project, then its configured command names.
func completeProjectCommands(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeProjects(cmd, args, toComplete)
	case 1:
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil || cfg.SiteDir == "" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	state, err := project.NewCache(cfg.SiteDir).Get(ctx, args[0])
	if err != nil || state == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, n := range state.PluginConfig(cfg.PluginName).Names() {
		if strings.HasPrefix(n, toComplete) {
			matches = append(matches, n)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeSchemes completes the configured scheme names.
func completeSchemes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	schemes, err := cfg.DownloadSchemes()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, s := range schemes {
		if strings.HasPrefix(s.Name(), toComplete) {
			names = append(names, s.Name())
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
