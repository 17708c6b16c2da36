package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/dlcmd/internal/log"
	"github.com/raphi011/dlcmd/internal/output"
)

// maxSuggestions caps the "did you mean" list for unknown commands.
const maxSuggestions = 3

func newShowCmd() *cobra.Command {
	var (
		scheme          string
		ref             string
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:               "show <project> <command>",
		Short:             "Print one download command",
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjectCommands,
		Long: `Print one download command of a project.

The command may be given with dashes as configured (clone-with-commit-msg-hook)
or with spaces as displayed (clone with commit msg hook). Without --scheme the
first configured scheme is used.`,
		Example: `  dlcmd show platform/api checkout
  dlcmd show platform/api checkout --scheme ssh --ref refs/changes/45/12345/2
  dlcmd show platform/api checkout --copy   # Also copy to clipboard
  eval "$(dlcmd show platform/api checkout)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			projectName, name := args[0], args[1]

			s, err := openSite(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.sync(ctx, projectName); err != nil {
				return err
			}

			if scheme == "" {
				scheme = s.schemes[0].Name()
			}
			rendered, err := s.render(projectName, scheme, ref)
			if err != nil {
				return err
			}

			r, ok := lookupCommand(rendered, name)
			if !ok {
				return unknownCommandError(projectName, name, commandNames(rendered))
			}

			out.Println(r.Command)

			if copyToClipboard {
				if err := clipboard.WriteAll(r.Command); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println("Copied to clipboard")
				}
			}
			return nil
		},
	}

	addRenderFlags(cmd, &scheme, &ref)
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the command to the clipboard")

	return cmd
}

// unknownCommandError lists the closest matches, or every available command
// if nothing matches.
func unknownCommandError(projectName, name string, available []string) error {
	if len(available) == 0 {
		return fmt.Errorf("project %s has no download commands", projectName)
	}

	matches := fuzzy.Find(strings.ReplaceAll(name, "-", " "), available)
	if len(matches) == 0 {
		return fmt.Errorf("unknown command %q for project %s (available: %s)", name, projectName, strings.Join(available, ", "))
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		suggestions = append(suggestions, m.Str)
	}
	return fmt.Errorf("unknown command %q for project %s (did you mean: %s?)", name, projectName, strings.Join(suggestions, ", "))
}
