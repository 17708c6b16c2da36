package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/dlcmd/internal/log"
	"github.com/raphi011/dlcmd/internal/output"
	"github.com/raphi011/dlcmd/internal/ui/prompt"
)

// errNotInteractive is returned by pick when no terminal is attached.
var errNotInteractive = errors.New("pick needs an interactive terminal (use 'dlcmd show' instead)")

// isInteractive reports whether the prompt can read keys and draw on stderr.
func isInteractive() bool {
	tty := func(f *os.File) bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return tty(os.Stdin) && tty(os.Stderr)
}

func newPickCmd() *cobra.Command {
	var (
		scheme          string
		ref             string
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:               "pick <project>",
		Short:             "Choose a download command interactively",
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		Long: `Choose one of a project's download commands from a filterable list.

The list is drawn on stderr and the chosen command is printed to stdout, so
the output can be captured. Without --scheme the first configured scheme
is used.`,
		Example: `  dlcmd pick platform/api
  dlcmd pick platform/api --copy
  eval "$(dlcmd pick platform/api --ref refs/changes/45/12345/2)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			projectName := args[0]

			if !isInteractive() {
				return errNotInteractive
			}

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
			if len(rendered) == 0 {
				return fmt.Errorf("project %s has no download commands", projectName)
			}

			options := make([]prompt.Option, len(rendered))
			for i, r := range rendered {
				options[i] = prompt.Option{Title: r.Name, Description: r.Command}
			}

			res, err := prompt.Select(fmt.Sprintf("Download %s (%s)", projectName, scheme), options)
			if err != nil {
				return err
			}
			if res.Cancelled {
				l.Debug("pick cancelled", "project", projectName)
				return nil
			}

			command := rendered[res.Index].Command
			out.Println(command)

			if copyToClipboard {
				if err := clipboard.WriteAll(command); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println("Copied to clipboard")
				}
			}
			return nil
		},
	}

	addRenderFlags(cmd, &scheme, &ref)
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the chosen command to the clipboard")

	return cmd
}
