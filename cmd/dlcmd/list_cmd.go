package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/dlcmd/internal/download"
	"github.com/raphi011/dlcmd/internal/log"
	"github.com/raphi011/dlcmd/internal/output"
	"github.com/raphi011/dlcmd/internal/ui/static"
)

// CommandDisplay is one rendered command in list output.
type CommandDisplay struct {
	Project string `json:"project"`
	Name    string `json:"name"`
	Scheme  string `json:"scheme"`
	Command string `json:"command"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		scheme     string
		ref        string
	)

	cmd := &cobra.Command{
		Use:               "list [project...]",
		Short:             "List download commands",
		Aliases:           []string{"ls"},
		GroupID:           GroupCore,
		ValidArgsFunction: completeProjects,
		Long: `List the download commands of projects.

Without arguments every project of the site is listed. Commands are
rendered for each configured scheme with ${ref} set to --ref (default:
default_ref from config).`,
		Example: `  dlcmd list                        # All projects, all schemes
  dlcmd list platform/api           # One project
  dlcmd list --scheme ssh --ref refs/changes/45/12345/2
  dlcmd list --json                 # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			s, err := openSite(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.sync(ctx, args...); err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				if names, err = s.projects.All(ctx); err != nil {
					return err
				}
			}

			var commands []CommandDisplay
			for _, name := range names {
				rendered, err := s.render(name, scheme, ref)
				if err != nil {
					return err
				}
				for _, r := range rendered {
					commands = append(commands, CommandDisplay{
						Project: name,
						Name:    r.Name,
						Scheme:  r.Scheme,
						Command: r.Command,
					})
				}
			}

			l.Debug("listing download commands", "projects", len(names), "commands", len(commands))

			if jsonOutput {
				if commands == nil {
					commands = []CommandDisplay{}
				}
				return out.JSON(commands)
			}

			if len(commands) == 0 {
				l.Println("No download commands configured")
				return nil
			}

			rows := make([][]string, 0, len(commands))
			for _, c := range commands {
				rows = append(rows, []string{c.Project, c.Name, c.Scheme, c.Command})
			}
			w := colorprofile.NewWriter(out.Writer(), os.Environ())
			_, err = fmt.Fprint(w, static.RenderTable([]string{"PROJECT", "COMMAND", "SCHEME", "VALUE"}, rows))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	addRenderFlags(cmd, &scheme, &ref)

	return cmd
}

// addRenderFlags registers --scheme and --ref.
func addRenderFlags(cmd *cobra.Command, scheme, ref *string) {
	cmd.Flags().StringVarP(scheme, "scheme", "s", "", "Render for this scheme only")
	cmd.Flags().StringVar(ref, "ref", "", "Ref substituted for ${ref} (default: default_ref from config)")
	cmd.RegisterFlagCompletionFunc("scheme", completeSchemes)
}

// commandNames returns the distinct command names in rendered, in order.
func commandNames(rendered []download.Rendered) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range rendered {
		if !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
	}
	return names
}

// lookupCommand finds name in rendered. Dashes match spaces, so both the
// configured name and the display name work.
func lookupCommand(rendered []download.Rendered, name string) (download.Rendered, bool) {
	want := download.DisplayName(strings.ToLower(name))
	for _, r := range rendered {
		if r.Name == want {
			return r, true
		}
	}
	return download.Rendered{}, false
}
