package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/dlcmd/internal/download"
	"github.com/raphi011/dlcmd/internal/git"
	"github.com/raphi011/dlcmd/internal/lock"
	"github.com/raphi011/dlcmd/internal/log"
	"github.com/raphi011/dlcmd/internal/refwatch"
)

func newServeCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Keep download commands in sync with refs/meta/config",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Register the download commands of every project and keep them in sync.

Startup registration runs in the background. Afterwards refs/meta/config of
every project is polled; when it moves, the commands of the previous
configuration are removed and those of the new one installed.

Only one serve process may run per site directory.`,
		Example: `  dlcmd serve                 # Poll with the configured interval
  dlcmd serve --interval 1s   # Poll every second
  dlcmd serve -v              # Log every registration change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			s, err := openSite(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			siteLock := lock.ForSite(s.cfg.SiteDir)
			if err := siteLock.TryLock(); err != nil {
				return err
			}
			defer siteLock.Unlock()

			if interval <= 0 {
				interval = s.cfg.Interval()
			}

			u := s.newUpdater()
			if err := u.Start(ctx); err != nil {
				return err
			}

			report := refwatch.ListenerFunc(func(ctx context.Context, ev refwatch.Event) {
				n := len(download.Render(s.commands, s.schemes[:1], ev.ProjectName, s.cfg.DefaultRef))
				l.Printf("Updated download commands for %s (%d registered)\n", ev.ProjectName, n)
			})
			w := refwatch.New(s.projects, git.RefConfig, interval, u, report)

			if err := w.Snapshot(ctx); err != nil {
				return err
			}
			l.Printf("Watching %s (every %s)\n", s.cfg.SiteDir, interval)
			if err := w.Run(ctx); err != nil {
				return err
			}

			l.Debug("stopping", "registered", u.Registered())
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (default: poll_interval from config)")

	return cmd
}
