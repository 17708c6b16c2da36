package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/raphi011/dlcmd/internal/config"
	"github.com/raphi011/dlcmd/internal/download"
	"github.com/raphi011/dlcmd/internal/project"
	"github.com/raphi011/dlcmd/internal/registry"
	"github.com/raphi011/dlcmd/internal/updater"
	"github.com/raphi011/dlcmd/internal/workqueue"
)

// site wires the project cache, the command registry and the updater for
// one site directory.
type site struct {
	cfg      *config.Config
	projects *project.Cache
	commands *registry.Map[download.Command]
	schemes  []download.Scheme
	queue    *workqueue.Queue
}

// openSite builds the components for the configured site directory.
// Call close when done.
func openSite(ctx context.Context) (*site, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, errors.New("no configuration loaded")
	}
	if err := cfg.RequireSiteDir(); err != nil {
		return nil, err
	}
	info, err := os.Stat(cfg.SiteDir)
	if err != nil {
		return nil, fmt.Errorf("site directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site directory %s is not a directory", cfg.SiteDir)
	}

	schemes, err := cfg.DownloadSchemes()
	if err != nil {
		return nil, err
	}

	return &site{
		cfg:      cfg,
		projects: project.NewCache(cfg.SiteDir),
		commands: registry.New[download.Command](),
		schemes:  schemes,
		queue:    workqueue.New(ctx, updater.QueueName, 1),
	}, nil
}

// newUpdater returns a synchronizer over only the named projects, or all
// projects if names is empty.
func (s *site) newUpdater(names ...string) *updater.Updater {
	var projects updater.Projects = s.projects
	if len(names) > 0 {
		projects = selectedProjects{Cache: s.projects, names: names}
	}
	return updater.New(s.cfg.PluginName, s.commands, projects, s.queue)
}

// sync registers the commands of the named projects (all if empty) and
// waits for registration to finish. The queue is stopped afterwards.
func (s *site) sync(ctx context.Context, names ...string) error {
	for _, name := range names {
		state, err := s.projects.Get(ctx, name)
		if err != nil {
			return err
		}
		if state == nil {
			return fmt.Errorf("%w: %s", project.ErrNotFound, name)
		}
	}

	if err := s.newUpdater(names...).Start(ctx); err != nil {
		return err
	}
	s.queue.Stop()
	return nil
}

func (s *site) close() {
	s.queue.Stop()
}

// selectSchemes returns the scheme called name, or all schemes if name is empty.
func (s *site) selectSchemes(name string) ([]download.Scheme, error) {
	if name == "" {
		return s.schemes, nil
	}
	sc, err := download.FindScheme(s.schemes, name)
	if err != nil {
		return nil, err
	}
	return []download.Scheme{sc}, nil
}

// ref returns r, or the configured default ref if r is empty.
func (s *site) ref(r string) string {
	if r == "" {
		return s.cfg.DefaultRef
	}
	return r
}

// render returns the commands registered for project, ordered by name then scheme.
func (s *site) render(project, schemeName, ref string) ([]download.Rendered, error) {
	schemes, err := s.selectSchemes(schemeName)
	if err != nil {
		return nil, err
	}
	return download.Render(s.commands, schemes, project, s.ref(ref)), nil
}

// selectedProjects narrows a project cache to a fixed set of names.
type selectedProjects struct {
	*project.Cache
	names []string
}

func (p selectedProjects) All(context.Context) ([]string, error) {
	names := slices.Clone(p.names)
	slices.Sort(names)
	return slices.Compact(names), nil
}
