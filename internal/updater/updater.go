package updater

import (
	"context"
	"errors"
	"sync"

	"github.com/raphi011/dlcmd/internal/download"
	"github.com/raphi011/dlcmd/internal/git"
	"github.com/raphi011/dlcmd/internal/log"
	"github.com/raphi011/dlcmd/internal/project"
	"github.com/raphi011/dlcmd/internal/refwatch"
	"github.com/raphi011/dlcmd/internal/registry"
	"github.com/raphi011/dlcmd/internal/workqueue"
)

// QueueName is the name of the queue startup registration runs on.
const QueueName = "download-command-updater"

// Projects enumerates projects and reads their configuration.
type Projects interface {
	All(ctx context.Context) ([]string, error)
	// Get returns nil without error if the project does not exist.
	Get(ctx context.Context, name string) (*project.State, error)
	ReadConfig(ctx context.Context, name, revision string) (*project.Config, error)
}

// Registry is the part of the download command map the updater may touch.
type Registry interface {
	Put(pluginName, exportName string, provider registry.Provider[download.Command]) registry.Handle
}

// Executor runs startup registration in the background.
type Executor interface {
	Submit(task workqueue.Task) error
}

type commandKey struct {
	project string
	name    string
}

// Updater registers and unregisters project download commands.
type Updater struct {
	pluginName string
	commands   Registry
	projects   Projects
	executor   Executor

	mu       sync.Mutex
	handles  map[commandKey]registry.Handle
	projLock map[string]*sync.Mutex
}

// New creates an updater for the plugin section pluginName.
func New(pluginName string, commands Registry, projects Projects, executor Executor) *Updater {
	return &Updater{
		pluginName: pluginName,
		commands:   commands,
		projects:   projects,
		executor:   executor,
		handles:    make(map[commandKey]registry.Handle),
		projLock:   make(map[string]*sync.Mutex),
	}
}

// Start schedules registration of every project's configured commands.
// Projects that cannot be resolved are skipped. Only a failure to list
// projects is returned.
func (u *Updater) Start(ctx context.Context) error {
	l := log.FromContext(ctx)

	names, err := u.projects.All(ctx)
	if err != nil {
		return err
	}

	for _, name := range names {
		state, err := u.projects.Get(ctx, name)
		if err != nil {
			l.Printf("Warning: skipping project %s: %v\n", name, err)
			continue
		}
		if state == nil {
			l.Debug("skipping unresolved project", "project", name)
			continue
		}

		if err := u.executor.Submit(func(ctx context.Context) error {
			u.installAll(ctx, state)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// OnRefUpdated re-registers a project's commands when its refs/meta/config
// moves. Updates of other refs are ignored. Errors are logged, never returned.
func (u *Updater) OnRefUpdated(ctx context.Context, ev refwatch.Event) {
	if ev.RefName != git.RefConfig {
		return
	}
	l := log.FromContext(ctx)
	p := ev.ProjectName

	unlock := u.lockProject(p)
	defer unlock()

	oldCfg, err := u.projects.ReadConfig(ctx, p, ev.OldObjectID)
	if err != nil {
		if git.IsZeroID(ev.NewObjectID) && errors.Is(err, project.ErrNotFound) {
			n := u.removeProject(p)
			l.Debug("removed download commands of deleted project", "project", p, "removed", n)
			return
		}
		u.logUpdateFailure(l, p, err)
		return
	}
	oldNames := oldCfg.PluginConfig(u.pluginName).Names()
	for _, name := range oldNames {
		u.removeCommand(p, name)
	}

	newCfg, err := u.projects.ReadConfig(ctx, p, ev.NewObjectID)
	if err != nil {
		u.logUpdateFailure(l, p, err)
		return
	}
	pc := newCfg.PluginConfig(u.pluginName)
	for _, name := range pc.Names() {
		u.installCommand(p, name, pc.String(name))
	}

	l.Debug("updated download commands", "project", p, "removed", len(oldNames), "installed", pc.Len())
}

func (u *Updater) logUpdateFailure(l *log.Logger, project string, err error) {
	l.Printf("Error: failed to update download commands for project %s on update of %s: %v\n", project, git.RefConfig, err)
}

// installAll registers every command of a resolved project.
func (u *Updater) installAll(ctx context.Context, state *project.State) {
	unlock := u.lockProject(state.Name)
	defer unlock()

	pc := state.PluginConfig(u.pluginName)
	for _, name := range pc.Names() {
		u.installCommand(state.Name, name, pc.String(name))
	}
	log.FromContext(ctx).Debug("installed download commands", "project", state.Name, "count", pc.Len())
}

// installCommand registers template as command name of project. A previous
// registration of the same name is replaced.
func (u *Updater) installCommand(projectName, name, template string) {
	h := u.commands.Put(u.pluginName+"_"+projectName, download.DisplayName(name), func() download.Command {
		return download.NewTemplateCommand(projectName, template)
	})

	k := commandKey{project: projectName, name: name}
	u.mu.Lock()
	old := u.handles[k]
	u.handles[k] = h
	u.mu.Unlock()

	// no-op when Put already replaced the slot
	if old != nil {
		old.Remove()
	}
}

// removeCommand unregisters command name of project and forgets its handle.
func (u *Updater) removeCommand(projectName, name string) {
	k := commandKey{project: projectName, name: name}
	u.mu.Lock()
	h, ok := u.handles[k]
	delete(u.handles, k)
	u.mu.Unlock()

	if ok {
		h.Remove()
	}
}

// removeProject unregisters every command held for project and returns
// how many were removed.
func (u *Updater) removeProject(projectName string) int {
	var removed []registry.Handle
	u.mu.Lock()
	for k, h := range u.handles {
		if k.project == projectName {
			removed = append(removed, h)
			delete(u.handles, k)
		}
	}
	u.mu.Unlock()

	for _, h := range removed {
		h.Remove()
	}
	return len(removed)
}

// lockProject serializes registration work for one project.
func (u *Updater) lockProject(name string) (unlock func()) {
	u.mu.Lock()
	m, ok := u.projLock[name]
	if !ok {
		m = &sync.Mutex{}
		u.projLock[name] = m
	}
	u.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Registered returns the number of handles currently held.
func (u *Updater) Registered() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.handles)
}
