// Package refwatch turns changes of a ref across a site's projects into
// update events.
//
// The watcher polls: every interval it resolves the ref in each project and
// compares it against the last seen value. Projects that appear report an
// update from the zero id, projects that disappear (or lose the ref) report
// an update to the zero id. Listeners run synchronously on the watcher
// goroutine, in registration order.
package refwatch

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/dlcmd/internal/git"
	"github.com/raphi011/dlcmd/internal/log"
)

// Event describes a single ref update.
type Event struct {
	ProjectName string
	RefName     string
	OldObjectID string
	NewObjectID string
}

// Listener receives ref update events.
type Listener interface {
	OnRefUpdated(ctx context.Context, ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, ev Event)

// OnRefUpdated calls f.
func (f ListenerFunc) OnRefUpdated(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// Source lists projects and resolves refs in them.
type Source interface {
	All(ctx context.Context) ([]string, error)
	Revision(ctx context.Context, project, ref string) (string, error)
}

// Watcher polls one ref across all projects of a Source.
type Watcher struct {
	source    Source
	ref       string
	interval  time.Duration
	listeners []Listener

	mu   sync.Mutex
	seen map[string]string // project -> object id; nil until the first snapshot
}

// New creates a watcher for ref.
func New(source Source, ref string, interval time.Duration, listeners ...Listener) *Watcher {
	return &Watcher{
		source:    source,
		ref:       ref,
		interval:  interval,
		listeners: listeners,
	}
}

// Snapshot records the current state without emitting events.
func (w *Watcher) Snapshot(ctx context.Context) error {
	current, err := w.resolveAll(ctx)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.seen = current
	w.mu.Unlock()
	return nil
}

// Poll compares the current state against the last one and delivers an
// event for every project whose ref moved. The first Poll without a prior
// Snapshot only records state.
func (w *Watcher) Poll(ctx context.Context) ([]Event, error) {
	current, err := w.resolveAll(ctx)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	previous := w.seen
	w.seen = current
	w.mu.Unlock()

	if previous == nil {
		return nil, nil
	}

	events := diff(w.ref, previous, current)
	for _, ev := range events {
		for _, l := range w.listeners {
			l.OnRefUpdated(ctx, ev)
		}
	}
	return events, nil
}

// Run polls every interval until ctx is done, taking a snapshot first
// unless one exists. Poll failures are logged and retried on the next tick.
func (w *Watcher) Run(ctx context.Context) error {
	l := log.FromContext(ctx)

	w.mu.Lock()
	taken := w.seen != nil
	w.mu.Unlock()
	if !taken {
		if err := w.Snapshot(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			events, err := w.Poll(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				l.Printf("Warning: polling %s failed: %v\n", w.ref, err)
				continue
			}
			for _, ev := range events {
				l.Debug("ref updated", "project", ev.ProjectName, "ref", ev.RefName, "old", ev.OldObjectID, "new", ev.NewObjectID)
			}
		}
	}
}

// resolveAll resolves the ref in every project, a few projects at a time.
// Projects without the ref map to "".
func (w *Watcher) resolveAll(ctx context.Context) (map[string]string, error) {
	projects, err := w.source.All(ctx)
	if err != nil {
		return nil, err
	}

	revs := make([]string, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // bound concurrent git processes

	for i, p := range projects {
		g.Go(func() error {
			rev, err := w.source.Revision(gctx, p, w.ref)
			if err != nil {
				return fmt.Errorf("project %s: %w", p, err)
			}
			revs[i] = rev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	current := make(map[string]string, len(projects))
	for i, p := range projects {
		current[p] = revs[i]
	}
	return current, nil
}

// diff returns one event per project whose object id changed, sorted by
// project name.
func diff(ref string, previous, current map[string]string) []Event {
	var events []Event
	for p, newID := range current {
		if oldID := previous[p]; oldID != newID {
			events = append(events, newEvent(p, ref, oldID, newID))
		}
	}
	for p, oldID := range previous {
		if _, ok := current[p]; !ok && oldID != "" {
			events = append(events, newEvent(p, ref, oldID, ""))
		}
	}
	slices.SortFunc(events, func(a, b Event) int {
		return cmp.Compare(a.ProjectName, b.ProjectName)
	})
	return events
}

func newEvent(project, ref, oldID, newID string) Event {
	if oldID == "" {
		oldID = git.ZeroID
	}
	if newID == "" {
		newID = git.ZeroID
	}
	return Event{ProjectName: project, RefName: ref, OldObjectID: oldID, NewObjectID: newID}
}
