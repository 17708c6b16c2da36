// Package workqueue runs submitted tasks in the background on a named queue
// with a fixed number of concurrent workers.
//
// The backlog is unbounded: Submit never blocks. With a capacity of one,
// tasks run one at a time in submission order.
package workqueue

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/dlcmd/internal/log"
)

// ErrStopped is returned by Submit after Stop.
var ErrStopped = errors.New("work queue stopped")

// Task is a unit of work. A returned error is logged, it does not stop the queue.
type Task func(ctx context.Context) error

// Queue dispatches tasks to at most capacity concurrent workers.
type Queue struct {
	name  string
	group errgroup.Group

	mu      sync.Mutex
	pending []Task
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// New starts a queue. Tasks receive ctx; the logger attached to ctx is used
// to report task failures.
func New(ctx context.Context, name string, capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	q := &Queue{
		name: name,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	q.group.SetLimit(capacity)
	go q.run(ctx)
	return q
}

// Name returns the queue name.
func (q *Queue) Name() string {
	return q.name
}

// Submit schedules task. It never blocks.
func (q *Queue) Submit(task Task) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrStopped
	}
	q.pending = append(q.pending, task)
	q.mu.Unlock()

	q.notify()
	return nil
}

// Pending returns the number of tasks not yet handed to a worker.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stop rejects new tasks, runs the backlog to completion and waits for
// all workers to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.notify()
	<-q.done
	_ = q.group.Wait() // tasks never return errors to the group
}

func (q *Queue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	l := log.FromContext(ctx)

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		task := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		// blocks while all workers are busy
		q.group.Go(func() error {
			if err := task(ctx); err != nil {
				l.Printf("Warning: task on queue %s failed: %v\n", q.name, err)
			}
			return nil
		})
	}
}
