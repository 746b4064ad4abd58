package cache

import (
	"context"
	"errors"
	"sync"
)

// Tasks is an explicit post-commit hook list attached to a unit of work.
// Services queue cache invalidations here instead of running them inline;
// the owner of the unit of work drains the list synchronously once the
// mutations are committed: an HTTP handler after the store call, the sync
// engine at the end of a reconciliation pass.
type Tasks struct {
	mu    sync.Mutex
	hooks []func(context.Context) error
}

// NewTasks creates an empty hook list
func NewTasks() *Tasks {
	return &Tasks{}
}

// Add queues a hook
func (t *Tasks) Add(hook func(context.Context) error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hooks = append(t.hooks, hook)
}

// Len returns the number of queued hooks
func (t *Tasks) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.hooks)
}

// Flush runs all queued hooks in order and empties the list. A failing
// hook does not stop the rest; errors are joined.
func (t *Tasks) Flush(ctx context.Context) error {
	t.mu.Lock()
	hooks := t.hooks
	t.hooks = nil
	t.mu.Unlock()

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
