package task

import (
	"sync"

	"github.com/google/uuid"
)

// JobRegistry is the set of studyset IDs that currently have a running poll
// task. An entry is added by whoever schedules the poll task and removed by
// the poll task itself when it exits.
type JobRegistry struct {
	mu     sync.Mutex
	active map[uuid.UUID]struct{}
}

// NewJobRegistry returns an empty registry.
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{active: make(map[uuid.UUID]struct{})}
}

// TryAcquire adds id and reports true if it was absent. It reports false
// when another poll task already owns id.
func (r *JobRegistry) TryAcquire(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.active[id]; ok {
		return false
	}
	r.active[id] = struct{}{}
	return true
}

// Release removes id. Releasing an absent id is a no-op.
func (r *JobRegistry) Release(id uuid.UUID) {
	r.mu.Lock()
	delete(r.active, id)
	r.mu.Unlock()
}

// Contains reports whether a poll task currently owns id.
func (r *JobRegistry) Contains(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[id]
	return ok
}

// Len returns the number of active entries.
func (r *JobRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
