package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// courtLocks serializes commit-time admission per court. Courts are
// independent lock domains; no cross-court locking. Probe and heatmap
// reads never take these locks.
type courtLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newCourtLocks() *courtLocks {
	return &courtLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for a court and returns its unlock func.
func (c *courtLocks) Lock(courtID uuid.UUID) func() {
	c.mu.Lock()
	lock, ok := c.locks[courtID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[courtID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
