package hashing

import (
	"sync"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// ThreadSafeCounter wraps RepetitionCounter with mutex protection for
// concurrent access, e.g. tallying final positions across self-play workers.
type ThreadSafeCounter struct {
	counter *RepetitionCounter
	mu      sync.RWMutex
}

// NewThreadSafeCounter creates a new thread-safe counter.
func NewThreadSafeCounter() *ThreadSafeCounter {
	return &ThreadSafeCounter{counter: NewRepetitionCounter()}
}

// Add atomically records one occurrence of key and returns its new count.
func (c *ThreadSafeCounter) Add(key chess.PositionKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counter.Add(key)
}

// Count returns the number of occurrences of key.
func (c *ThreadSafeCounter) Count(key chess.PositionKey) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter.Count(key)
}

// UniqueCount returns the number of distinct keys.
func (c *ThreadSafeCounter) UniqueCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter.Len()
}

// DuplicateCount returns how many recorded occurrences repeated an earlier key.
func (c *ThreadSafeCounter) DuplicateCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter.Total() - c.counter.Len()
}

// Snapshot returns an independent copy of the underlying counter.
func (c *ThreadSafeCounter) Snapshot() *RepetitionCounter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter.Clone()
}
