// Package hashing counts occurrences of positions by their position key.
package hashing

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// RepetitionCounter tracks how many times each position has occurred.
type RepetitionCounter struct {
	counts map[chess.PositionKey]int
	max    int
}

// NewRepetitionCounter creates an empty counter.
func NewRepetitionCounter() *RepetitionCounter {
	return &RepetitionCounter{counts: make(map[chess.PositionKey]int)}
}

// Add records one occurrence of key and returns its new count.
func (r *RepetitionCounter) Add(key chess.PositionKey) int {
	r.counts[key]++
	n := r.counts[key]
	if n > r.max {
		r.max = n
	}
	return n
}

// Remove takes back one occurrence of key, as when a move is undone.
func (r *RepetitionCounter) Remove(key chess.PositionKey) {
	n, ok := r.counts[key]
	if !ok {
		return
	}
	if n <= 1 {
		delete(r.counts, key)
	} else {
		r.counts[key] = n - 1
	}
	if n == r.max {
		r.recomputeMax()
	}
}

func (r *RepetitionCounter) recomputeMax() {
	r.max = 0
	for _, n := range r.counts {
		if n > r.max {
			r.max = n
		}
	}
}

// Count returns the number of occurrences of key.
func (r *RepetitionCounter) Count(key chess.PositionKey) int {
	return r.counts[key]
}

// Max returns the highest count of any key.
func (r *RepetitionCounter) Max() int {
	return r.max
}

// Len returns the number of distinct keys seen.
func (r *RepetitionCounter) Len() int {
	return len(r.counts)
}

// Total returns the number of occurrences recorded.
func (r *RepetitionCounter) Total() int {
	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}

// Keys returns the distinct keys in ascending order.
func (r *RepetitionCounter) Keys() []chess.PositionKey {
	keys := maps.Keys(r.counts)
	slices.Sort(keys)
	return keys
}

// Reset forgets every recorded position.
func (r *RepetitionCounter) Reset() {
	r.counts = make(map[chess.PositionKey]int)
	r.max = 0
}

// Clone returns an independent copy of the counter.
func (r *RepetitionCounter) Clone() *RepetitionCounter {
	return &RepetitionCounter{counts: maps.Clone(r.counts), max: r.max}
}
