package chess

import "math/bits"

// SquareSet is a set of squares indexed by Square.Index.
type SquareSet uint64

// Add returns the set with sq included. Off-board squares are ignored.
func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.Valid() {
		return s
	}
	return s | 1<<uint(sq.Index())
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.Valid() && s&(1<<uint(sq.Index())) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares lists the members in index order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		i := bits.TrailingZeros64(v)
		out = append(out, Sq(i%BoardSize, i/BoardSize))
	}
	return out
}
