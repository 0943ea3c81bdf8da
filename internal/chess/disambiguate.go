package chess

// HasSameTarget returns the SAN disambiguation prefix for a move that has
// already been played: piece now stands on its destination and start is the
// square it came from. The result is empty when no other piece of the same
// kind and colour could have reached the destination, the origin file when
// that suffices, otherwise the origin rank, otherwise the whole origin square.
// Pawns and kings never need one, and a pinned rival does not count.
func (b *Board) HasSameTarget(start Square, piece *Piece) string {
	if piece.Kind == Pawn || piece.Kind == King {
		return ""
	}
	target := piece.Square

	// Evaluate rivals with the mover back on its origin square, where it may
	// have been blocking one of their lines.
	b.lift(target)
	b.put(piece, start)
	defer func() {
		b.lift(start)
		b.put(piece, target)
	}()

	contested, sameFile, sameRank := false, false, false
	for _, rival := range b.PiecesOf(piece.Colour, piece.Kind) {
		if rival == piece || !b.reaches(rival, target) {
			continue
		}
		contested = true
		if rival.Square.File == start.File {
			sameFile = true
		}
		if rival.Square.Rank == start.Rank {
			sameRank = true
		}
	}

	switch {
	case !contested:
		return ""
	case !sameFile:
		return string(rune('a' + start.File))
	case !sameRank:
		return string(rune('1' + start.Rank))
	default:
		return start.String()
	}
}

// reaches reports whether p has a legal move to target.
func (b *Board) reaches(p *Piece, target Square) bool {
	for _, m := range b.PseudoLegalMoves(p) {
		if m.To != target {
			continue
		}
		rec := b.Apply(m)
		safe := !b.IsInCheck(p.Colour)
		b.Revert(rec)
		if safe {
			return true
		}
	}
	return false
}
