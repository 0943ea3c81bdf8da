package chess

// MoveRecord holds everything needed to take a move back.
type MoveRecord struct {
	Move  Move
	Piece *Piece

	// Captured is the piece removed by the move. For en passant it was not
	// standing on Move.To; its Square field still names where it stood.
	Captured *Piece

	// Promoted replaces Piece on Move.To after a promotion.
	Promoted *Piece

	// Rook is the rook relocated by castling.
	Rook     *Piece
	RookFrom Square
	RookTo   Square

	prevHasMoved     bool
	prevRookHasMoved bool
	prevCastling     CastlingRights
	prevGhosts       [2]Square
	prevNoProgress   int
	prevFullMove     int
	prevTurn         Colour
	prevKey          PositionKey
}

// Apply plays m on the board without any legality check and returns the
// record needed to revert it. m.From must hold a piece of the side to move.
func (b *Board) Apply(m Move) *MoveRecord {
	p := b.Get(m.From)
	if p == nil {
		panic("chess: Apply from empty square " + m.From.String())
	}

	rec := &MoveRecord{
		Move:           m,
		Piece:          p,
		prevHasMoved:   p.HasMoved,
		prevCastling:   b.castling,
		prevGhosts:     b.ghosts,
		prevNoProgress: b.noProgress,
		prevFullMove:   b.fullMove,
		prevTurn:       b.turn,
		prevKey:        b.key,
	}

	rec.Captured = b.MovePiece(p, m.To)

	if p.Kind == King && abs(m.To.File-m.From.File) == 2 {
		b.castleRook(rec)
	}

	if m.Promotion != NoKind {
		b.lift(m.To)
		promoted := NewPiece(p.Colour, m.Promotion, m.To)
		promoted.HasMoved = true
		b.put(promoted, m.To)
		rec.Promoted = promoted
	}

	p.HasMoved = true

	lost := CornerRight(m.From)
	if rec.Captured != nil {
		lost |= CornerRight(rec.Captured.Square)
	}
	if p.Kind == King {
		lost |= RightsOf(p.Colour)
	}
	if lost != NoCastling {
		b.RemoveCastlingRights(lost)
	}

	if rec.Captured != nil || (p.Kind == Pawn && b.rules.PawnMoveResetsClock) {
		b.noProgress = 0
	} else {
		b.noProgress++
	}

	if p.Colour == Black {
		b.fullMove++
	}

	if p.Kind == Pawn && abs(m.To.Rank-m.From.Rank) == 2 {
		b.ActivateGhostPawn(Sq(m.From.File, (m.From.Rank+m.To.Rank)/2), p.Colour)
	}

	b.SetTurn(p.Colour.Opposite())
	b.DeactivateGhostPawn(b.turn)

	return rec
}

func (b *Board) castleRook(rec *MoveRecord) {
	m := rec.Move
	rookFrom, rookTo := Sq(BoardSize-1, m.From.Rank), Sq(5, m.From.Rank)
	if m.To.File < m.From.File {
		rookFrom, rookTo = Sq(0, m.From.Rank), Sq(3, m.From.Rank)
	}
	rook := b.lift(rookFrom)
	if rook == nil {
		return
	}
	rec.Rook, rec.RookFrom, rec.RookTo = rook, rookFrom, rookTo
	rec.prevRookHasMoved = rook.HasMoved
	b.put(rook, rookTo)
	rook.HasMoved = true
}

// Revert undoes the move described by rec. Records must be reverted in the
// reverse order they were applied.
func (b *Board) Revert(rec *MoveRecord) {
	m := rec.Move
	p := rec.Piece

	b.lift(m.To)
	b.put(p, m.From)
	p.HasMoved = rec.prevHasMoved

	if rec.Rook != nil {
		b.lift(rec.RookTo)
		b.put(rec.Rook, rec.RookFrom)
		rec.Rook.HasMoved = rec.prevRookHasMoved
	}

	if rec.Captured != nil {
		b.put(rec.Captured, rec.Captured.Square)
	}

	b.castling = rec.prevCastling
	b.ghosts = rec.prevGhosts
	b.noProgress = rec.prevNoProgress
	b.fullMove = rec.prevFullMove
	b.turn = rec.prevTurn
	b.key = rec.prevKey
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
