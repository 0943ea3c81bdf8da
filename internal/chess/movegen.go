package chess

// Direction vectors as (file, rank) deltas.
var (
	knightDeltas   = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas     = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirections = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs     = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

func slidingDirections(kind Kind) [][2]int {
	switch kind {
	case Rook:
		return rookDirections[:]
	case Bishop:
		return bishopDirs[:]
	case Queen:
		return append(rookDirections[:len(rookDirections):len(rookDirections)], bishopDirs[:]...)
	}
	return nil
}

// PseudoLegalMoves returns the moves p could make ignoring whether its own
// king is left in check. Castling candidates are included only when the
// intermediate squares are empty and not controlled by the opponent.
func (b *Board) PseudoLegalMoves(p *Piece) []Move {
	switch p.Kind {
	case Pawn:
		return b.pawnMoves(p)
	case Knight:
		return b.stepMoves(p, knightDeltas[:])
	case King:
		return append(b.stepMoves(p, kingDeltas[:]), b.castlingMoves(p)...)
	case Bishop, Rook, Queen:
		return b.slidingMoves(p)
	}
	return nil
}

// canLand reports whether a piece of colour may finish on sq.
func (b *Board) canLand(colour Colour, sq Square) bool {
	if !sq.Valid() {
		return false
	}
	occupant := b.Get(sq)
	return occupant == nil || occupant.Colour != colour
}

func (b *Board) stepMoves(p *Piece, deltas [][2]int) []Move {
	moves := make([]Move, 0, len(deltas))
	for _, d := range deltas {
		to := p.Square.Offset(d[0], d[1])
		if b.canLand(p.Colour, to) {
			moves = append(moves, Move{From: p.Square, To: to})
		}
	}
	return moves
}

func (b *Board) slidingMoves(p *Piece) []Move {
	var moves []Move
	for _, d := range slidingDirections(p.Kind) {
		for to := p.Square.Offset(d[0], d[1]); to.Valid(); to = to.Offset(d[0], d[1]) {
			occupant := b.Get(to)
			if occupant == nil {
				moves = append(moves, Move{From: p.Square, To: to})
				continue
			}
			if occupant.Colour != p.Colour {
				moves = append(moves, Move{From: p.Square, To: to})
			}
			break
		}
	}
	return moves
}

func (b *Board) pawnMoves(p *Piece) []Move {
	var moves []Move
	dir := ColourOffset(p.Colour)

	addPawnMove := func(to Square, special Special) {
		if to.Rank == PromotionRank(p.Colour) {
			for _, kind := range PromotionKinds {
				moves = append(moves, Move{From: p.Square, To: to, Special: Promotion, Promotion: kind})
			}
			return
		}
		moves = append(moves, Move{From: p.Square, To: to, Special: special})
	}

	one := p.Square.Offset(0, dir)
	if b.IsEmpty(one) {
		addPawnMove(one, NoSpecial)
		two := one.Offset(0, dir)
		if !p.HasMoved && p.Square.Rank == PawnRank(p.Colour) && b.IsEmpty(two) {
			moves = append(moves, Move{From: p.Square, To: two, Special: DoublePush})
		}
	}

	ghost, hasGhost := b.GhostPawn(p.Colour.Opposite())
	for _, df := range [...]int{-1, 1} {
		to := p.Square.Offset(df, dir)
		if !to.Valid() {
			continue
		}
		if occupant := b.Get(to); occupant != nil {
			if occupant.Colour != p.Colour {
				addPawnMove(to, NoSpecial)
			}
			continue
		}
		if hasGhost && to == ghost && b.enPassantVictim(p, to) != nil {
			moves = append(moves, Move{From: p.Square, To: to, Special: EnPassant})
		}
	}
	return moves
}

func (b *Board) castlingMoves(king *Piece) []Move {
	colour := king.Colour
	if king.Square != KingStart(colour) {
		return nil
	}
	opponent := colour.Opposite()
	if b.rules.CastlingRequiresNoCheck && b.IsSquareAttacked(king.Square, opponent) {
		return nil
	}

	var moves []Move
	home := HomeRank(colour)

	tryCastle := func(right CastlingRights, special Special, empty []int, safe []int, kingFile int) {
		if !b.castling.Has(right) {
			return
		}
		rook := b.Get(RookCorner(right))
		if rook == nil || rook.Kind != Rook || rook.Colour != colour {
			return
		}
		for _, f := range empty {
			if !b.IsEmpty(Sq(f, home)) {
				return
			}
		}
		for _, f := range safe {
			if b.IsSquareAttacked(Sq(f, home), opponent) {
				return
			}
		}
		moves = append(moves, Move{From: king.Square, To: Sq(kingFile, home), Special: special})
	}

	tryCastle(KingsideRight(colour), CastleKingside, []int{5, 6}, []int{5, 6}, 6)
	tryCastle(QueensideRight(colour), CastleQueenside, []int{1, 2, 3}, []int{3, 2}, 2)
	return moves
}

// Attacks returns the squares p controls: pawn diagonals, knight and king
// patterns, and slider rays up to and including the first occupied square.
func (b *Board) Attacks(p *Piece) SquareSet {
	var set SquareSet
	switch p.Kind {
	case Pawn:
		dir := ColourOffset(p.Colour)
		set = set.Add(p.Square.Offset(-1, dir)).Add(p.Square.Offset(1, dir))
	case Knight:
		for _, d := range knightDeltas {
			set = set.Add(p.Square.Offset(d[0], d[1]))
		}
	case King:
		for _, d := range kingDeltas {
			set = set.Add(p.Square.Offset(d[0], d[1]))
		}
	case Bishop, Rook, Queen:
		for _, d := range slidingDirections(p.Kind) {
			for to := p.Square.Offset(d[0], d[1]); to.Valid(); to = to.Offset(d[0], d[1]) {
				set = set.Add(to)
				if b.Get(to) != nil {
					break
				}
			}
		}
	}
	return set
}

// ControlledSquares returns the union of every square a piece of colour
// attacks.
func (b *Board) ControlledSquares(colour Colour) SquareSet {
	var set SquareSet
	for _, p := range b.Pieces() {
		if p.Colour == colour {
			set |= b.Attacks(p)
		}
	}
	return set
}

// IsSquareAttacked reports whether any piece of attacker controls sq.
func (b *Board) IsSquareAttacked(sq Square, attacker Colour) bool {
	for _, p := range b.Pieces() {
		if p.Colour == attacker && b.Attacks(p).Has(sq) {
			return true
		}
	}
	return false
}

// IsInCheck reports whether colour's king is attacked. A board without that
// king is never in check.
func (b *Board) IsInCheck(colour Colour) bool {
	king := b.King(colour)
	return king != nil && b.IsSquareAttacked(king.Square, colour.Opposite())
}

// enPassantVictim returns the enemy pawn beside p that an en passant
// capture onto to would remove, or nil.
func (b *Board) enPassantVictim(p *Piece, to Square) *Piece {
	v := b.Get(Sq(to.File, p.Square.Rank))
	if v == nil || v.Kind != Pawn || v.Colour == p.Colour {
		return nil
	}
	return v
}

// MovePiece relocates p to the destination and returns whatever it captured.
// A pawn moving diagonally onto the opponent's ghost square captures the
// pawn that made the double step; nothing else is removed from beside it.
// Castling rooks, promotion and all other bookkeeping are left to Apply.
func (b *Board) MovePiece(p *Piece, to Square) *Piece {
	from := p.Square
	captured := b.lift(to)
	if captured == nil && p.Kind == Pawn && to.File != from.File {
		if ghost, ok := b.GhostPawn(p.Colour.Opposite()); ok && ghost == to {
			if victim := b.enPassantVictim(p, to); victim != nil {
				captured = b.lift(victim.Square)
			}
		}
	}
	b.lift(from)
	b.put(p, to)
	return captured
}
