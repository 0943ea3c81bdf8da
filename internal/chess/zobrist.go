package chess

// PositionKey identifies a position for repetition detection. It covers
// placement, side to move, castling rights and the en-passant file, and
// deliberately nothing else: two positions differing only in their ply
// counters share a key.
type PositionKey uint64

var (
	zobristPiece     [2][NumKinds][BoardSize * BoardSize]uint64
	zobristCastling  [16]uint64
	zobristEnPassant [BoardSize]uint64
	zobristWhite     uint64
)

func init() {
	initZobrist()
}

// xorshift64* generator with a fixed seed so keys are stable across runs.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x9E3779B97F4A7C15}

	for c := Black; c <= White; c++ {
		for k := Pawn; k <= King; k++ {
			for i := range zobristPiece[c][k] {
				zobristPiece[c][k][i] = rng.next()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.next()
	}
	zobristWhite = rng.next()
}

func pieceKey(p *Piece, sq Square) PositionKey {
	return PositionKey(zobristPiece[p.Colour][p.Kind][sq.Index()])
}

func castlingKey(c CastlingRights) PositionKey {
	return PositionKey(zobristCastling[c&AllCastlingRights])
}

func enPassantKey(sq Square) PositionKey {
	if !sq.Valid() {
		return 0
	}
	return PositionKey(zobristEnPassant[sq.File])
}

func turnKey(c Colour) PositionKey {
	if c == White {
		return PositionKey(zobristWhite)
	}
	return 0
}

// ComputeKey recomputes the position key from scratch. The board keeps its
// key up to date incrementally; this exists to cross-check that bookkeeping.
func (b *Board) ComputeKey() PositionKey {
	var key PositionKey
	for _, p := range b.Pieces() {
		key ^= pieceKey(p, p.Square)
	}
	key ^= castlingKey(b.castling)
	key ^= enPassantKey(b.ghosts[White])
	key ^= enPassantKey(b.ghosts[Black])
	key ^= turnKey(b.turn)
	return key
}
