package chess

import "strings"

// RuleSet holds the two rule points that earlier versions of the engine
// disagreed on. The zero value is not the standard rules; use DefaultRuleSet.
type RuleSet struct {
	// CastlingRequiresNoCheck forbids castling while the king is attacked.
	CastlingRequiresNoCheck bool

	// PawnMoveResetsClock resets the no-progress counter on every pawn move,
	// not only on captures.
	PawnMoveResetsClock bool
}

// DefaultRuleSet returns the standard FIDE behaviour.
func DefaultRuleSet() RuleSet {
	return RuleSet{CastlingRequiresNoCheck: true, PawnMoveResetsClock: true}
}

// Board represents a chess board with all state needed for the game.
type Board struct {
	// grid[file][rank]; nil for an empty square.
	grid [BoardSize][BoardSize]*Piece

	// Who has the next move.
	turn Colour

	castling CastlingRights

	// ghosts holds, per colour, the square a pawn of that colour skipped on
	// its double step during the previous ply. NoSquare when inactive.
	ghosts [2]Square

	// Plies since the last reset of the no-progress counter.
	noProgress int

	// Starts at 1 and increments after each Black move.
	fullMove int

	rules RuleSet
	key   PositionKey
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	b := &Board{
		turn:     White,
		fullMove: 1,
		ghosts:   [2]Square{NoSquare, NoSquare},
		rules:    DefaultRuleSet(),
	}
	b.key = b.ComputeKey()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range backRank {
		b.Set(Sq(file, 0), NewPiece(White, kind, Sq(file, 0)))
		b.Set(Sq(file, 1), NewPiece(White, Pawn, Sq(file, 1)))
		b.Set(Sq(file, 6), NewPiece(Black, Pawn, Sq(file, 6)))
		b.Set(Sq(file, 7), NewPiece(Black, kind, Sq(file, 7)))
	}
	b.SetCastlingRights(AllCastlingRights)
}

// Clear empties the board and resets all state to an empty White-to-move
// position. The rule set is kept.
func (b *Board) Clear() {
	rules := b.rules
	*b = *NewBoard()
	b.rules = rules
}

// Rules returns the rule set the board generates moves under.
func (b *Board) Rules() RuleSet { return b.rules }

// SetRules replaces the rule set.
func (b *Board) SetRules(r RuleSet) { b.rules = r }

// Get returns the piece on sq, or nil when the square is empty or off-board.
func (b *Board) Get(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b.grid[sq.File][sq.Rank]
}

// IsEmpty reports whether sq is on the board and unoccupied.
func (b *Board) IsEmpty(sq Square) bool {
	return sq.Valid() && b.grid[sq.File][sq.Rank] == nil
}

// Set places p on sq, replacing any occupant. A nil p clears the square.
func (b *Board) Set(sq Square, p *Piece) {
	if !sq.Valid() {
		return
	}
	b.lift(sq)
	if p != nil {
		b.put(p, sq)
	}
}

// put stores p on an empty square and updates its position.
func (b *Board) put(p *Piece, sq Square) {
	b.grid[sq.File][sq.Rank] = p
	p.Square = sq
	b.key ^= pieceKey(p, sq)
}

// lift removes and returns the occupant of sq. The piece keeps its old
// Square so it can be put back.
func (b *Board) lift(sq Square) *Piece {
	p := b.grid[sq.File][sq.Rank]
	if p == nil {
		return nil
	}
	b.grid[sq.File][sq.Rank] = nil
	b.key ^= pieceKey(p, sq)
	return p
}

// Turn returns the side to move.
func (b *Board) Turn() Colour { return b.turn }

// SetTurn sets the side to move.
func (b *Board) SetTurn(c Colour) {
	b.key ^= turnKey(b.turn)
	b.turn = c
	b.key ^= turnKey(b.turn)
}

// CastlingRights returns the rights still held.
func (b *Board) CastlingRights() CastlingRights { return b.castling }

// SetCastlingRights replaces the castling rights.
func (b *Board) SetCastlingRights(c CastlingRights) {
	b.key ^= castlingKey(b.castling)
	b.castling = c & AllCastlingRights
	b.key ^= castlingKey(b.castling)
}

// RemoveCastlingRights drops the given rights.
func (b *Board) RemoveCastlingRights(r CastlingRights) {
	b.SetCastlingRights(b.castling &^ r)
}

// GhostPawn returns the en-passant target left by colour's last double step.
func (b *Board) GhostPawn(colour Colour) (Square, bool) {
	sq := b.ghosts[colour]
	return sq, sq.Valid()
}

// ActivateGhostPawn marks target as the square a pawn of colour just skipped.
func (b *Board) ActivateGhostPawn(target Square, colour Colour) {
	b.key ^= enPassantKey(b.ghosts[colour])
	b.ghosts[colour] = target
	b.key ^= enPassantKey(target)
}

// DeactivateGhostPawn clears colour's en-passant target.
func (b *Board) DeactivateGhostPawn(colour Colour) {
	b.ActivateGhostPawn(NoSquare, colour)
}

// EnPassantSquare returns whichever ghost pawn is active. At most one can be
// active between moves.
func (b *Board) EnPassantSquare() (Square, bool) {
	if sq, ok := b.GhostPawn(b.turn.Opposite()); ok {
		return sq, true
	}
	return b.GhostPawn(b.turn)
}

// NoProgressPlies returns the half-move clock.
func (b *Board) NoProgressPlies() int { return b.noProgress }

// SetNoProgressPlies sets the half-move clock.
func (b *Board) SetNoProgressPlies(n int) { b.noProgress = n }

// FullMoveNumber returns the move number.
func (b *Board) FullMoveNumber() int { return b.fullMove }

// SetFullMoveNumber sets the move number.
func (b *Board) SetFullMoveNumber(n int) { b.fullMove = n }

// Key returns the incrementally maintained position key.
func (b *Board) Key() PositionKey { return b.key }

// Pieces returns all pieces on the board, rank 1 first, a-file first.
func (b *Board) Pieces() []*Piece {
	pieces := make([]*Piece, 0, 32)
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p := b.grid[file][rank]; p != nil {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// PiecesOf returns the pieces of one colour, optionally restricted to one
// kind (NoKind matches all kinds).
func (b *Board) PiecesOf(colour Colour, kind Kind) []*Piece {
	var out []*Piece
	for _, p := range b.Pieces() {
		if p.Colour == colour && (kind == NoKind || p.Kind == kind) {
			out = append(out, p)
		}
	}
	return out
}

// King returns colour's king, or nil if the board has none.
func (b *Board) King(colour Colour) *Piece {
	for _, p := range b.Pieces() {
		if p.Colour == colour && p.Kind == King {
			return p
		}
	}
	return nil
}

// Clone returns a deep copy of the board. Pieces are copied, so the clone
// shares no mutable state with b.
func (b *Board) Clone() *Board {
	c := *b
	for file := range c.grid {
		for rank := range c.grid[file] {
			if p := c.grid[file][rank]; p != nil {
				c.grid[file][rank] = p.clone()
			}
		}
	}
	return &c
}

// String renders the board as an 8x8 diagram, rank 8 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < BoardSize; file++ {
			if p := b.grid[file][rank]; p != nil {
				sb.WriteByte(p.Letter())
			} else {
				sb.WriteByte('.')
			}
			if file < BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
