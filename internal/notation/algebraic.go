package notation

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Castling tokens.
const (
	KingsideCastle  = "O-O"
	QueensideCastle = "O-O-O"
)

// MoveToAlgebraic formats a move that has just been applied to b in
// standard algebraic notation, without check or mate markers. piece is the
// piece that moved (the pawn, for a promotion) and captured is whatever the
// move removed, or nil.
func MoveToAlgebraic(b *chess.Board, m chess.Move, piece, captured *chess.Piece) string {
	switch m.Special {
	case chess.CastleKingside:
		return KingsideCastle
	case chess.CastleQueenside:
		return QueensideCastle
	}

	var sb strings.Builder
	if piece.Kind == chess.Pawn {
		if captured != nil {
			sb.WriteByte(byte('a' + m.From.File))
		}
	} else {
		sb.WriteByte(piece.Kind.Letter())
		sb.WriteString(b.HasSameTarget(m.From, piece))
	}

	if captured != nil {
		sb.WriteByte('x')
	}
	sb.WriteString(SquareToUCI(m.To))

	if m.Promotion != chess.NoKind {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Letter())
	}
	return sb.String()
}
