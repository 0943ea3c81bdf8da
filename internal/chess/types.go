// Package chess provides the board, piece and move model of the rules engine,
// pseudo-legal move generation and reversible move application.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter of either case to a kind.
// It returns NoKind for anything else.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return NoKind
	}
}

// PromotionKinds lists the kinds a pawn may promote to, in generation order.
var PromotionKinds = [...]Kind{Queen, Rook, Bishop, Knight}

// BoardSize is the number of files and ranks.
const BoardSize = 8

// Square identifies a board cell. File 0 is the a-file and Rank 0 is the
// first rank.
type Square struct {
	File int
	Rank int
}

// NoSquare is the zero-information square used for inactive ghost pawns.
var NoSquare = Square{File: -1, Rank: -1}

// Sq builds a square from file and rank indices.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Offset returns the square df files and dr ranks away.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// Index returns the 0..63 index of the square, a1 = 0, h8 = 63.
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// String returns the coordinate name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

// IsLightSquare returns true if the given square is a light square.
func IsLightSquare(s Square) bool {
	return (s.File+s.Rank)%2 == 1
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index of a colour.
func HomeRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRank returns the rank index pawns of a colour start on.
func PawnRank(colour Colour) int {
	if colour == White {
		return 1
	}
	return BoardSize - 2
}

// PromotionRank returns the rank index on which pawns of a colour promote.
func PromotionRank(colour Colour) int {
	return HomeRank(colour.Opposite())
}

// Special classifies moves with side effects beyond relocating one piece.
type Special int

const (
	NoSpecial Special = iota
	Promotion
	DoublePush
	EnPassant
	CastleKingside
	CastleQueenside
)

// String returns the name of a move special.
func (s Special) String() string {
	switch s {
	case Promotion:
		return "promotion"
	case DoublePush:
		return "double-push"
	case EnPassant:
		return "en-passant"
	case CastleKingside:
		return "castle-kingside"
	case CastleQueenside:
		return "castle-queenside"
	}
	return "none"
}

// Move is a from/to pair plus the special effect class of the move.
// Promotion is NoKind unless Special is Promotion.
type Move struct {
	From      Square
	To        Square
	Special   Special
	Promotion Kind
}

// IsCastle returns true if the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Special == CastleKingside || m.Special == CastleQueenside
}

// IsPromotion returns true if the move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Special == Promotion
}

// SameAs reports whether two moves agree on origin, destination and
// promotion kind. Text notations carry no special class, so moves parsed
// from text are matched against generated moves with SameAs.
func (m Move) SameAs(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promotion == other.Promotion
}

// CastlingRights is a bit set keyed by the four corner rooks.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling       CastlingRights = 0
	AllCastlingRights               = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r is held.
func (c CastlingRights) Has(r CastlingRights) bool {
	return r != 0 && c&r == r
}

// KingsideRight returns the kingside right of a colour.
func KingsideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// QueensideRight returns the queenside right of a colour.
func QueensideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// RightsOf returns both rights of a colour.
func RightsOf(colour Colour) CastlingRights {
	return KingsideRight(colour) | QueensideRight(colour)
}

// RookCorner returns the starting square of the rook a right refers to.
func RookCorner(right CastlingRights) Square {
	switch right {
	case WhiteKingside:
		return Sq(7, 0)
	case WhiteQueenside:
		return Sq(0, 0)
	case BlackKingside:
		return Sq(7, 7)
	case BlackQueenside:
		return Sq(0, 7)
	}
	return NoSquare
}

// CornerRight returns the right tied to a corner square, or NoCastling.
func CornerRight(sq Square) CastlingRights {
	for _, r := range [...]CastlingRights{WhiteKingside, WhiteQueenside, BlackKingside, BlackQueenside} {
		if RookCorner(r) == sq {
			return r
		}
	}
	return NoCastling
}

// KingStart returns the square a king must stand on to castle.
func KingStart(colour Colour) Square {
	return Sq(4, HomeRank(colour))
}
