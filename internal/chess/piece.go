package chess

import "unicode"

// Piece is a tagged variant over the six kinds. Per-kind behaviour is
// dispatched on Kind by the board; only the flags relevant to a kind are used.
type Piece struct {
	Colour Colour
	Kind   Kind
	Square Square

	// HasMoved blocks a pawn's double step and, for rooks and kings,
	// castling eligibility.
	HasMoved bool

	// ColourComplex is true for a bishop standing on light squares.
	ColourComplex bool

	// InCheck is cached for kings by the game controller.
	InCheck bool
}

// NewPiece creates a piece standing on sq.
func NewPiece(colour Colour, kind Kind, sq Square) *Piece {
	p := &Piece{Colour: colour, Kind: kind, Square: sq}
	if kind == Bishop {
		p.ColourComplex = IsLightSquare(sq)
	}
	return p
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black.
func (p *Piece) Letter() byte {
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// String returns e.g. "White Knight on g1".
func (p *Piece) String() string {
	return p.Colour.String() + " " + p.Kind.String() + " on " + p.Square.String()
}

// clone returns an independent copy of the piece.
func (p *Piece) clone() *Piece {
	c := *p
	return &c
}
