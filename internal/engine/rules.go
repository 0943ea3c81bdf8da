package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Rules holds the thresholds and rule switches a game is played under.
type Rules struct {
	// NoProgressLimit is the number of plies without a reset after which
	// the game is drawn.
	NoProgressLimit int `yaml:"no_progress_limit"`

	// RepetitionLimit is the number of occurrences of one position that
	// draws the game.
	RepetitionLimit int `yaml:"repetition_limit"`

	CastlingRequiresNoCheck bool `yaml:"castling_requires_no_check"`
	PawnMoveResetsClock     bool `yaml:"pawn_move_resets_clock"`
}

// DefaultRules returns the standard rules: 100 plies, threefold repetition,
// no castling out of check, pawn moves reset the clock.
func DefaultRules() Rules {
	return Rules{
		NoProgressLimit:         100,
		RepetitionLimit:         3,
		CastlingRequiresNoCheck: true,
		PawnMoveResetsClock:     true,
	}
}

// Validate checks the thresholds.
func (r Rules) Validate() error {
	if r.NoProgressLimit < 1 {
		return fmt.Errorf("no-progress limit %d must be positive: %w", r.NoProgressLimit, errors.ErrInvalidConfig)
	}
	if r.RepetitionLimit < 2 {
		return fmt.Errorf("repetition limit %d must be at least 2: %w", r.RepetitionLimit, errors.ErrInvalidConfig)
	}
	return nil
}

// RuleSet returns the move generation switches for the board.
func (r Rules) RuleSet() chess.RuleSet {
	return chess.RuleSet{
		CastlingRequiresNoCheck: r.CastlingRequiresNoCheck,
		PawnMoveResetsClock:     r.PawnMoveResetsClock,
	}
}

// Result is the final score of a game.
type Result int

const (
	NoResult Result = iota
	WhiteWins
	BlackWins
	Draw
)

// String returns the PGN result token.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// Reason says why a game ended.
type Reason int

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	NoProgress
	Repetition
)

// String returns a human readable reason.
func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case NoProgress:
		return "no-progress rule"
	case Repetition:
		return "repetition"
	}
	return "in progress"
}

// Outcome is the terminal state of a game. The zero value means the game is
// still running.
type Outcome struct {
	Result Result
	Reason Reason
}

// String returns e.g. "1-0 (checkmate)".
func (o Outcome) String() string {
	if o.Result == NoResult {
		return "*"
	}
	return o.Result.String() + " (" + o.Reason.String() + ")"
}

// Over reports whether the outcome is terminal.
func (o Outcome) Over() bool {
	return o.Result != NoResult
}

// winFor returns the result in favour of colour.
func winFor(colour chess.Colour) Result {
	if colour == chess.White {
		return WhiteWins
	}
	return BlackWins
}

// HasInsufficientMaterial returns true if the position is a material draw:
// - K vs K
// - K+B vs K or K+N vs K
// - K+B vs K+B with the bishops on opposite colour complexes
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []*chess.Piece

	for _, p := range board.Pieces() {
		switch p.Kind {
		case chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		}
		if p.Colour == chess.White {
			whitePieces = append(whitePieces, p)
		} else {
			blackPieces = append(blackPieces, p)
		}
	}

	// K vs K
	if len(whitePieces) == 0 && len(blackPieces) == 0 {
		return true
	}

	// K+B vs K or K+N vs K
	if len(whitePieces)+len(blackPieces) == 1 {
		return true
	}

	// K+B vs K+B
	if len(whitePieces) == 1 && len(blackPieces) == 1 {
		w, b := whitePieces[0], blackPieces[0]
		if w.Kind == chess.Bishop && b.Kind == chess.Bishop {
			return w.ColourComplex != b.ColourComplex
		}
	}

	return false
}
