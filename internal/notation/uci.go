// Package notation translates between internal moves and UCI or standard
// algebraic text.
package notation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

var uciPattern = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([qrbn]?)$`)

// ParseUCI parses coordinate notation such as "e2e4" or "e7e8q". The
// returned move carries no special class; match it against generated moves
// with chess.Move.SameAs.
func ParseUCI(text string) (chess.Move, error) {
	m := uciPattern.FindStringSubmatch(text)
	if m == nil {
		return chess.Move{}, fmt.Errorf("%q is not [a-h][1-8][a-h][1-8][qrbn]: %w", text, errors.ErrInvalidMoveText)
	}

	from, _ := ParseSquare(m[1])
	to, _ := ParseSquare(m[2])
	move := chess.Move{From: from, To: to}
	if m[3] != "" {
		move.Special = chess.Promotion
		move.Promotion = chess.KindFromLetter(m[3][0])
	}
	return move, nil
}

// ParseSquare parses a coordinate like "e4".
func ParseSquare(text string) (chess.Square, error) {
	if len(text) != 2 || text[0] < 'a' || text[0] > 'h' || text[1] < '1' || text[1] > '8' {
		return chess.NoSquare, fmt.Errorf("%q is not a square: %w", text, errors.ErrInvalidMoveText)
	}
	return chess.Sq(int(text[0]-'a'), int(text[1]-'1')), nil
}

// SquareToUCI returns the coordinate name of a square.
func SquareToUCI(sq chess.Square) string {
	return sq.String()
}

// MoveToUCI formats a move in coordinate notation, promotion letter in
// lowercase.
func MoveToUCI(m chess.Move) string {
	s := SquareToUCI(m.From) + SquareToUCI(m.To)
	if m.Promotion != chess.NoKind {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// MovesToUCI joins a move list with single spaces.
func MovesToUCI(moves []chess.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = MoveToUCI(m)
	}
	return strings.Join(parts, " ")
}
