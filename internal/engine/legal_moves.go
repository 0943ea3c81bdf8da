package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// LegalMoves returns every legal move for the side to move. Each pseudo-legal
// candidate is applied, kept if the mover's king is outside the opponent's
// controlled squares, and reverted before the next candidate is tried.
func LegalMoves(board *chess.Board) []chess.Move {
	mover := board.Turn()
	var legal []chess.Move
	for _, p := range board.PiecesOf(mover, chess.NoKind) {
		for _, m := range board.PseudoLegalMoves(p) {
			if leavesKingSafe(board, m, mover) {
				legal = append(legal, m)
			}
		}
	}
	return legal
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	mover := board.Turn()
	for _, p := range board.PiecesOf(mover, chess.NoKind) {
		for _, m := range board.PseudoLegalMoves(p) {
			if leavesKingSafe(board, m, mover) {
				return true
			}
		}
	}
	return false
}

func leavesKingSafe(board *chess.Board, m chess.Move, mover chess.Colour) bool {
	rec := board.Apply(m)
	defer board.Revert(rec)

	king := board.King(mover)
	return king == nil || !board.ControlledSquares(mover.Opposite()).Has(king.Square)
}
