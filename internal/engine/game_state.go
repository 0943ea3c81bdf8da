package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// isCheckmate reports whether the side to move, with the given legal moves,
// is checkmated.
func isCheckmate(board *chess.Board, legal []chess.Move) bool {
	return len(legal) == 0 && board.IsInCheck(board.Turn())
}

// isStalemate reports whether the side to move, with the given legal moves,
// is stalemated.
func isStalemate(board *chess.Board, legal []chess.Move) bool {
	return len(legal) == 0 && !board.IsInCheck(board.Turn())
}
