package output

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/notation"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID         string          `json:"id,omitempty"`
	InitialFEN string          `json:"initialFEN"`
	FinalFEN   string          `json:"finalFEN"`
	Moves      []JSONMove      `json:"moves,omitempty"`
	PlyCount   int             `json:"plyCount"`
	Result     string          `json:"result"`
	Reason     string          `json:"reason,omitempty"`
	InCheck    bool            `json:"inCheck,omitempty"`
	Legal      []JSONLegalMove `json:"legal,omitempty"`
}

// JSONMove represents a played move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen"`
}

// JSONLegalMove is a move available in the final position.
type JSONLegalMove struct {
	UCI string `json:"uci"`
	SAN string `json:"san"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game. Per-move detail comes from replaying a copy
// of the game from its start position; g itself is not modified.
func GameToJSON(g *engine.Game, includeLegal bool) (*JSONGame, error) {
	jg := &JSONGame{
		ID:         g.ID(),
		InitialFEN: g.StartFEN(),
		FinalFEN:   g.FEN(),
		PlyCount:   g.Ply(),
		Result:     g.Outcome().Result.String(),
	}
	if o := g.Outcome(); o.Over() {
		jg.Reason = o.Reason.String()
	} else {
		jg.InCheck = g.InCheck()
	}

	moves, err := convertMoveList(g)
	if err != nil {
		return nil, err
	}
	jg.Moves = moves

	if includeLegal {
		uci := g.LegalMovesUCI()
		san := g.LegalMovesAlgebraic()
		jg.Legal = make([]JSONLegalMove, len(uci))
		for i := range uci {
			jg.Legal[i] = JSONLegalMove{UCI: uci[i], SAN: san[i]}
		}
	}
	return jg, nil
}

func convertMoveList(g *engine.Game) ([]JSONMove, error) {
	uci := g.UCIHistory()
	if len(uci) == 0 {
		return nil, nil
	}
	san := g.SANHistory()

	replay, err := engine.NewGameFromFEN(g.StartFEN(), engine.WithRules(g.Rules()))
	if err != nil {
		return nil, err
	}
	moveNum := replay.Board().FullMoveNumber()

	moves := make([]JSONMove, 0, len(uci))
	for i, text := range uci {
		board := replay.Board()
		m, err := notation.ParseUCI(text)
		if err != nil {
			return nil, err
		}
		jm := convertSingleMove(board, m, moveNum)
		jm.UCI = text
		jm.SAN = san[i]

		if err := replay.PlayUCI(text); err != nil {
			return nil, err
		}
		jm.FEN = replay.FEN()
		moves = append(moves, jm)

		if board.Turn() == chess.Black {
			moveNum++
		}
	}
	return moves, nil
}

// convertSingleMove describes m as played on board.
func convertSingleMove(board *chess.Board, m chess.Move, moveNum int) JSONMove {
	jm := JSONMove{
		MoveNumber: moveNum,
		Color:      colorName(board.Turn()),
		From:       m.From.String(),
		To:         m.To.String(),
	}

	mover := board.Get(m.From)
	if mover != nil {
		jm.Piece = pieceTypeName(mover.Kind)
	}
	if target := board.Get(m.To); target != nil {
		jm.Captured = pieceTypeName(target.Kind)
	} else if mover != nil && mover.Kind == chess.Pawn && m.From.File != m.To.File {
		jm.Captured = pieceTypeName(chess.Pawn)
	}
	if m.Promotion != chess.NoKind {
		jm.Promotion = pieceTypeName(m.Promotion)
	}
	return jm
}

func colorName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

func pieceTypeName(k chess.Kind) string {
	return strings.ToLower(k.String())
}
