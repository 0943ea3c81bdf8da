package engine

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/notation"
)

// Perft counts the leaves of the legal move tree of the given depth. The
// board is restored before returning.
func Perft(board *chess.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(board)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		rec := board.Apply(m)
		nodes += Perft(board, depth-1)
		board.Revert(rec)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by the move in
// coordinate notation.
func Divide(board *chess.Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range LegalMoves(board) {
		rec := board.Apply(m)
		out[notation.MoveToUCI(m)] = Perft(board, depth-1)
		board.Revert(rec)
	}
	return out
}

// Perft counts the leaves below the current position of the game.
func (g *Game) Perft(depth int) uint64 {
	return Perft(g.board.Clone(), depth)
}

// Divide splits the perft count of the current position by root move.
func (g *Game) Divide(depth int) map[string]uint64 {
	return Divide(g.board.Clone(), depth)
}

// DivideGraph renders the root split of a perft run as a Graphviz digraph:
// one root node holding the FEN and total, one child per legal move.
func (g *Game) DivideGraph(depth int) (string, error) {
	split := g.Divide(depth)

	graph := gographviz.NewGraph()
	if err := graph.SetName("perft"); err != nil {
		return "", err
	}
	if err := graph.SetDir(true); err != nil {
		return "", err
	}

	var total uint64
	for _, n := range split {
		total += n
	}

	root := "root"
	rootLabel := strconv.Quote(fmt.Sprintf("%s\ndepth %d: %d", g.FEN(), depth, total))
	if err := graph.AddNode("perft", root, map[string]string{"label": rootLabel, "shape": "box"}); err != nil {
		return "", err
	}

	moves := maps.Keys(split)
	slices.Sort(moves)
	for _, mv := range moves {
		node := "m_" + mv
		label := strconv.Quote(fmt.Sprintf("%s\n%d", mv, split[mv]))
		if err := graph.AddNode("perft", node, map[string]string{"label": label}); err != nil {
			return "", err
		}
		if err := graph.AddEdge(root, node, true, nil); err != nil {
			return "", err
		}
	}
	return graph.String(), nil
}
