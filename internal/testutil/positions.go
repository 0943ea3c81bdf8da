package testutil

import "strings"

// Well known positions.
const (
	StartFEN  = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	Kiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	Position3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	Position4 = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	Position5 = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	Position6 = "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
)

// PerftCase is a position with its published leaf counts; Counts[i] is the
// count at depth i+1.
type PerftCase struct {
	Name   string
	FEN    string
	Counts []uint64
}

// PerftCases returns the published perft fixtures.
func PerftCases() []PerftCase {
	return []PerftCase{
		{Name: "start", FEN: StartFEN, Counts: []uint64{20, 400, 8902, 197281}},
		{Name: "kiwipete", FEN: Kiwipete, Counts: []uint64{48, 2039, 97862}},
		{Name: "position3", FEN: Position3, Counts: []uint64{14, 191, 2812, 43238}},
		{Name: "position4", FEN: Position4, Counts: []uint64{6, 264, 9467}},
		{Name: "position5", FEN: Position5, Counts: []uint64{44, 1486, 62379}},
		{Name: "position6", FEN: Position6, Counts: []uint64{46, 2079, 89890}},
	}
}

// Moves splits a space separated move list.
func Moves(s string) []string {
	return strings.Fields(s)
}
