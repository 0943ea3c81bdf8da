package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/engine"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
)

// playGame plays UCI moves from fen, or the standard position when fen is "".
func playGame(t *testing.T, fen, moves string) *engine.Game {
	t.Helper()
	if fen == "" {
		fen = engine.InitialFEN
	}
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	for _, m := range strings.Fields(moves) {
		if err := g.PlayUCI(m); err != nil {
			t.Fatalf("PlayUCI(%q): %v", m, err)
		}
	}
	return g
}

const scholarsMate = "e2e4 e7e5 f1c4 b8c6 d1h5 g8f6 h5f7"

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewGameWriter(&buf, FormatText, Options{Legal: true})
	if err != nil {
		t.Fatalf("NewGameWriter: %v", err)
	}
	if err := w.WriteGame(playGame(t, "", "e2e4")); err != nil {
		t.Fatalf("WriteGame: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"4 . . . . P . . .",
		"FEN: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"Moves: 1. e4",
		"Status: *",
		"Legal moves (20):",
		"  g8f6   Nf6",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPGNWriter_WriteGame(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewGameWriter(&buf, FormatPGN, Options{Tags: map[string]string{"White": "Fischer", "Event": `The "Match"`}})
	if err != nil {
		t.Fatalf("NewGameWriter: %v", err)
	}
	if err := w.WriteGame(playGame(t, "", scholarsMate)); err != nil {
		t.Fatalf("WriteGame: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`[Event "The \"Match\""]`,
		`[White "Fischer"]`,
		`[Black "?"]`,
		`[Result "1-0"]`,
		`[Termination "checkmate"]`,
		"1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7 1-0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[SetUp") {
		t.Error("standard start should not carry a SetUp tag")
	}
	if strings.Index(out, "[Event") > strings.Index(out, "[Result") {
		t.Error("roster tags out of order")
	}
}

func TestPGNWriter_FromFEN(t *testing.T) {
	fen := "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	var buf bytes.Buffer
	w := &PGNWriter{w: &buf}
	if err := w.WriteGame(playGame(t, fen, "e2e4")); err != nil {
		t.Fatalf("WriteGame: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `[SetUp "1"]`) || !strings.Contains(out, `[FEN "`+fen+`"]`) {
		t.Errorf("missing setup tags:\n%s", out)
	}
	if !strings.Contains(out, "1. e4 *") {
		t.Errorf("unfinished game should end with *:\n%s", out)
	}
	if strings.Contains(out, "Termination") {
		t.Error("unfinished game should not carry a Termination tag")
	}
}

func TestLineWriter_Wraps(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf, 12)
	for _, tok := range []string{"1.", "e4", "e5", "2.", "Nf3", "Nc6", ""} {
		lw.Write(tok)
	}
	lw.NewLine()

	want := "1. e4 e5 2.\nNf3 Nc6\n"
	if buf.String() != want {
		t.Errorf("got %q; want %q", buf.String(), want)
	}
}

func TestEscapeTagValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{`a "b"`, `a \"b\"`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeTagValue(tt.in); got != tt.want {
			t.Errorf("escapeTagValue(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func decodeGame(t *testing.T, data []byte) JSONGame {
	t.Helper()
	var jg JSONGame
	if err := json.Unmarshal(data, &jg); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	return jg
}

func TestJSONWriter_Single(t *testing.T) {
	g := playGame(t, "", scholarsMate)
	plies := g.Ply()

	var buf bytes.Buffer
	w, err := NewGameWriter(&buf, FormatJSON, Options{})
	if err != nil {
		t.Fatalf("NewGameWriter: %v", err)
	}
	if err := w.WriteGame(g); err != nil {
		t.Fatalf("WriteGame: %v", err)
	}
	if g.Ply() != plies {
		t.Error("conversion should not change the game")
	}

	jg := decodeGame(t, buf.Bytes())
	if jg.Result != "1-0" || jg.Reason != "checkmate" || jg.PlyCount != 7 {
		t.Errorf("result/reason/plies = %s/%s/%d", jg.Result, jg.Reason, jg.PlyCount)
	}
	if jg.ID != g.ID() {
		t.Errorf("ID = %q; want %q", jg.ID, g.ID())
	}
	if jg.InitialFEN != engine.InitialFEN || jg.FinalFEN != g.FEN() {
		t.Error("FENs not carried over")
	}
	if len(jg.Moves) != 7 {
		t.Fatalf("moves = %d; want 7", len(jg.Moves))
	}

	first := jg.Moves[0]
	wantFirst := JSONMove{
		MoveNumber: 1, Color: "white", SAN: "e4", UCI: "e2e4", From: "e2", To: "e4", Piece: "pawn",
		FEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	}
	if first != wantFirst {
		t.Errorf("first move = %+v; want %+v", first, wantFirst)
	}

	last := jg.Moves[6]
	if last.MoveNumber != 4 || last.Color != "white" || last.Piece != "queen" || last.Captured != "pawn" || last.SAN != "Qxf7" {
		t.Errorf("last move = %+v", last)
	}
	if len(jg.Legal) != 0 {
		t.Error("legal moves only when asked for")
	}
}

func TestJSONWriter_SpecialMoves(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		moves   string
		check   func(JSONMove) bool
		inCheck bool
	}{
		{
			name:  "en passant",
			moves: "e2e4 a7a6 e4e5 d7d5 e5d6",
			check: func(m JSONMove) bool { return m.SAN == "exd6" && m.Captured == "pawn" && m.Piece == "pawn" },
		},
		{
			name:    "promotion",
			fen:     "8/P7/8/8/8/8/8/4K2k w - - 0 1",
			moves:   "a7a8q",
			check:   func(m JSONMove) bool { return m.Promotion == "queen" && m.UCI == "a7a8q" && m.Captured == "" },
			inCheck: true,
		},
		{
			name:  "castling",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves: "e1g1",
			check: func(m JSONMove) bool { return m.SAN == "O-O" && m.Piece == "king" && m.To == "g1" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jg, err := GameToJSON(playGame(t, tt.fen, tt.moves), true)
			if err != nil {
				t.Fatalf("GameToJSON: %v", err)
			}
			last := jg.Moves[len(jg.Moves)-1]
			if !tt.check(last) {
				t.Errorf("unexpected move: %+v", last)
			}
			if jg.InCheck != tt.inCheck {
				t.Errorf("InCheck = %v; want %v", jg.InCheck, tt.inCheck)
			}
			if len(jg.Legal) == 0 {
				t.Error("legal moves requested but missing")
			}
		})
	}
}

func TestJSONWriter_BlackStartsNumbering(t *testing.T) {
	jg, err := GameToJSON(playGame(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "e7e5 g1f3"), false)
	if err != nil {
		t.Fatalf("GameToJSON: %v", err)
	}
	if jg.Moves[0].MoveNumber != 1 || jg.Moves[0].Color != "black" {
		t.Errorf("first move = %+v", jg.Moves[0])
	}
	if jg.Moves[1].MoveNumber != 2 || jg.Moves[1].Color != "white" {
		t.Errorf("second move = %+v", jg.Moves[1])
	}
}

func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewGameWriter(&buf, FormatJSON, Options{Batch: true})
	if err != nil {
		t.Fatalf("NewGameWriter: %v", err)
	}

	for _, moves := range []string{"e2e4", "d2d4 d7d5"} {
		if err := w.WriteGame(playGame(t, "", moves)); err != nil {
			t.Fatalf("WriteGame: %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Error("batch writer should not write before Flush")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Games) != 2 {
		t.Fatalf("games = %d; want 2", len(out.Games))
	}
	if out.Games[1].PlyCount != 2 {
		t.Errorf("second game plies = %d; want 2", out.Games[1].PlyCount)
	}

	written := buf.Len()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if buf.Len() != written {
		t.Error("second Flush should write nothing")
	}
}

func TestNewGameWriter_UnknownFormat(t *testing.T) {
	_, err := NewGameWriter(&bytes.Buffer{}, "xml", Options{})
	if !errors.Is(err, chesserrors.ErrInvalidConfig) {
		t.Errorf("error = %v; want ErrInvalidConfig", err)
	}
}
