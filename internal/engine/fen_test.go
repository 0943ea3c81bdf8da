package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chessrules-go/internal/chess"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func sq(name string) chess.Square {
	return chess.Sq(int(name[0]-'a'), int(name[1]-'1'))
}

func TestNewBoardFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*chess.Board) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(b *chess.Board) bool {
				return b.Get(sq("e1")).Kind == chess.King &&
					b.Get(sq("e8")).Colour == chess.Black &&
					b.Get(sq("e2")).Kind == chess.Pawn &&
					!b.Get(sq("e2")).HasMoved &&
					b.Turn() == chess.White &&
					b.CastlingRights() == chess.AllCastlingRights
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b *chess.Board) bool {
				ghost, ok := b.GhostPawn(chess.White)
				return b.Get(sq("e4")).Kind == chess.Pawn &&
					b.Get(sq("e4")).HasMoved &&
					b.Get(sq("e2")) == nil &&
					b.Turn() == chess.Black &&
					ok && ghost == sq("e3")
			},
		},
		{
			name: "sicilian defense",
			fen:  "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
			checkFn: func(b *chess.Board) bool {
				ghost, ok := b.GhostPawn(chess.Black)
				return b.Get(sq("c5")).Colour == chess.Black &&
					b.Turn() == chess.White &&
					ok && ghost == sq("c6") &&
					b.FullMoveNumber() == 2
			},
		},
		{
			name: "no castling rights",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.CastlingRights() == chess.NoCastling &&
					b.Get(sq("a1")).HasMoved
			},
		},
		{
			name: "counters",
			fen:  "4k3/8/8/8/8/8/8/4K2R w K - 37 81",
			checkFn: func(b *chess.Board) bool {
				return b.NoProgressPlies() == 37 &&
					b.FullMoveNumber() == 81 &&
					b.CastlingRights() == chess.WhiteKingside &&
					!b.Get(sq("h1")).HasMoved
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			if !tt.checkFn(board) {
				t.Errorf("NewBoardFromFEN() board check failed:\n%s", board)
			}
			if board.Key() != board.ComputeKey() {
				t.Error("position key out of sync after parsing")
			}
		})
	}
}

func TestNewBoardFromFEN_Errors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"empty string", "", ""},
		{"missing fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", ""},
		{"too many fields", InitialFEN + " extra", ""},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"rank overflow", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"rank too long", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"rank too short", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"bad piece letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", "placement"},
		{"bad turn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", "turn"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1", "castling"},
		{"duplicate castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KKq - 0 1", "castling"},
		{"bad en passant square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", "en passant"},
		{"en passant on wrong rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", "en passant"},
		{"negative clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", "halfmove clock"},
		{"zero move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", "fullmove number"},
		{"text move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 one", "fullmove number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			if err == nil {
				t.Fatalf("NewBoardFromFEN() = %v; want error", board)
			}
			testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidFEN)

			if tt.field != "" {
				var parseErr *chesserrors.ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("error %v is not a ParseError", err)
				}
				if parseErr.Field != tt.field {
					t.Errorf("ParseError.Field = %q; want %q", parseErr.Field, tt.field)
				}
			}
		})
	}
}

func TestNewBoardFromFEN_StructuralErrors(t *testing.T) {
	// Two problems at once: no white king and a pawn on the first rank.
	_, err := NewBoardFromFEN("4k3/8/8/8/8/8/8/P7 w - - 0 1")
	if err == nil {
		t.Fatal("NewBoardFromFEN() error = nil; want structural errors")
	}
	testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidFEN)

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("error %T is not a multierror", err)
	}
	if len(merr.Errors) != 2 {
		t.Errorf("len(Errors) = %d; want 2: %v", len(merr.Errors), merr.Errors)
	}

	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", "2 kings"},
		{"opponent in check", "4k3/4R3/8/8/8/8/8/4K3 w - - 0 1", "capture the king"},
		{"en passant occupied", "4k3/8/3n4/3pP3/8/8/8/4K3 w - d6 0 1", "occupied"},
		{"en passant without pawn", "4k3/8/8/2PN4/8/8/8/4K3 w - d6 0 1", "no Black pawn on d5"},
		{"en passant origin occupied", "4k3/3p4/8/3pP3/8/8/8/4K3 w - d6 0 1", "origin d7 is occupied"},
		{"black pawn on eighth", "p3k3/8/8/8/8/8/8/4K3 w - - 0 1", "back rank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoardFromFEN(tt.fen)
			if err == nil {
				t.Fatal("NewBoardFromFEN() error = nil")
			}
			testutil.AssertContains(t, err.Error(), tt.want)
		})
	}
}

func TestBoardToFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 12 40",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 3 17",
	}
	for _, c := range testutil.PerftCases() {
		fens = append(fens, c.FEN)
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			board, err := NewBoardFromFEN(fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			testutil.AssertEqual(t, BoardToFEN(board), fen)
		})
	}
}

func TestBoardToFEN_ReachablePositions(t *testing.T) {
	g := NewGame()
	for _, uci := range testutil.Moves("e2e4 c7c5 g1f3 d7d6 d2d4 c5d4 f3d4 g8f6 b1c3 a7a6 c1e3 e7e5 d4b3 c8e6 f2f3 f8e7 d1d2 e8g8 e1c1") {
		if err := g.PlayUCI(uci); err != nil {
			t.Fatalf("PlayUCI(%s) error = %v", uci, err)
		}
		fen := g.FEN()
		board, err := NewBoardFromFEN(fen)
		if err != nil {
			t.Fatalf("after %s: NewBoardFromFEN(%q) error = %v", uci, fen, err)
		}
		testutil.AssertEqual(t, BoardToFEN(board), fen, "after %s", uci)
		if board.Key() != g.board.Key() {
			t.Errorf("after %s: reparsed key differs from live key", uci)
		}
	}
	testutil.AssertEqual(t, g.FEN(), "rn1q1rk1/1p2bppp/p2pbn2/4p3/4P3/1NN1BP2/PPPQ2PP/2KR1B1R b - - 4 10")
}

func TestNewInitialBoard(t *testing.T) {
	b := NewInitialBoard()
	if got := BoardToFEN(b); got != InitialFEN {
		t.Errorf("BoardToFEN(NewInitialBoard()) = %q; want %q", got, InitialFEN)
	}
	if !strings.HasPrefix(b.String(), "8 r n b q k b n r") {
		t.Errorf("board diagram = %q", b.String())
	}
}
