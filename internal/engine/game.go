package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/notation"
)

// Game owns one board and drives it: it keeps the legal move set of the
// current position, validates and plays moves, and detects the end of the
// game. A Game is not safe for concurrent use.
type Game struct {
	id     string
	board  *chess.Board
	rules  Rules
	logger *zap.Logger

	legal       []chess.Move
	repetitions *hashing.RepetitionCounter
	history     []ply
	startFEN    string
	outcome     Outcome
}

// ply is one played half-move.
type ply struct {
	// record is nil for plies restored from a snapshot; those cannot be undone.
	record *chess.MoveRecord
	san    string
	uci    string
	key    chess.PositionKey
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRules sets the rules the game is played under.
func WithRules(r Rules) Option {
	return func(g *Game) {
		g.rules = r
	}
}

// WithID sets the game identifier used in logs. The default is a random UUID.
func WithID(id string) Option {
	return func(g *Game) {
		g.id = id
	}
}

// NewGame starts a game from the standard initial position. It panics if
// the supplied rules are invalid.
func NewGame(opts ...Option) *Game {
	g, err := newGame(NewInitialBoard(), opts)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGameFromFEN starts a game from a FEN position.
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(board, opts)
}

func newGame(board *chess.Board, opts []Option) (*Game, error) {
	g := &Game{
		id:     uuid.NewString(),
		rules:  DefaultRules(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.rules.Validate(); err != nil {
		return nil, err
	}
	g.logger = g.logger.With(zap.String("game", g.id))
	g.reset(board)
	return g, nil
}

// reset makes board the live position and clears all history.
func (g *Game) reset(board *chess.Board) {
	board.SetRules(g.rules.RuleSet())
	g.board = board
	g.startFEN = BoardToFEN(board)
	g.repetitions = hashing.NewRepetitionCounter()
	g.history = nil
	g.outcome = Outcome{}
	g.KingsInCheck()
	g.legal = LegalMoves(board)
	g.CheckEndgameConditions(g.legal)

	g.logger.Debug("position loaded", zap.String("fen", g.startFEN), zap.Int("legal", len(g.legal)))
}

// LoadFEN replaces the current position. On error the game is unchanged.
func (g *Game) LoadFEN(fen string) error {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	g.reset(board)
	return nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Rules returns the rules the game is played under.
func (g *Game) Rules() Rules { return g.rules }

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board { return g.board.Clone() }

// FEN returns the current position.
func (g *Game) FEN() string { return BoardToFEN(g.board) }

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string { return g.startFEN }

// Turn returns the side to move.
func (g *Game) Turn() chess.Colour { return g.board.Turn() }

// Ply returns the number of half-moves played.
func (g *Game) Ply() int { return len(g.history) }

// Outcome returns the result so far; the zero Outcome while running.
func (g *Game) Outcome() Outcome { return g.outcome }

// Running reports whether moves may still be played.
func (g *Game) Running() bool { return !g.outcome.Over() }

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	king := g.board.King(g.board.Turn())
	return king != nil && king.InCheck
}

// LegalMoves returns the legal moves of the current position.
func (g *Game) LegalMoves() []chess.Move {
	return append([]chess.Move(nil), g.legal...)
}

// KingsInCheck recomputes the cached check flag of both kings.
func (g *Game) KingsInCheck() {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if king := g.board.King(colour); king != nil {
			king.InCheck = g.board.ControlledSquares(colour.Opposite()).Has(king.Square)
		}
	}
}

// CheckEndgameConditions evaluates, in order, material draw, the
// no-progress rule, checkmate or stalemate, and repetition. The first that
// applies ends the game.
func (g *Game) CheckEndgameConditions(legal []chess.Move) Outcome {
	turn := g.board.Turn()
	var o Outcome

	switch {
	case HasInsufficientMaterial(g.board):
		o = Outcome{Result: Draw, Reason: InsufficientMaterial}
	case g.board.NoProgressPlies() >= g.rules.NoProgressLimit:
		o = Outcome{Result: Draw, Reason: NoProgress}
	case isCheckmate(g.board, legal):
		o = Outcome{Result: winFor(turn.Opposite()), Reason: Checkmate}
	case isStalemate(g.board, legal):
		o = Outcome{Result: Draw, Reason: Stalemate}
	case g.repetitions.Max() >= g.rules.RepetitionLimit:
		o = Outcome{Result: Draw, Reason: Repetition}
	}

	g.outcome = o
	return o
}

// PlayMove plays a move matched on origin, destination and promotion
// against the legal moves of the current position.
func (g *Game) PlayMove(m chess.Move) error {
	text := notation.MoveToUCI(m)
	if g.outcome.Over() {
		return &errors.MoveError{Err: errors.ErrGameOver, Ply: g.Ply() + 1, MoveText: text}
	}
	legal, ok := g.findLegal(m)
	if !ok {
		return &errors.MoveError{Err: errors.ErrIllegalMove, Ply: g.Ply() + 1, MoveText: text}
	}
	g.play(legal)
	return nil
}

// PlayUCI parses and plays a move in coordinate notation.
func (g *Game) PlayUCI(text string) error {
	m, err := notation.ParseUCI(text)
	if err != nil {
		return &errors.MoveError{Err: err, Ply: g.Ply() + 1, MoveText: text}
	}
	return g.PlayMove(m)
}

// PlaySAN plays a move given in standard algebraic notation. Check and
// annotation suffixes are ignored.
func (g *Game) PlaySAN(text string) error {
	want := strings.TrimRight(text, "+#!?")
	for i, san := range g.LegalMovesAlgebraic() {
		if san == want {
			return g.PlayMove(g.legal[i])
		}
	}
	if g.outcome.Over() {
		return &errors.MoveError{Err: errors.ErrGameOver, Ply: g.Ply() + 1, MoveText: text}
	}
	return &errors.MoveError{Err: errors.ErrIllegalMove, Ply: g.Ply() + 1, MoveText: text}
}

func (g *Game) findLegal(m chess.Move) (chess.Move, bool) {
	for _, legal := range g.legal {
		if legal.SameAs(m) {
			return legal, true
		}
	}
	return chess.Move{}, false
}

func (g *Game) play(m chess.Move) {
	rec := g.board.Apply(m)
	san := notation.MoveToAlgebraic(g.board, m, rec.Piece, rec.Captured)
	g.KingsInCheck()

	key := g.board.Key()
	g.repetitions.Add(key)
	g.history = append(g.history, ply{record: rec, san: san, uci: notation.MoveToUCI(m), key: key})

	g.legal = LegalMoves(g.board)
	o := g.CheckEndgameConditions(g.legal)

	g.logger.Debug("move played",
		zap.Int("ply", len(g.history)),
		zap.String("san", san),
		zap.String("uci", notation.MoveToUCI(m)),
		zap.Bool("check", g.InCheck()),
		zap.Int("legal", len(g.legal)),
	)
	if o.Over() {
		g.logger.Info("game over",
			zap.String("result", o.Result.String()),
			zap.String("reason", o.Reason.String()),
			zap.Int("plies", len(g.history)),
		)
	}
}

// UndoMove takes back the last move.
func (g *Game) UndoMove() error {
	if len(g.history) == 0 || g.history[len(g.history)-1].record == nil {
		return errors.ErrNoHistory
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.repetitions.Remove(last.key)
	g.board.Revert(last.record)
	g.outcome = Outcome{}
	g.KingsInCheck()
	g.legal = LegalMoves(g.board)

	g.logger.Debug("move undone", zap.String("uci", last.uci), zap.Int("ply", len(g.history)))
	return nil
}

// RepetitionCount returns how many times the current position has occurred
// after a move.
func (g *Game) RepetitionCount() int {
	return g.repetitions.Count(g.board.Key())
}

// UCIHistory returns the moves played in coordinate notation.
func (g *Game) UCIHistory() []string {
	out := make([]string, len(g.history))
	for i, p := range g.history {
		out[i] = p.uci
	}
	return out
}

// SANHistory returns the moves played in algebraic notation.
func (g *Game) SANHistory() []string {
	out := make([]string, len(g.history))
	for i, p := range g.history {
		out[i] = p.san
	}
	return out
}

// LastMoveAlgebraic returns the last move in algebraic notation, or "".
func (g *Game) LastMoveAlgebraic() string {
	if len(g.history) == 0 {
		return ""
	}
	return g.history[len(g.history)-1].san
}

// PGN returns the movetext of the game, e.g. "1. e4 e5 2. Nf3".
func (g *Game) PGN() string {
	fields := strings.Fields(g.startFEN)
	moveNumber, _ := strconv.Atoi(fields[5])
	whiteToMove := fields[1] == "w"

	var parts []string
	for i, p := range g.history {
		switch {
		case whiteToMove:
			parts = append(parts, fmt.Sprintf("%d. %s", moveNumber, p.san))
		case i == 0:
			parts = append(parts, fmt.Sprintf("%d... %s", moveNumber, p.san))
		default:
			parts = append(parts, p.san)
		}
		if !whiteToMove {
			moveNumber++
		}
		whiteToMove = !whiteToMove
	}
	return strings.Join(parts, " ")
}

// LegalMovesUCI returns the legal moves in coordinate notation.
func (g *Game) LegalMovesUCI() []string {
	out := make([]string, len(g.legal))
	for i, m := range g.legal {
		out[i] = notation.MoveToUCI(m)
	}
	return out
}

// LegalMovesAlgebraic returns the legal moves in algebraic notation, in the
// same order as LegalMoves.
func (g *Game) LegalMovesAlgebraic() []string {
	out := make([]string, len(g.legal))
	for i, m := range g.legal {
		rec := g.board.Apply(m)
		out[i] = notation.MoveToAlgebraic(g.board, m, rec.Piece, rec.Captured)
		g.board.Revert(rec)
	}
	return out
}

// Snapshot is a saved game state. Moves played before a snapshot was taken
// cannot be undone after restoring it.
type Snapshot struct {
	board       *chess.Board
	repetitions *hashing.RepetitionCounter
	history     []ply
	startFEN    string
	outcome     Outcome
}

// FEN returns the position stored in the snapshot.
func (s *Snapshot) FEN() string { return BoardToFEN(s.board) }

// Snapshot captures the current state.
func (g *Game) Snapshot() *Snapshot {
	history := make([]ply, len(g.history))
	for i, p := range g.history {
		p.record = nil
		history[i] = p
	}
	return &Snapshot{
		board:       g.board.Clone(),
		repetitions: g.repetitions.Clone(),
		history:     history,
		startFEN:    g.startFEN,
		outcome:     g.outcome,
	}
}

// Restore returns the game to a snapshot. The snapshot stays reusable.
func (g *Game) Restore(s *Snapshot) {
	g.board = s.board.Clone()
	g.board.SetRules(g.rules.RuleSet())
	g.repetitions = s.repetitions.Clone()
	g.history = append([]ply(nil), s.history...)
	g.startFEN = s.startFEN
	g.outcome = s.outcome
	g.KingsInCheck()
	g.legal = LegalMoves(g.board)
}
