// Package engine provides the game controller of the rules engine: FEN
// (de)serialization, the legality filter, move play and undo, endgame
// detection and perft.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN field names used in parse errors.
const (
	fieldPlacement = "placement"
	fieldTurn      = "turn"
	fieldCastling  = "castling"
	fieldEnPassant = "en passant"
	fieldHalfmove  = "halfmove clock"
	fieldFullmove  = "fullmove number"
)

func fenError(field, got string) error {
	return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: field, Got: got}
}

// NewBoardFromFEN creates a board from a FEN string. The string must carry
// all six fields. Structural problems in the position itself are reported
// together so callers see every one of them.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("expected 6 fields, got %d: %w", len(parts), errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, parts[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, parts[3]); err != nil {
		return nil, err
	}
	if err := parseClocks(board, parts[4], parts[5]); err != nil {
		return nil, err
	}
	if err := validatePosition(board); err != nil {
		return nil, err
	}

	inferMovedFlags(board)
	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fieldPlacement, positions)
	}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				kind := chess.KindFromLetter(byte(c))
				if kind == chess.NoKind {
					return fenError(fieldPlacement, string(c))
				}
				if file >= chess.BoardSize {
					return fenError(fieldPlacement, row)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				sq := chess.Sq(file, rank)
				board.Set(sq, chess.NewPiece(colour, kind, sq))
				file++
			}
		}
		if file != chess.BoardSize {
			return fenError(fieldPlacement, row)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, field string) error {
	switch field {
	case "w":
		board.SetTurn(chess.White)
	case "b":
		board.SetTurn(chess.Black)
	default:
		return fenError(fieldTurn, field)
	}
	return nil
}

var castlingLetters = map[rune]chess.CastlingRights{
	'K': chess.WhiteKingside,
	'Q': chess.WhiteQueenside,
	'k': chess.BlackKingside,
	'q': chess.BlackQueenside,
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, field string) error {
	if field == "-" {
		board.SetCastlingRights(chess.NoCastling)
		return nil
	}

	rights := chess.NoCastling
	for _, c := range field {
		r, ok := castlingLetters[c]
		if !ok || rights.Has(r) {
			return fenError(fieldCastling, field)
		}
		rights |= r
	}
	board.SetCastlingRights(rights)
	return nil
}

// parseEnPassant parses the en passant target square field. The ghost pawn
// belongs to the side that just moved.
func parseEnPassant(board *chess.Board, field string) error {
	if field == "-" {
		return nil
	}
	sq, ok := parseSquare(field)
	if !ok {
		return fenError(fieldEnPassant, field)
	}

	mover := board.Turn().Opposite()
	if sq.Rank != chess.PawnRank(mover)+chess.ColourOffset(mover) {
		return fenError(fieldEnPassant, field)
	}
	board.ActivateGhostPawn(sq, mover)
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, halfmove, fullmove string) error {
	h, err := strconv.Atoi(halfmove)
	if err != nil || h < 0 {
		return fenError(fieldHalfmove, halfmove)
	}
	f, err := strconv.Atoi(fullmove)
	if err != nil || f < 1 {
		return fenError(fieldFullmove, fullmove)
	}
	board.SetNoProgressPlies(h)
	board.SetFullMoveNumber(f)
	return nil
}

func parseSquare(s string) (chess.Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, false
	}
	return chess.Sq(int(s[0]-'a'), int(s[1]-'1')), true
}

// validatePosition collects every structural problem of a parsed position.
func validatePosition(board *chess.Board) error {
	var result *multierror.Error

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := len(board.PiecesOf(colour, chess.King)); n != 1 {
			result = multierror.Append(result, fmt.Errorf("%v has %d kings: %w", colour, n, errors.ErrInvalidFEN))
		}
	}

	for _, p := range board.PiecesOf(chess.White, chess.Pawn) {
		if p.Square.Rank == 0 || p.Square.Rank == chess.BoardSize-1 {
			result = multierror.Append(result, fmt.Errorf("pawn on back rank %v: %w", p.Square, errors.ErrInvalidFEN))
		}
	}
	for _, p := range board.PiecesOf(chess.Black, chess.Pawn) {
		if p.Square.Rank == 0 || p.Square.Rank == chess.BoardSize-1 {
			result = multierror.Append(result, fmt.Errorf("pawn on back rank %v: %w", p.Square, errors.ErrInvalidFEN))
		}
	}

	if ghost, ok := board.EnPassantSquare(); ok {
		if board.Get(ghost) != nil {
			result = multierror.Append(result, fmt.Errorf("en passant square %v is occupied: %w", ghost, errors.ErrInvalidFEN))
		}
		mover := board.Turn().Opposite()
		pawnSq := chess.Sq(ghost.File, ghost.Rank+chess.ColourOffset(mover))
		origin := chess.Sq(ghost.File, ghost.Rank-chess.ColourOffset(mover))
		if p := board.Get(pawnSq); p == nil || p.Kind != chess.Pawn || p.Colour != mover {
			result = multierror.Append(result, fmt.Errorf("en passant square %v has no %v pawn on %v: %w", ghost, mover, pawnSq, errors.ErrInvalidFEN))
		}
		if board.Get(origin) != nil {
			result = multierror.Append(result, fmt.Errorf("en passant origin %v is occupied: %w", origin, errors.ErrInvalidFEN))
		}
	}

	if result == nil {
		// The side that just moved cannot have left its king attacked.
		if board.IsInCheck(board.Turn().Opposite()) {
			result = multierror.Append(result, fmt.Errorf("%v to move can capture the king: %w", board.Turn(), errors.ErrInvalidFEN))
		}
	}

	return result.ErrorOrNil()
}

// inferMovedFlags derives the per-piece moved flags FEN does not carry.
// Pawns off their start rank have moved; kings and rooks count as unmoved
// only while a castling right still depends on them.
func inferMovedFlags(board *chess.Board) {
	rights := board.CastlingRights()
	for _, p := range board.Pieces() {
		switch p.Kind {
		case chess.Pawn:
			p.HasMoved = p.Square.Rank != chess.PawnRank(p.Colour)
		case chess.King:
			p.HasMoved = p.Square != chess.KingStart(p.Colour) || rights&chess.RightsOf(p.Colour) == 0
		case chess.Rook:
			r := chess.CornerRight(p.Square)
			p.HasMoved = r == chess.NoCastling || !rights.Has(r) || (r&chess.RightsOf(p.Colour)) == 0
		default:
			p.HasMoved = false
		}
	}
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.NoProgressPlies(), board.FullMoveNumber())

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Get(chess.Sq(file, rank))
			if piece == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.Turn() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	rights := board.CastlingRights()
	if rights == chess.NoCastling {
		sb.WriteByte('-')
		return
	}
	for _, c := range "KQkq" {
		if rights.Has(castlingLetters[c]) {
			sb.WriteRune(c)
		}
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	if sq, ok := board.EnPassantSquare(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, err := NewBoardFromFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return board
}
