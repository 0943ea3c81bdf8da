// Package errors holds the rules engine's sentinel errors and the MoveError
// and ParseError wrappers that carry move or FEN field context.
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a well-formed move that is not legal in the current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidMoveText indicates move text that does not match the UCI grammar.
	ErrInvalidMoveText = errors.New("invalid move text")

	// ErrGameOver indicates a move was submitted after the game ended.
	ErrGameOver = errors.New("game is over")

	// ErrNoHistory indicates an undo was requested with no moves played.
	ErrNoHistory = errors.New("no move to undo")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSnapshotNotFound indicates a stored position does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// MoveError records the ply and text of a rejected move.
type MoveError struct {
	Err      error
	Ply      int // 1-based ply the move would have been; 0 when unknown
	MoveText string
}

func (e *MoveError) Error() string {
	var sb strings.Builder
	if e.Ply > 0 {
		fmt.Fprintf(&sb, "ply %d ", e.Ply)
	}
	if e.MoveText != "" {
		fmt.Fprintf(&sb, "move %q ", e.MoveText)
	}
	prefix := strings.TrimSuffix(sb.String(), " ")
	return joinCause(prefix, e.Err, "move error")
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a FEN parsing error located at a specific field.
type ParseError struct {
	Err   error
	Field string // FEN field name
	Got   string
}

func (e *ParseError) Error() string {
	prefix := e.Field
	if e.Got != "" {
		if prefix != "" {
			prefix += " "
		}
		prefix += fmt.Sprintf("%q", e.Got)
	}
	return joinCause(prefix, e.Err, "parse error")
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// joinCause renders "prefix: cause", falling back to whichever part is set.
func joinCause(prefix string, cause error, fallback string) string {
	switch {
	case cause == nil && prefix == "":
		return fallback
	case cause == nil:
		return prefix
	case prefix == "":
		return cause.Error()
	}
	return prefix + ": " + cause.Error()
}

// Wrap prefixes err with context. A nil err stays nil.
func Wrap(err error, context string) error {
	return pkgerrors.WithMessage(err, context)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.WithMessagef(err, format, args...)
}
