package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Output formats accepted by NewGameWriter.
const (
	FormatText = "text"
	FormatPGN  = "pgn"
	FormatJSON = "json"
)

// GameWriter is the interface for writing games to output.
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(g *engine.Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// Options tune the writers.
type Options struct {
	Legal      bool              // include legal moves of the final position
	Tags       map[string]string // PGN roster values
	LineLength int               // PGN movetext wrap, 0 for 80
	Batch      bool              // JSON: collect games into one array
}

// NewGameWriter returns the writer for format.
func NewGameWriter(w io.Writer, format string, opts Options) (GameWriter, error) {
	switch format {
	case FormatText, "":
		return &TextWriter{w: w, legal: opts.Legal}, nil
	case FormatPGN:
		return &PGNWriter{w: w, tags: opts.Tags, lineLength: opts.LineLength}, nil
	case FormatJSON:
		if opts.Batch {
			return NewJSONWriter(w, opts.Legal), nil
		}
		return NewJSONWriterSingle(w, opts.Legal), nil
	}
	return nil, fmt.Errorf("output format %q: %w", format, errors.ErrInvalidConfig)
}

// TextWriter writes human readable reports.
type TextWriter struct {
	w     io.Writer
	legal bool
}

// WriteGame writes a report for g.
func (tw *TextWriter) WriteGame(g *engine.Game) error {
	WriteText(tw.w, g, tw.legal)
	return nil
}

// Flush is a no-op; reports are written immediately.
func (tw *TextWriter) Flush() error { return nil }

// Close is a no-op.
func (tw *TextWriter) Close() error { return nil }

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w          io.Writer
	tags       map[string]string
	lineLength int
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(g *engine.Game) error {
	WritePGN(pw.w, g, pw.tags, pw.lineLength)
	return nil
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	legal  bool
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a JSON writer that batches games and writes them as
// an array on Close.
func NewJSONWriter(w io.Writer, legal bool) *JSONWriter {
	return &JSONWriter{w: w, legal: legal}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, legal bool) *JSONWriter {
	return &JSONWriter{w: w, legal: legal, single: true}
}

// WriteGame converts g and writes it, or buffers it in batch mode. The game
// is converted at once, so later moves on g do not change the output.
func (jw *JSONWriter) WriteGame(g *engine.Game) error {
	jg, err := GameToJSON(g, jw.legal)
	if err != nil {
		return err
	}
	if jw.single {
		return jw.encode(jg)
	}
	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := jw.encode(&JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func (jw *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
