// Package output renders finished or running games as text reports, PGN or
// JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/engine"
)

// SevenTagRoster lists the PGN tags every exported game carries, in order.
var SevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// LineWriter writes space separated tokens, wrapping lines at a maximum length.
type LineWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewLineWriter creates a LineWriter. A non-positive length means 80.
func NewLineWriter(w io.Writer, maxLineLength int) *LineWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &LineWriter{w: w, maxLineLength: maxLineLength}
}

// Write writes a token, preceded by a space or a line break.
func (o *LineWriter) Write(s string) {
	if s == "" {
		return
	}
	if o.needsSpace {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *LineWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WritePGN writes g as a PGN game. Missing roster tags are written as "?".
// Games that do not start from the standard position get SetUp and FEN tags.
func WritePGN(w io.Writer, g *engine.Game, tags map[string]string, maxLineLength int) {
	writeTags(w, g, tags)
	fmt.Fprintln(w)

	lw := NewLineWriter(w, maxLineLength)
	for _, token := range strings.Fields(g.PGN()) {
		lw.Write(token)
	}
	lw.Write(g.Outcome().Result.String())
	lw.NewLine()
	fmt.Fprintln(w)
}

func writeTags(w io.Writer, g *engine.Game, tags map[string]string) {
	for _, tag := range SevenTagRoster {
		value := tags[tag]
		if tag == "Result" {
			value = g.Outcome().Result.String()
		}
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}
	if g.StartFEN() != engine.InitialFEN {
		fmt.Fprintf(w, "[SetUp \"1\"]\n")
		fmt.Fprintf(w, "[FEN \"%s\"]\n", g.StartFEN())
	}
	if o := g.Outcome(); o.Over() {
		fmt.Fprintf(w, "[Termination \"%s\"]\n", o.Reason)
	}
}

// escapeTagValue escapes backslashes and quotes in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "\"", "\\\"")
}

// WriteText writes a human readable report: diagram, FEN, movetext and
// status, plus the legal moves when legal is set.
func WriteText(w io.Writer, g *engine.Game, legal bool) {
	fmt.Fprint(w, g.Board())
	fmt.Fprintf(w, "FEN: %s\n", g.FEN())
	if g.Ply() > 0 {
		fmt.Fprintf(w, "Moves: %s\n", g.PGN())
	}

	status := g.Outcome().String()
	if g.Running() && g.InCheck() {
		status += " (check)"
	}
	fmt.Fprintf(w, "Status: %s\n", status)

	if legal {
		uci := g.LegalMovesUCI()
		san := g.LegalMovesAlgebraic()
		fmt.Fprintf(w, "Legal moves (%d):\n", len(uci))
		for i := range uci {
			fmt.Fprintf(w, "  %-6s %s\n", uci[i], san[i])
		}
	}
}
