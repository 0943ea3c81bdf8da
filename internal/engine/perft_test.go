package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// slowPerft marks leaf counts skipped under -short.
const slowPerft = 100000

func TestPerft(t *testing.T) {
	for _, c := range testutil.PerftCases() {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()
			board, err := NewBoardFromFEN(c.FEN)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			for i, want := range c.Counts {
				depth := i + 1
				if testing.Short() && want > slowPerft {
					t.Skipf("depth %d skipped in short mode", depth)
				}
				if got := Perft(board, depth); got != want {
					t.Errorf("Perft(%d) = %d; want %d", depth, got, want)
				}
				testutil.AssertEqual(t, BoardToFEN(board), c.FEN, "perft must restore the board")
			}
		})
	}
}

func TestPerft_DepthZero(t *testing.T) {
	testutil.AssertEqual(t, Perft(NewInitialBoard(), 0), uint64(1))
	testutil.AssertEqual(t, len(Divide(NewInitialBoard(), 0)), 0)
}

func TestDivide(t *testing.T) {
	g := NewGame()
	split := g.Divide(2)

	if len(split) != 20 {
		t.Fatalf("len(Divide(2)) = %d; want 20", len(split))
	}
	var total uint64
	for mv, n := range split {
		if n != 20 {
			t.Errorf("Divide(2)[%s] = %d; want 20", mv, n)
		}
		total += n
	}
	testutil.AssertEqual(t, total, g.Perft(2))
	testutil.AssertEqual(t, g.FEN(), InitialFEN)
}

func TestDivide_Kiwipete(t *testing.T) {
	g, err := NewGameFromFEN(testutil.Kiwipete)
	testutil.AssertNoError(t, err)

	split := g.Divide(1)
	testutil.AssertEqual(t, len(split), 48)
	for _, mv := range []string{"e1g1", "e1c1", "d5e6", "e5f7", "f3h3"} {
		if split[mv] != 1 {
			t.Errorf("Divide(1)[%s] = %d; want 1", mv, split[mv])
		}
	}
}

func TestDivideGraph(t *testing.T) {
	g := NewGame()
	dot, err := g.DivideGraph(2)
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, dot, "digraph perft")
	testutil.AssertContains(t, dot, "root->m_e2e4")
	testutil.AssertContains(t, dot, `"e2e4\n20"`)
	testutil.AssertContains(t, dot, "depth 2: 400")
	testutil.AssertEqual(t, strings.Count(dot, "->"), 20)
}

func ExampleGame_Divide() {
	g, _ := NewGameFromFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	split := g.Divide(1)
	fmt.Println(len(split), split["e2e4"])
	// Output: 6 1
}
