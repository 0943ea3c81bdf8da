package engine

import (
	"math/rand"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// RandomMove picks a legal move uniformly at random. It returns false when
// there is no legal move.
func (g *Game) RandomMove(r *rand.Rand) (chess.Move, bool) {
	if len(g.legal) == 0 {
		return chess.Move{}, false
	}
	return g.legal[r.Intn(len(g.legal))], true
}

// PlayRandom plays one uniformly random legal move.
func (g *Game) PlayRandom(r *rand.Rand) error {
	if g.outcome.Over() {
		return errors.ErrGameOver
	}
	m, ok := g.RandomMove(r)
	if !ok {
		return errors.ErrGameOver
	}
	return g.PlayMove(m)
}

// PlayRandomGame plays random moves until the game ends or maxPlies moves
// have been played (0 means no limit). It returns the number of plies played.
func (g *Game) PlayRandomGame(r *rand.Rand, maxPlies int) int {
	played := 0
	for g.Running() && (maxPlies <= 0 || played < maxPlies) {
		if err := g.PlayRandom(r); err != nil {
			break
		}
		played++
	}
	return played
}
