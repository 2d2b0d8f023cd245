package player

import (
	"context"

	"arcade/engine"
	"arcade/game"
	"arcade/utils"
)

// Random is a computer player that picks uniformly among the moves that are
// still worth trying. It always answers yes to yes/no prompts.
type Random struct {
	rng game.RandomSource
}

// NewRandom creates a new Random player.
func NewRandom(rng game.RandomSource) *Random {
	if rng == nil {
		rng = game.NewRandomSource(0)
	}
	return &Random{rng: rng}
}

func (p *Random) RequestMove(ctx context.Context, prompt engine.Prompt) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	if prompt.Domain.Kind == game.YesNoMove {
		return game.YesNo(true), nil
	}

	possibleMoves := possibleMoves(prompt)
	if len(possibleMoves) == 0 {
		return game.Quit(), nil
	}
	return possibleMoves[p.rng.Intn(len(possibleMoves))], nil
}

// possibleMoves narrows the domain with what the current view rules out.
func possibleMoves(prompt engine.Prompt) []game.Move {
	moves := prompt.Domain.Enumerate()
	var keep func(game.Move) bool

	switch v := prompt.View.(type) {
	case game.BoardView:
		keep = func(m game.Move) bool { return v.Cells[m.Row][m.Col] == game.Empty }
	case game.WordView:
		keep = func(m game.Move) bool { return !utils.Contains(v.Guessed, m.Letter) }
	case game.BombView:
		keep = func(m game.Move) bool { return m.Number >= v.Low && m.Number <= v.High }
	default:
		return moves
	}

	possible := make([]game.Move, 0, utils.Count(moves, keep))
	for _, m := range moves {
		if keep(m) {
			possible = append(possible, m)
		}
	}
	return possible
}
