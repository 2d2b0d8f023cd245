package player

import (
	"context"

	"arcade/engine"
	"arcade/game"
	"arcade/searcher"
)

// Searcher plays tic-tac-toe with tree search and every other game like Random.
type Searcher struct {
	mcts     *searcher.MCTS
	fallback *Random
}

func NewSearcher(mcts *searcher.MCTS, rng game.RandomSource) *Searcher {
	return &Searcher{mcts: mcts, fallback: NewRandom(rng)}
}

func (p *Searcher) RequestMove(ctx context.Context, prompt engine.Prompt) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	if v, ok := prompt.View.(game.BoardView); ok && prompt.Domain.Kind == game.CoordinateMove {
		return p.mcts.FindNextMove(searcher.TicTacToe(game.Position{Cells: v.Cells, Turn: v.Next})), nil
	}
	return p.fallback.RequestMove(ctx, prompt)
}
