package player

import (
	"context"
	"io"

	"arcade/engine"
	"arcade/game"
)

// Scripted replays a fixed list of moves and then reports io.EOF.
type Scripted struct {
	moves []game.Move
	next  int
}

func NewScripted(moves ...game.Move) *Scripted {
	return &Scripted{moves: moves}
}

func (p *Scripted) RequestMove(ctx context.Context, _ engine.Prompt) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	if p.next >= len(p.moves) {
		return game.Move{}, io.EOF
	}
	m := p.moves[p.next]
	p.next++
	return m, nil
}

// Remaining reports how many scripted moves have not been requested yet.
func (p *Scripted) Remaining() int {
	return len(p.moves) - p.next
}
