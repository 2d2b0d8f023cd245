package searcher

import "arcade/game"

type ticTacToe struct {
	pos game.Position
}

// TicTacToe adapts a tic-tac-toe position for the search.
func TicTacToe(p game.Position) State {
	return ticTacToe{pos: p}
}

func (t ticTacToe) Player() string {
	return string(rune(t.pos.Turn))
}

func (t ticTacToe) LegalMoves() []game.Move {
	if t.pos.Winner() != 0 {
		return nil
	}
	return t.pos.Free()
}

func (t ticTacToe) Play(move game.Move) State {
	return ticTacToe{pos: t.pos.Place(move)}
}

func (t ticTacToe) Winner() string {
	if w := t.pos.Winner(); w != 0 {
		return string(rune(w))
	}
	return ""
}

// Strategy searches every computer reply of a tic-tac-toe game.
func (m *MCTS) Strategy() game.Strategy {
	return func(p game.Position) game.Move {
		return m.FindNextMove(TicTacToe(p))
	}
}
