package player

import (
	"context"
	"io"
	"testing"

	"arcade/engine"
	"arcade/game"

	"github.com/stretchr/testify/require"
)

func TestRandomRequestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("picks a free cell", func(t *testing.T) {
		p := NewRandom(game.NewRandomSource(3))
		var view game.BoardView
		for i := range view.Cells {
			for j := range view.Cells[i] {
				view.Cells[i][j] = game.X
			}
		}
		view.Cells[2][1] = game.Empty

		m, err := p.RequestMove(ctx, engine.Prompt{Domain: game.TicTacToe().Domain, View: view})

		require.NoError(t, err)
		require.Equal(t, game.Coordinate(2, 1), m, "Only one cell is free")
	})

	t.Run("stays inside the bomb range", func(t *testing.T) {
		p := NewRandom(game.NewRandomSource(5))
		prompt := engine.Prompt{Domain: game.NumberBomb().Domain, View: game.BombView{Low: 40, High: 44}}

		for i := 0; i < 50; i++ {
			m, err := p.RequestMove(ctx, prompt)
			require.NoError(t, err)
			require.True(t, m.Number >= 40 && m.Number <= 44, "Guess %d should be in range", m.Number)
		}
	})

	t.Run("skips guessed letters", func(t *testing.T) {
		p := NewRandom(game.NewFixedSource(0))
		guessed := []rune("abcdefghijklmnopqrstuvwxy")

		m, err := p.RequestMove(ctx, engine.Prompt{Domain: game.LetterDomain(""), View: game.WordView{Guessed: guessed}})

		require.NoError(t, err)
		require.Equal(t, game.Letter('z'), m)
	})

	t.Run("answers yes", func(t *testing.T) {
		m, err := NewRandom(nil).RequestMove(ctx, engine.Prompt{Domain: game.YesNoDomain("")})

		require.NoError(t, err)
		require.Equal(t, game.YesNo(true), m)
	})

	t.Run("quits with nothing left", func(t *testing.T) {
		p := NewRandom(game.NewFixedSource(0))

		m, err := p.RequestMove(ctx, engine.Prompt{Domain: game.LetterDomain(""), View: game.WordView{Guessed: []rune("abcdefghijklmnopqrstuvwxyz")}})

		require.NoError(t, err)
		require.True(t, m.IsQuit())
	})

	t.Run("plays a whole game", func(t *testing.T) {
		def := game.WordGuess()
		e := engine.New(def, NewRandom(game.NewRandomSource(11)), nil, engine.WithRandomSource(game.NewRandomSource(12)))

		out, err := e.Run(ctx)

		require.NoError(t, err)
		require.Contains(t, []game.Status{game.Won, game.Lost}, out.Status)
	})
}

func TestScripted(t *testing.T) {
	p := NewScripted(game.Letter('a'), game.Quit())

	m, err := p.RequestMove(context.Background(), engine.Prompt{})
	require.NoError(t, err)
	require.Equal(t, game.Letter('a'), m)
	require.Equal(t, 1, p.Remaining())

	m, err = p.RequestMove(context.Background(), engine.Prompt{})
	require.NoError(t, err)
	require.True(t, m.IsQuit())

	_, err = p.RequestMove(context.Background(), engine.Prompt{})
	require.ErrorIs(t, err, io.EOF, "Exhausted script should report EOF")
}
