package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDice(t *testing.T) {
	t.Run("higher roll wins", func(t *testing.T) {
		s := Start(Dice(), NewFixedSource(5, 0))

		res, err := s.Step(YesNo(true))

		require.NoError(t, err)
		require.Equal(t, Won, res.Status)
		require.Equal(t, DiceView{Player: 6, Computer: 1}, res.View)
		require.Equal(t, "6 against 1", res.Outcome.Reason)
	})

	t.Run("lower roll loses", func(t *testing.T) {
		s := Start(Dice(), NewFixedSource(0, 3))

		res, err := s.Step(YesNo(true))

		require.NoError(t, err)
		require.Equal(t, Lost, res.Status)
		require.Equal(t, ComputerName, res.Outcome.Winner)
	})

	t.Run("equal rolls tie", func(t *testing.T) {
		s := Start(Dice(), NewFixedSource(2, 2))

		res, err := s.Step(YesNo(true))

		require.NoError(t, err)
		require.Equal(t, Tied, res.Status)
	})

	t.Run("declining to roll is rejected", func(t *testing.T) {
		s := Start(Dice(), NewFixedSource(0))

		_, err := s.Step(YesNo(false))

		require.ErrorIs(t, err, ErrInvalidMove)
		require.Equal(t, DiceView{}, s.Snapshot().View, "Dice should stay unrolled")
	})

	t.Run("rolls stay on the die", func(t *testing.T) {
		rng := NewRandomSource(7)
		for i := 0; i < 100; i++ {
			res, err := Start(Dice(), rng).Step(YesNo(true))
			require.NoError(t, err)
			v := res.View.(DiceView)
			require.True(t, v.Player >= 1 && v.Player <= 6, "Player roll should be a die face")
			require.True(t, v.Computer >= 1 && v.Computer <= 6, "Computer roll should be a die face")
		}
	})
}
