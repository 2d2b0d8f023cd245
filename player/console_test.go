package player

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"arcade/engine"
	"arcade/game"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	letters := game.LetterDomain("")
	numbers := game.IntegerDomain(1, 100, "")
	cells := game.CoordinateDomain(3, "")
	symbols := game.SymbolDomain([]string{"rock", "paper", "scissors"}, "")
	yesno := game.YesNoDomain("")
	roll := game.PressEnterDomain("")

	cases := []struct {
		name   string
		line   string
		domain game.Domain
		want   game.Move
		ok     bool
	}{
		{"letter", " A ", letters, game.Letter('a'), true},
		{"q is a letter", "q", letters, game.Letter('q'), true},
		{"quit in letters", "quit", letters, game.Quit(), true},
		{"two letters", "ab", letters, game.Move{}, false},
		{"digit", "4", letters, game.Move{}, false},
		{"number", "42", numbers, game.Integer(42), true},
		{"number out of range", "101", numbers, game.Move{}, false},
		{"not a number", "forty", numbers, game.Move{}, false},
		{"q quits numbers", "Q", numbers, game.Quit(), true},
		{"cell with space", "1 3", cells, game.Coordinate(0, 2), true},
		{"cell with comma", "3,1", cells, game.Coordinate(2, 0), true},
		{"cell off board", "4 1", cells, game.Move{}, false},
		{"single field", "2", cells, game.Move{}, false},
		{"symbol", "Rock", symbols, game.Symbol("rock"), true},
		{"unknown symbol", "lizard", symbols, game.Move{}, false},
		{"blank rolls", "", roll, game.YesNo(true), true},
		{"blank needs an answer", "", yesno, game.Move{}, false},
		{"upper case yes", "Y", yesno, game.YesNo(true), true},
		{"no", "n", yesno, game.YesNo(false), true},
		{"maybe", "maybe", yesno, game.Move{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.line, c.domain)
			if !c.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestConsoleRequestMove(t *testing.T) {
	t.Run("re-prompting on malformed input", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsole(strings.NewReader("lizard\n\npaper\n"), &out)
		prompt := engine.Prompt{Domain: game.RockPaperScissors().Domain}

		m, err := c.RequestMove(context.Background(), prompt)

		require.NoError(t, err)
		require.Equal(t, game.Symbol("paper"), m)
		require.Equal(t, 3, strings.Count(out.String(), "Enter (rock/paper/scissors)"), "Should prompt once per line")
		require.Contains(t, out.String(), "invalid input, please choose again")
	})

	t.Run("asking again needs an answer", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsole(strings.NewReader("\nn\n"), &out)

		m, err := c.RequestMove(context.Background(), engine.Prompt{Domain: game.YesNoDomain("Play again? (y/n)")})

		require.NoError(t, err)
		require.Equal(t, game.YesNo(false), m)
		require.Contains(t, out.String(), "please answer y or n", "Blank line should re-prompt")
	})

	t.Run("pressing enter rolls", func(t *testing.T) {
		c := NewConsole(strings.NewReader("\n"), io.Discard)

		m, err := c.RequestMove(context.Background(), engine.Prompt{Domain: game.Dice().Domain})

		require.NoError(t, err)
		require.Equal(t, game.YesNo(true), m)
	})

	t.Run("end of input", func(t *testing.T) {
		c := NewConsole(strings.NewReader(""), io.Discard)

		_, err := c.RequestMove(context.Background(), engine.Prompt{Domain: game.LetterDomain("Guess")})

		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewConsole(strings.NewReader("a\n"), io.Discard)

		_, err := c.RequestMove(ctx, engine.Prompt{Domain: game.LetterDomain("Guess")})

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("tic-tac-toe prompt names the player", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsole(strings.NewReader("2 2\n"), &out)
		prompt := engine.Prompt{
			Domain: game.TicTacToe().Domain,
			View:   game.BoardView{Next: game.O},
		}

		m, err := c.RequestMove(context.Background(), prompt)

		require.NoError(t, err)
		require.Equal(t, game.Coordinate(1, 1), m)
		require.True(t, strings.HasPrefix(out.String(), "Player O - "))
	})
}
