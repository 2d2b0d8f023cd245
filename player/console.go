package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"arcade/engine"
	"arcade/game"
)

// Console reads moves typed on a terminal, one per line, and re-prompts
// until a line parses into a move of the requested domain.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) RequestMove(ctx context.Context, p engine.Prompt) (game.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		fmt.Fprint(c.out, promptText(p)+": ")

		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return game.Move{}, fmt.Errorf("failed to read input: %w", err)
			}
			return game.Move{}, io.EOF
		}

		m, err := Parse(c.in.Text(), p.Domain)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return m, nil
	}
}

func promptText(p engine.Prompt) string {
	if v, ok := p.View.(game.BoardView); ok && p.Domain.Kind == game.CoordinateMove {
		return fmt.Sprintf("Player %c - %s", v.Next, p.Domain.Prompt)
	}
	return p.Domain.Prompt
}

var (
	errChoice = errors.New("invalid input, please choose again")
	errLetter = errors.New("please enter a letter")
	errNumber = errors.New("invalid input, please enter a number")
	errCell   = errors.New("invalid input, enter row and column (1-3), e.g. 2 3")
	errYesNo  = errors.New("please answer y or n")
)

// Parse turns one line of text into a move of domain d. "quit" always
// quits; "q" quits too except where it is a legal letter guess.
// Coordinates are typed 1-based as "row col" or "row,col".
func Parse(line string, d game.Domain) (game.Move, error) {
	text := strings.ToLower(strings.TrimSpace(line))
	if text == "quit" || (text == "q" && d.Kind != game.LetterMove) {
		return game.Quit(), nil
	}

	var m game.Move
	switch d.Kind {
	case game.LetterMove:
		r, size := utf8.DecodeRuneInString(text)
		if size == 0 || size != len(text) {
			return game.Move{}, errLetter
		}
		m = game.Letter(r)
		if !d.Contains(m) {
			return game.Move{}, errLetter
		}
	case game.IntegerMove:
		n, err := strconv.Atoi(text)
		if err != nil {
			return game.Move{}, errNumber
		}
		m = game.Integer(n)
		if !d.Contains(m) {
			return game.Move{}, fmt.Errorf("please guess between %d-%d", d.Min, d.Max)
		}
	case game.CoordinateMove:
		fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' })
		if len(fields) != 2 {
			return game.Move{}, errCell
		}
		row, err1 := strconv.Atoi(fields[0])
		col, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return game.Move{}, errCell
		}
		m = game.Coordinate(row-1, col-1)
		if !d.Contains(m) {
			return game.Move{}, errCell
		}
	case game.SymbolMove:
		m = game.Symbol(text)
		if !d.Contains(m) {
			return game.Move{}, errChoice
		}
	case game.YesNoMove:
		switch {
		case text == "" && d.BlankYes, text == "y", text == "yes":
			m = game.YesNo(true)
		case text == "n", text == "no":
			m = game.YesNo(false)
		default:
			return game.Move{}, errYesNo
		}
	default:
		return game.Move{}, errChoice
	}
	return m, nil
}
