// Package render prints session events as plain text for a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"arcade/game"
)

// Console writes a human readable transcript of each Session.
type Console struct {
	w        io.Writer
	attempts int
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Render(ev game.Event) {
	switch ev := ev.(type) {
	case game.Started:
		fmt.Fprintf(c.w, "=== %s ===\n", ev.Title)
		c.attempts = ev.Attempts
		c.view(ev.View)
	case game.StepResult:
		c.step(ev)
	case game.Rejection:
		fmt.Fprintln(c.w, rejectionText(ev.Err))
	case game.Outcome:
		fmt.Fprintln(c.w, outcomeText(ev))
	}
}

func (c *Console) step(res game.StepResult) {
	if res.Status == game.Aborted {
		return
	}
	if bv, ok := res.View.(game.BombView); ok {
		c.bomb(bv, res.Status)
	} else {
		c.view(res.View)
	}
	if !res.Unbounded {
		if res.AttemptsRemaining < c.attempts {
			fmt.Fprintf(c.w, "Wrong guess! Remaining attempts: %d\n", res.AttemptsRemaining)
		}
		c.attempts = res.AttemptsRemaining
	}
}

func (c *Console) view(v game.View) {
	switch v := v.(type) {
	case game.BoardView:
		c.board(v.Cells)
	case game.WordView:
		fmt.Fprintf(c.w, "Current word: %s\n", v.Pattern)
	case game.BombView:
		fmt.Fprintf(c.w, "Current range: %d - %d\n", v.Low, v.High)
	case game.RoundView:
		if v.Computer != "" {
			fmt.Fprintf(c.w, "Computer chose: %s\n", v.Computer)
		}
	case game.DiceView:
		if v.Player > 0 {
			fmt.Fprintf(c.w, "Your dice: %d\nComputer's dice: %d\n", v.Player, v.Computer)
		}
	case nil:
	default:
		fmt.Fprintln(c.w, v.String())
	}
}

func (c *Console) board(cells game.Grid) {
	for i, row := range cells {
		marks := make([]string, len(row))
		for j, m := range row {
			marks[j] = string(rune(m))
		}
		fmt.Fprintln(c.w, strings.Join(marks, " | "))
		if i < len(cells)-1 {
			fmt.Fprintln(c.w, "---------")
		}
	}
}

func (c *Console) bomb(v game.BombView, status game.Status) {
	switch v.Hint {
	case game.HintTooSmall:
		fmt.Fprintln(c.w, "Too small, the bomb is in a larger range!")
	case game.HintTooBig:
		fmt.Fprintln(c.w, "Too big, the bomb is in a smaller range!")
	case game.HintOutside:
		fmt.Fprintf(c.w, "Please guess between %d-%d!\n", v.Low, v.High)
	}
	if status == game.InProgress {
		fmt.Fprintf(c.w, "\nCurrent range: %d - %d\n", v.Low, v.High)
	}
}

func rejectionText(err error) string {
	if errors.Is(err, game.ErrInvalidMove) {
		return fmt.Sprintf("Try again: %v", err)
	}
	return err.Error()
}

func outcomeText(out game.Outcome) string {
	switch out.Status {
	case game.Won:
		if out.Winner != game.PlayerName && out.Winner != "" {
			return fmt.Sprintf("Player %s wins!", out.Winner)
		}
		return fmt.Sprintf("You win! (%s)", out.Reason)
	case game.Lost:
		return fmt.Sprintf("You lose! (%s)", out.Reason)
	case game.Tied:
		return fmt.Sprintf("It's a tie! (%s)", out.Reason)
	default:
		return "Game over!"
	}
}
