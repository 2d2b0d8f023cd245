package game

import (
	"errors"
	"fmt"

	"arcade/meta"
)

// Dice rolls one die for each side; the higher roll wins the round. Like
// RockPaperScissors it has no attempt budget and ignores opts.
func Dice(opts ...Option) Definition {
	return Definition{
		Name:         "dice",
		Title:        "Dice Rolling",
		Domain:       PressEnterDomain("Press Enter to roll the dice"),
		AllowRepeats: true,
		Replay:       ReplayAsk,
		Setup: func(rng RandomSource) Board {
			return &diceBoard{rng: rng}
		},
	}
}

// DiceView shows both rolls; zero means not rolled yet.
type DiceView struct {
	Player   int
	Computer int
}

func (v DiceView) String() string {
	if v.Player == 0 {
		return "dice not rolled"
	}
	return fmt.Sprintf("your dice: %d, computer's dice: %d", v.Player, v.Computer)
}

type diceBoard struct {
	rng      RandomSource
	player   int
	computer int
}

func (b *diceBoard) Legal(m Move) error {
	if !m.Yes {
		return errors.New("answer yes to roll")
	}
	return nil
}

func (b *diceBoard) Play(m Move) {
	b.player = b.roll()
	b.computer = b.roll()
}

func (b *diceBoard) roll() int {
	return b.rng.Intn(meta.DiceFaces) + 1
}

func (b *diceBoard) rolled() bool { return b.player > 0 }

func (b *diceBoard) Won() bool    { return b.rolled() && b.player > b.computer }
func (b *diceBoard) Lost() bool   { return b.rolled() && b.player < b.computer }
func (b *diceBoard) Missed() bool { return false }
func (b *diceBoard) Tied() bool   { return b.rolled() && b.player == b.computer }

func (b *diceBoard) View() View {
	return DiceView{Player: b.player, Computer: b.computer}
}

func (b *diceBoard) Verdict(s Status) (string, string) {
	reason := fmt.Sprintf("%d against %d", b.player, b.computer)
	switch s {
	case Won:
		return PlayerName, reason
	case Lost:
		return ComputerName, reason
	default:
		return "", reason
	}
}
