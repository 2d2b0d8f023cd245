package game

import "fmt"

var rpsChoices = []string{"rock", "paper", "scissors"}

// beats maps each choice to the one it defeats.
var beats = map[string]string{
	"rock":     "scissors",
	"scissors": "paper",
	"paper":    "rock",
}

// RockPaperScissors plays one round per Session against a uniformly drawn
// computer choice. Rounds continue until the player quits. A round is a single
// move, so no Option applies; opts is accepted to fit the catalog.
func RockPaperScissors(opts ...Option) Definition {
	return Definition{
		Name:         "rps",
		Title:        "Rock Paper Scissors",
		Domain:       SymbolDomain(rpsChoices, "Enter (rock/paper/scissors) or 'q' to quit"),
		AllowRepeats: true,
		Replay:       ReplayAlways,
		Setup: func(rng RandomSource) Board {
			return &rpsBoard{rng: rng}
		},
	}
}

// RoundView shows both sides of a symmetric round.
type RoundView struct {
	Player   string
	Computer string
}

func (v RoundView) String() string {
	if v.Player == "" {
		return "waiting for a choice"
	}
	return fmt.Sprintf("you chose %s, computer chose %s", v.Player, v.Computer)
}

type rpsBoard struct {
	rng      RandomSource
	player   string
	computer string
}

func (b *rpsBoard) Legal(m Move) error { return nil }

func (b *rpsBoard) Play(m Move) {
	b.player = m.Symbol
	b.computer = rpsChoices[b.rng.Intn(len(rpsChoices))]
}

func (b *rpsBoard) Won() bool    { return b.player != "" && beats[b.player] == b.computer }
func (b *rpsBoard) Lost() bool   { return b.player != "" && beats[b.computer] == b.player }
func (b *rpsBoard) Missed() bool { return false }
func (b *rpsBoard) Tied() bool   { return b.player != "" && b.player == b.computer }

func (b *rpsBoard) View() View {
	return RoundView{Player: b.player, Computer: b.computer}
}

func (b *rpsBoard) Verdict(s Status) (string, string) {
	switch s {
	case Won:
		return PlayerName, fmt.Sprintf("%s beats %s", b.player, b.computer)
	case Lost:
		return ComputerName, fmt.Sprintf("%s beats %s", b.computer, b.player)
	default:
		return "", fmt.Sprintf("both chose %s", b.player)
	}
}
