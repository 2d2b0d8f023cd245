package game

import (
	"fmt"

	"arcade/meta"
)

// Hints reported by BombView after each guess.
const (
	HintTooSmall = "too small"
	HintTooBig   = "too big"
	HintOutside  = "outside range"
	HintBoom     = "boom"
)

// NumberBomb hides a secret in [1,100]. Each guess narrows the surviving
// range; hitting the secret loses, collapsing the range to a single number
// wins. Without an attempt budget, guesses outside the surviving range are
// rejected; with one, they are misses.
func NumberBomb(opts ...Option) Definition {
	o := newOptions(opts)
	bounded := o.maxAttempts > 0
	return Definition{
		Name:         "bomb",
		Title:        "Number Bomb",
		Domain:       IntegerDomain(meta.BombLow, meta.BombHigh, "Guess a number"),
		MaxAttempts:  o.maxAttempts,
		AllowRepeats: true,
		Setup: func(rng RandomSource) Board {
			return &bombBoard{
				secret:  meta.BombLow + rng.Intn(meta.BombHigh-meta.BombLow+1),
				low:     meta.BombLow,
				high:    meta.BombHigh,
				bounded: bounded,
			}
		},
	}
}

// BombView is the surviving range and the hint for the last guess.
type BombView struct {
	Low  int
	High int
	Hint string
}

func (v BombView) String() string {
	if v.Hint == "" {
		return fmt.Sprintf("range %d-%d", v.Low, v.High)
	}
	return fmt.Sprintf("%s, range %d-%d", v.Hint, v.Low, v.High)
}

type bombBoard struct {
	secret  int
	low     int
	high    int
	bounded bool
	hint    string
	hit     bool
	missed  bool
}

func (b *bombBoard) inRange(n int) bool {
	return n >= b.low && n <= b.high
}

func (b *bombBoard) Legal(m Move) error {
	if !b.bounded && !b.inRange(m.Number) {
		return fmt.Errorf("guess between %d-%d", b.low, b.high)
	}
	return nil
}

func (b *bombBoard) Play(m Move) {
	n := m.Number
	b.missed = false
	switch {
	case !b.inRange(n):
		b.missed = true
		b.hint = HintOutside
	case n == b.secret:
		b.hit = true
		b.hint = HintBoom
	case n < b.secret:
		b.low = n + 1
		b.hint = HintTooSmall
	default:
		b.high = n - 1
		b.hint = HintTooBig
	}
}

// The surviving range always contains the secret, so low >= high means the
// secret is the only number left.
func (b *bombBoard) Won() bool    { return !b.hit && b.low >= b.high }
func (b *bombBoard) Lost() bool   { return b.hit }
func (b *bombBoard) Missed() bool { return b.missed }
func (b *bombBoard) Tied() bool   { return false }

func (b *bombBoard) View() View {
	return BombView{Low: b.low, High: b.high, Hint: b.hint}
}

func (b *bombBoard) Verdict(s Status) (string, string) {
	switch {
	case s == Won:
		return PlayerName, fmt.Sprintf("the bomb was %d", b.secret)
	case b.hit:
		return ComputerName, fmt.Sprintf("boom, the bomb was %d", b.secret)
	default:
		return ComputerName, fmt.Sprintf("out of attempts, the bomb was %d", b.secret)
	}
}
