package game

import (
	"time"

	"golang.org/x/exp/rand"
)

// RandomSource draws the computer side of a game: secrets, targets and rolls.
type RandomSource interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewRandomSource returns a seeded pseudo-random source. A zero seed uses the clock.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// FixedSource replays a fixed sequence of draws, each reduced modulo n.
// The sequence wraps around when exhausted.
type FixedSource struct {
	Values []int
	next   int
}

func NewFixedSource(values ...int) *FixedSource {
	return &FixedSource{Values: values}
}

func (f *FixedSource) Intn(n int) int {
	if len(f.Values) == 0 || n <= 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
