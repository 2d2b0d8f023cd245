package game

import (
	"fmt"
	"sort"
)

// Option configures a Definition built by one of the constructors below.
type Option func(o *options)

type options struct {
	maxAttempts int
	vsComputer  bool
	strategy    Strategy
	words       []string
}

// WithMaxAttempts sets the attempt budget of games that count misses
// (words, bomb). Non-positive values keep the game's default.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithComputerOpponent makes the computer answer every tic-tac-toe move.
func WithComputerOpponent() Option {
	return func(o *options) {
		o.vsComputer = true
	}
}

// WithStrategy lets s pick the computer's tic-tac-toe replies. It implies
// WithComputerOpponent.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithWords replaces the word guessing corpus. An empty list keeps the default.
func WithWords(words []string) Option {
	return func(o *options) {
		if len(words) > 0 {
			o.words = words
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var catalog = map[string]func(...Option) Definition{
	"rps":       RockPaperScissors,
	"dice":      Dice,
	"tictactoe": TicTacToe,
	"words":     WordGuess,
	"bomb":      NumberBomb,
}

// Lookup builds the named game.
func Lookup(name string, opts ...Option) (Definition, error) {
	build, ok := catalog[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return build(opts...), nil
}

// Names lists the playable games in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
