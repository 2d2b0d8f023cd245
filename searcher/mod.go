// Package searcher picks moves with Monte Carlo tree search. Goroutines
// share one tree and spread out with virtual losses.
package searcher

import (
	"math"

	"arcade/game"
)

// State is a two-player position the search can play forward.
type State interface {
	Player() string
	// LegalMoves is empty once the game is over.
	LegalMoves() []game.Move
	Play(move game.Move) State
	// Winner is empty for draws and unfinished games.
	Winner() string
}

const CSquared = 2.0 // Exploration constant

const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0 // Also the virtual loss applied while a path is being simulated
)

func rewarder(winner string) func(player string) float64 {
	return func(player string) float64 {
		switch winner {
		case "":
			return Draw
		case player:
			return Win
		default:
			return Loss
		}
	}
}

func ucb1(rewards, visits, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(c2LnN/visits)
}
