package game

// Replay says what a driver does once a Session of the game ends.
type Replay int

const (
	ReplayNever  Replay = iota // one Session per run
	ReplayAlways               // start the next round until the player quits
	ReplayAsk                  // ask the player whether to play again
)

// Board is the game-specific state of one Session. The Session owns it and
// only calls Play with moves that passed Domain, repeat and Legal checks.
type Board interface {
	// Legal rejects moves the domain allows but the current state does not.
	Legal(m Move) error
	Play(m Move)
	// Won and Lost are the win and lose predicates over the state after Play.
	Won() bool
	Lost() bool
	// Missed reports whether the last move counts against the attempt budget.
	Missed() bool
	// Tied is consulted only after Won, Lost and attempt exhaustion.
	Tied() bool
	View() View
	// Verdict names the winner and a reason for a terminal status.
	Verdict(s Status) (winner, reason string)
}

// Definition describes one game variant. It is immutable and shared by
// every Session started from it.
type Definition struct {
	Name         string
	Title        string
	Domain       Domain
	MaxAttempts  int // 0 means unbounded
	AllowRepeats bool
	Replay       Replay
	Setup        func(rng RandomSource) Board
}

func (d Definition) Bounded() bool {
	return d.MaxAttempts > 0
}
