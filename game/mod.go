// Package game holds the guess/feedback engine: a Session state machine
// driven one Move at a time over a Definition, and the five game
// definitions built on it.
package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove rejects a move outside the domain, a forbidden repeat or
	// a move the board does not accept. The Session is left untouched.
	ErrInvalidMove = errors.New("invalid move")
	ErrUnknownGame = errors.New("unknown game")
)

// Status of a Session. Every status but InProgress is terminal.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
	Tied
	Aborted
)

var statusNames = []string{"in_progress", "won", "lost", "tied", "aborted"}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) Terminal() bool {
	return s != InProgress
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

// Names used for Outcome.Winner in player-versus-computer games.
const (
	PlayerName   = "player"
	ComputerName = "computer"
)

// View is the observable state of a board after a step, for rendering.
type View interface {
	String() string
}

// Event is anything the engine hands to an output sink.
type Event interface {
	event()
}

// Started announces a new Session and its initial view.
type Started struct {
	SessionID string
	Game      string
	Title     string
	View      View
	Attempts  int
	Unbounded bool
}

// Outcome is emitted once per Session when it reaches a terminal status.
type Outcome struct {
	SessionID string
	Game      string
	Status    Status
	Winner    string // empty on a tie or abort
	Reason    string
	Moves     int
}

// StepResult is the observable state after a Step.
type StepResult struct {
	SessionID         string
	Move              Move
	Status            Status
	AttemptsRemaining int
	Unbounded         bool
	View              View
	Outcome           *Outcome // set once Status is terminal
}

// Rejection reports a move that Step refused.
type Rejection struct {
	SessionID string
	Move      Move
	Err       error
}

func (Started) event()    {}
func (StepResult) event() {}
func (Outcome) event()    {}
func (Rejection) event()  {}
