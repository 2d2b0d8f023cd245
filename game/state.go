package game

import (
	"fmt"
	"time"

	"arcade/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session is one playthrough of a Definition, from Start to a terminal
// Status. It is not safe for concurrent use; the driver running it is its
// only writer.
type Session struct {
	ID                string
	Definition        Definition
	MovesMade         []Move // in the order they were applied
	AttemptsRemaining int    // meaningless when Unbounded
	Unbounded         bool
	Status            Status
	StartedAt         time.Time
	EndedAt           time.Time

	board Board
	final *StepResult
}

// Start initializes a fresh Session. The random source drives every
// computer-side draw of the game; a nil source is replaced by a clock-seeded one.
func Start(def Definition, rng RandomSource) *Session {
	if rng == nil {
		rng = NewRandomSource(0)
	}
	s := &Session{
		ID:         uuid.NewString(),
		Definition: def,
		MovesMade:  []Move{},
		Status:     InProgress,
		StartedAt:  time.Now(),
		board:      def.Setup(rng),
	}
	if def.Bounded() {
		s.AttemptsRemaining = def.MaxAttempts
	} else {
		s.Unbounded = true
	}
	log.Debug().Str("session", s.ID).Str("game", def.Name).Msg("session started")
	return s
}

// Step validates and applies one move. An invalid move returns an error
// wrapping ErrInvalidMove and leaves the Session unchanged. Once the Session
// is terminal, Step is a no-op returning the final result.
func (s *Session) Step(m Move) (StepResult, error) {
	if s.final != nil {
		return *s.final, nil
	}
	if m.IsQuit() {
		return s.Abort("player quit"), nil
	}
	if err := s.validate(m); err != nil {
		return s.Snapshot(), err
	}

	s.MovesMade = append(s.MovesMade, m)
	s.board.Play(m)

	switch {
	case s.board.Won():
		return s.finish(m, Won, ""), nil
	case s.board.Lost():
		return s.finish(m, Lost, ""), nil
	}

	if !s.Unbounded && s.board.Missed() {
		s.AttemptsRemaining--
		if s.AttemptsRemaining == 0 {
			return s.finish(m, Lost, ""), nil
		}
	}

	// Ties are decided only after every win and loss check.
	if s.board.Tied() {
		return s.finish(m, Tied, ""), nil
	}
	return s.result(m), nil
}

// Abort ends an in-progress Session with the given reason.
func (s *Session) Abort(reason string) StepResult {
	if s.final != nil {
		return *s.final
	}
	return s.finish(Quit(), Aborted, reason)
}

func (s *Session) IsTerminal() bool {
	return s.Status.Terminal()
}

// Snapshot returns the current observable state without applying a move.
func (s *Session) Snapshot() StepResult {
	if s.final != nil {
		return *s.final
	}
	var last Move
	if n := len(s.MovesMade); n > 0 {
		last = s.MovesMade[n-1]
	}
	return s.result(last)
}

// Outcome is nil until the Session is terminal.
func (s *Session) Outcome() *Outcome {
	if s.final == nil {
		return nil
	}
	return s.final.Outcome
}

func (s *Session) validate(m Move) error {
	if !s.Definition.Domain.Contains(m) {
		return fmt.Errorf("%w: %s is outside the %s domain", ErrInvalidMove, m, s.Definition.Domain.Kind)
	}
	if !s.Definition.AllowRepeats && utils.Contains(s.MovesMade, m) {
		return fmt.Errorf("%w: %s was already played", ErrInvalidMove, m)
	}
	if err := s.board.Legal(m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	return nil
}

func (s *Session) result(m Move) StepResult {
	return StepResult{
		SessionID:         s.ID,
		Move:              m,
		Status:            s.Status,
		AttemptsRemaining: s.AttemptsRemaining,
		Unbounded:         s.Unbounded,
		View:              s.board.View(),
	}
}

func (s *Session) finish(m Move, status Status, reason string) StepResult {
	s.Status = status
	s.EndedAt = time.Now()

	winner := ""
	if status != Aborted {
		winner, reason = s.board.Verdict(status)
	}
	res := s.result(m)
	res.Outcome = &Outcome{
		SessionID: s.ID,
		Game:      s.Definition.Name,
		Status:    status,
		Winner:    winner,
		Reason:    reason,
		Moves:     len(s.MovesMade),
	}
	s.final = &res

	log.Debug().Str("session", s.ID).Stringer("status", status).Str("reason", reason).Msg("session finished")
	return res
}

// Started describes the Session for output sinks.
func (s *Session) Started() Started {
	return Started{
		SessionID: s.ID,
		Game:      s.Definition.Name,
		Title:     s.Definition.Title,
		View:      s.board.View(),
		Attempts:  s.AttemptsRemaining,
		Unbounded: s.Unbounded,
	}
}
