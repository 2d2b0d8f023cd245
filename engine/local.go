package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"arcade/game"
	"arcade/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// WithMaxMoves caps the move requests of one Session, rejected ones included.
// A Session hitting the cap is aborted.
func WithMaxMoves(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

// WithMaxRounds caps the Sessions a Match plays.
func WithMaxRounds(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRounds = n
		}
	}
}

func WithRandomSource(rng game.RandomSource) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// Engine drives Sessions of one game between an input provider and an output sink.
type Engine struct {
	def       game.Definition
	input     InputProvider
	output    OutputSink
	rng       game.RandomSource
	maxMoves  int
	maxRounds int
}

func New(def game.Definition, input InputProvider, output OutputSink, options ...Option) *Engine {
	e := &Engine{ // Default values
		def:      def,
		input:    input,
		output:   output,
		maxMoves: meta.MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	if e.output == nil {
		e.output = Sinks{}
	}
	if e.rng == nil {
		e.rng = game.NewRandomSource(0)
	}
	return e
}

// Run plays one Session until it reaches a terminal status.
func (e *Engine) Run(ctx context.Context) (game.Outcome, error) {
	s := game.Start(e.def, e.rng)
	log.Info().Str("game", e.def.Name).Str("session", s.ID).Object("domain", e.def.Domain).Msg("session started")
	e.output.Render(s.Started())

	requests := 0
	for !s.IsTerminal() {
		if err := ctx.Err(); err != nil {
			e.output.Render(s.Abort("cancelled"))
			return e.finish(s), err
		}
		if requests >= e.maxMoves {
			log.Warn().Str("session", s.ID).Int("max_moves", e.maxMoves).Msg("move limit reached")
			e.output.Render(s.Abort("move limit reached"))
			break
		}

		snap := s.Snapshot()
		move, err := e.input.RequestMove(ctx, Prompt{
			Game:      e.def.Name,
			Domain:    e.def.Domain,
			View:      snap.View,
			Attempts:  snap.AttemptsRemaining,
			Unbounded: snap.Unbounded,
		})
		if errors.Is(err, io.EOF) {
			move = game.Quit()
		} else if err != nil {
			e.output.Render(s.Abort("input failed"))
			return e.finish(s), fmt.Errorf("failed to request move: %w", err)
		}
		requests++

		res, err := s.Step(move)
		if err != nil {
			log.Warn().Err(err).Str("session", s.ID).Stringer("move", move).Msg("move rejected")
			e.output.Render(game.Rejection{SessionID: s.ID, Move: move, Err: err})
			continue
		}
		log.Debug().Str("session", s.ID).Stringer("move", move).Stringer("status", res.Status).Msg("move applied")
		e.output.Render(res)
	}

	return e.finish(s), nil
}

func (e *Engine) finish(s *game.Session) game.Outcome {
	out := *s.Outcome()
	e.output.Render(out)
	log.Info().
		Str("game", out.Game).
		Str("session", out.SessionID).
		Stringer("status", out.Status).
		Str("winner", out.Winner).
		Int("moves", out.Moves).
		Msg("session finished")
	return out
}

// Match plays Sessions back to back as the game's replay policy allows,
// stopping when the player quits, declines to play again or the round cap
// is reached.
func (e *Engine) Match(ctx context.Context) ([]game.Outcome, error) {
	var outcomes []game.Outcome
	defer func() {
		t := Summarize(outcomes)
		log.Info().Str("game", e.def.Name).
			Int("rounds", len(outcomes)).
			Int("won", t.Won).Int("lost", t.Lost).Int("tied", t.Tied).Int("aborted", t.Aborted).
			Msg("match finished")
	}()

	for {
		out, err := e.Run(ctx)
		outcomes = append(outcomes, out)
		if err != nil {
			return outcomes, err
		}
		if out.Status == game.Aborted || (e.maxRounds > 0 && len(outcomes) >= e.maxRounds) {
			return outcomes, nil
		}

		switch e.def.Replay {
		case game.ReplayNever:
			return outcomes, nil
		case game.ReplayAsk:
			again, err := e.askAgain(ctx)
			if err != nil || !again {
				return outcomes, err
			}
		}
	}
}

func (e *Engine) askAgain(ctx context.Context) (bool, error) {
	move, err := e.input.RequestMove(ctx, Prompt{
		Game:   e.def.Name,
		Domain: game.YesNoDomain("Play again? (y/n)"),
	})
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to request replay: %w", err)
	}
	return move.Kind == game.YesNoMove && move.Yes, nil
}

// Tally counts outcomes by status.
type Tally struct {
	Won     int
	Lost    int
	Tied    int
	Aborted int
}

func Summarize(outcomes []game.Outcome) Tally {
	var t Tally
	for _, out := range outcomes {
		switch out.Status {
		case game.Won:
			t.Won++
		case game.Lost:
			t.Lost++
		case game.Tied:
			t.Tied++
		case game.Aborted:
			t.Aborted++
		}
	}
	return t
}
