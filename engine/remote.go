package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"arcade/communication"
	"arcade/communication/client"
	"arcade/game"
	"arcade/meta"

	"github.com/rs/zerolog/log"
)

// Remote plays a session hosted by an arcade server. The server owns the
// rules; Remote relays moves and turns the replies back into events.
type Remote struct {
	client   *client.Client
	req      communication.NewSessionRequest
	input    InputProvider
	output   OutputSink
	maxMoves int
}

// NewRemote prepares a remote session of req.Game. A non-positive maxMoves
// falls back to meta.MaxMoves.
func NewRemote(c *client.Client, req communication.NewSessionRequest, input InputProvider, output OutputSink, maxMoves int) *Remote {
	if output == nil {
		output = Sinks{}
	}
	if maxMoves <= 0 {
		maxMoves = meta.MaxMoves
	}
	return &Remote{client: c, req: req, input: input, output: output, maxMoves: maxMoves}
}

func (e *Remote) Run(ctx context.Context) (game.Outcome, error) {
	if err := e.checkGame(ctx); err != nil {
		return game.Outcome{}, err
	}
	sess, err := e.client.NewSession(ctx, e.req)
	if err != nil {
		return game.Outcome{}, fmt.Errorf("failed to create remote session: %w", err)
	}
	domain, err := sess.Domain.Domain()
	if err != nil {
		return game.Outcome{}, fmt.Errorf("failed to read remote domain: %w", err)
	}
	log.Info().Str("game", sess.Game).Str("session", sess.ID).Object("domain", domain).Msg("remote session started")
	e.output.Render(game.Started{
		SessionID: sess.ID,
		Game:      sess.Game,
		Title:     sess.Title,
		View:      sess.View.View(),
		Attempts:  sess.AttemptsRemaining,
		Unbounded: sess.Unbounded,
	})

	requests := 0
	for sess.Outcome == nil {
		if err := ctx.Err(); err != nil {
			return e.finish(aborted(sess, "cancelled")), err
		}

		var move game.Move
		if requests >= e.maxMoves {
			log.Warn().Str("session", sess.ID).Int("max_moves", e.maxMoves).Msg("move limit reached")
			move = game.Quit()
		} else {
			move, err = e.input.RequestMove(ctx, Prompt{
				Game:      sess.Game,
				Domain:    domain,
				View:      sess.View.View(),
				Attempts:  sess.AttemptsRemaining,
				Unbounded: sess.Unbounded,
			})
			if errors.Is(err, io.EOF) {
				move = game.Quit()
			} else if err != nil {
				return e.finish(aborted(sess, "input failed")), fmt.Errorf("failed to request move: %w", err)
			}
		}
		requests++

		next, err := e.client.Play(ctx, sess.ID, move)
		if errors.Is(err, client.ErrFinished) {
			// Someone else finished it; pick up the server's outcome.
			log.Warn().Str("session", sess.ID).Msg("session finished elsewhere")
			next, err = e.client.Session(ctx, sess.ID)
			if err != nil {
				return e.finish(aborted(sess, "server failed")), fmt.Errorf("failed to reload session: %w", err)
			}
			sess = next
			continue
		}
		if errors.Is(err, game.ErrInvalidMove) {
			log.Warn().Err(err).Str("session", sess.ID).Stringer("move", move).Msg("move rejected")
			e.output.Render(game.Rejection{SessionID: sess.ID, Move: move, Err: err})
			continue
		}
		if err != nil {
			return e.finish(aborted(sess, "server failed")), fmt.Errorf("failed to play move: %w", err)
		}
		sess = next
		e.output.Render(game.StepResult{
			SessionID:         sess.ID,
			Move:              move,
			Status:            sess.Status,
			AttemptsRemaining: sess.AttemptsRemaining,
			Unbounded:         sess.Unbounded,
			View:              sess.View.View(),
		})
	}

	return e.finish(game.Outcome{
		SessionID: sess.ID,
		Game:      sess.Game,
		Status:    sess.Outcome.Status,
		Winner:    sess.Outcome.Winner,
		Reason:    sess.Outcome.Reason,
		Moves:     sess.Outcome.Moves,
	}), nil
}

// checkGame fails early when the server does not offer the requested game.
func (e *Remote) checkGame(ctx context.Context) error {
	games, err := e.client.Games(ctx)
	if err != nil {
		return fmt.Errorf("failed to list remote games: %w", err)
	}
	names := make([]string, 0, len(games))
	for _, g := range games {
		if g.Name == e.req.Game {
			return nil
		}
		names = append(names, g.Name)
	}
	return fmt.Errorf("%w: %q, server offers %v", game.ErrUnknownGame, e.req.Game, names)
}

func (e *Remote) finish(out game.Outcome) game.Outcome {
	e.output.Render(out)
	log.Info().
		Str("game", out.Game).
		Str("session", out.SessionID).
		Stringer("status", out.Status).
		Int("moves", out.Moves).
		Msg("remote session finished")
	return out
}

// aborted describes a session given up on the client side. The server copy
// stays in progress.
func aborted(sess communication.SessionDTO, reason string) game.Outcome {
	return game.Outcome{
		SessionID: sess.ID,
		Game:      sess.Game,
		Status:    game.Aborted,
		Reason:    reason,
		Moves:     len(sess.Moves),
	}
}
