package engine_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"arcade/communication"
	"arcade/communication/client"
	"arcade/communication/server"
	"arcade/engine"
	"arcade/game"
	"arcade/player"

	"github.com/stretchr/testify/require"
)

func newRemoteServer(t *testing.T) *client.Client {
	t.Helper()
	ts := httptest.NewServer(server.New(server.NewMemoryStore()).Router())
	t.Cleanup(ts.Close)
	return client.New(ts.URL, ts.Client())
}

func TestRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("playing to a win", func(t *testing.T) {
		c := newRemoteServer(t)
		rec := &recorder{}
		input := player.NewScripted(
			game.Coordinate(0, 0), game.Coordinate(0, 0), // occupied, re-requested
			game.Coordinate(1, 0), game.Coordinate(0, 1),
			game.Coordinate(1, 1), game.Coordinate(0, 2),
		)
		e := engine.NewRemote(c, communication.NewSessionRequest{Game: "tictactoe"}, input, rec, 0)

		out, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.Won, out.Status)
		require.Equal(t, "X", out.Winner)
		require.Equal(t, 5, out.Moves)
		require.Equal(t, 1, rec.count(isRejection))
		require.IsType(t, game.Started{}, rec.events[0])
		require.Equal(t, out, rec.events[len(rec.events)-1])

		view, ok := rec.events[len(rec.events)-2].(game.StepResult).View.(game.BoardView)
		require.True(t, ok, "Views should come back typed")
		require.Equal(t, game.X, view.Cells[0][2])
	})

	t.Run("end of input quits on the server", func(t *testing.T) {
		c := newRemoteServer(t)
		e := engine.NewRemote(c, communication.NewSessionRequest{Game: "words"}, player.NewScripted(), nil, 0)

		out, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.Aborted, out.Status)
		require.Equal(t, "player quit", out.Reason)

		sess, err := c.Session(ctx, out.SessionID)
		require.NoError(t, err)
		require.Equal(t, game.Aborted, sess.Status)
	})

	t.Run("move limit quits", func(t *testing.T) {
		c := newRemoteServer(t)
		input := player.NewScripted(game.Integer(0), game.Integer(0), game.Integer(0))
		e := engine.NewRemote(c, communication.NewSessionRequest{Game: "bomb"}, input, nil, 2)

		out, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.Aborted, out.Status)
		require.Equal(t, 0, out.Moves)
		require.Equal(t, 1, input.Remaining())
	})

	t.Run("unknown game", func(t *testing.T) {
		c := newRemoteServer(t)
		e := engine.NewRemote(c, communication.NewSessionRequest{Game: "chess"}, player.NewScripted(), nil, 0)

		_, err := e.Run(ctx)

		require.ErrorIs(t, err, game.ErrUnknownGame)
		require.ErrorContains(t, err, "tictactoe", "Error should list the offered games")
	})

	t.Run("session finished by another client", func(t *testing.T) {
		c := newRemoteServer(t)
		rec := &recorder{}
		input := inputFunc(func(ctx context.Context, p engine.Prompt) (game.Move, error) {
			id := rec.events[0].(game.Started).SessionID
			_, err := c.Play(ctx, id, game.Quit())
			return game.Letter('a'), err
		})
		e := engine.NewRemote(c, communication.NewSessionRequest{Game: "words"}, input, rec, 0)

		out, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.Aborted, out.Status)
		require.Equal(t, "player quit", out.Reason, "Outcome should come from the server")
		require.Zero(t, rec.count(isRejection))
	})
}

type inputFunc func(ctx context.Context, p engine.Prompt) (game.Move, error)

func (f inputFunc) RequestMove(ctx context.Context, p engine.Prompt) (game.Move, error) {
	return f(ctx, p)
}

func TestClientRejections(t *testing.T) {
	ctx := context.Background()
	c := newRemoteServer(t)

	games, err := c.Games(ctx)
	require.NoError(t, err)
	require.Len(t, games, len(game.Names()))

	sess, err := c.NewSession(ctx, communication.NewSessionRequest{Game: "words"})
	require.NoError(t, err)

	_, err = c.Play(ctx, sess.ID, game.Integer(5))
	require.ErrorIs(t, err, game.ErrInvalidMove)

	_, err = c.Session(ctx, "missing")
	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 404, se.Code)
	require.NotErrorIs(t, err, game.ErrInvalidMove)

	_, err = c.Play(ctx, sess.ID, game.Quit())
	require.NoError(t, err)
	_, err = c.Play(ctx, sess.ID, game.Letter('a'))
	require.ErrorIs(t, err, client.ErrFinished)
}
