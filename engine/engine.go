package engine

import (
	"context"

	"arcade/game"
)

// Prompt is what an input provider needs to ask for the next move.
type Prompt struct {
	Game      string
	Domain    game.Domain
	View      game.View
	Attempts  int
	Unbounded bool
}

// InputProvider supplies moves on demand. It deals with malformed raw input
// itself and returns either a domain-valid move or a Quit. io.EOF is read as Quit.
type InputProvider interface {
	RequestMove(ctx context.Context, p Prompt) (game.Move, error)
}

// OutputSink observes the events of a Session.
type OutputSink interface {
	Render(ev game.Event)
}

// SinkFunc adapts a function to OutputSink.
type SinkFunc func(ev game.Event)

func (f SinkFunc) Render(ev game.Event) { f(ev) }

// Sinks fans every event out to each sink in order.
type Sinks []OutputSink

func (s Sinks) Render(ev game.Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Render(ev)
		}
	}
}
