package searcher

import (
	"sync"
	"time"

	"arcade/game"
	"arcade/meta"

	"github.com/rs/zerolog/log"
)

type Option func(m *MCTS)

// WithGoroutines sets how many goroutines share the tree.
func WithGoroutines(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.goroutines = n
		}
	}
}

// WithEpisodes runs a fixed number of simulations per move.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
			m.duration = 0
		}
	}
}

// WithDuration simulates until the duration elapses instead.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
			m.episodes = 0
		}
	}
}

// WithSeed seeds the rollout sources; goroutine i uses seed+i. 0 seeds
// from the clock.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics(c MetricsCollector) Option {
	return func(m *MCTS) {
		if c != nil {
			m.metrics = c
		}
	}
}

type MCTS struct {
	goroutines int
	episodes   int
	duration   time.Duration
	seed       uint64
	metrics    MetricsCollector
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: 1,
		episodes:   meta.SearchEpisodes,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Simulate grows a fresh tree from state and returns each explored move's
// share of the visits.
func (m *MCTS) Simulate(state State) (map[game.Move]float64, MoveMetrics) {
	root := m.search(state)
	return root.policy(), m.metrics.Complete()
}

// FindNextMove returns the most visited move, or Quit when state is over.
func (m *MCTS) FindNextMove(state State) game.Move {
	root := m.search(state)
	metric := m.metrics.Complete()
	move, ok := root.bestMove()
	if !ok {
		return game.Quit()
	}
	log.Debug().
		Stringer("move", move).
		Int64("episodes", metric.Episodes).
		Dur("duration", metric.Duration).
		Msg("search finished")
	return move
}

func (m *MCTS) search(state State) *decision {
	root := newDecision(nil, "", state)
	m.metrics.Start(m.goroutines)
	if m.episodes > 0 {
		m.iterate(root, state)
	} else {
		m.countdown(root, state)
	}
	return root
}

func (m *MCTS) iterate(root *decision, state State) {
	task := make(chan struct{}, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng game.RandomSource) {
			defer wg.Done()

			for range task {
				m.simulate(root, state, rng)
			}
		}(m.source(i))
	}
	wg.Wait()
}

func (m *MCTS) countdown(root *decision, state State) {
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng game.RandomSource) {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, state, rng)
				}
			}
		}(m.source(i))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) source(i int) game.RandomSource {
	if m.seed == 0 {
		return game.NewRandomSource(0)
	}
	return game.NewRandomSource(m.seed + uint64(i))
}

func (m *MCTS) simulate(root *decision, state State, rng game.RandomSource) {
	node, state := m.selectThenExpand(root, state)
	winner := m.rollout(state, rng)
	backup(node, rewarder(winner))
	m.metrics.AddEpisode()
}

func (m *MCTS) selectThenExpand(root *decision, state State) (*decision, State) {
	node := root
	for {
		child, next, expanded := node.selectOrExpand(state)
		state = next
		if expanded {
			m.metrics.AddNode()
			return child, state
		}
		if child == node { // Terminal
			return child, state
		}
		node = child
	}
}

// rollout plays uniformly random moves until the game is over.
func (m *MCTS) rollout(state State, rng game.RandomSource) string {
	moves := state.LegalMoves()
	for len(moves) > 0 {
		state = state.Play(moves[rng.Intn(len(moves))])
		moves = state.LegalMoves()
	}
	m.metrics.AddFullPlayout()
	return state.Winner()
}

func backup(node *decision, reward func(string) float64) {
	for node != nil {
		node = node.backup(reward)
	}
}
