// Package experiments pits tic-tac-toe players with different search budgets
// against each other and records the results.
package experiments

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"arcade/engine"
	"arcade/game"
	"arcade/player"
	"arcade/searcher"
	"arcade/stats"

	"github.com/rs/zerolog/log"
)

const NumGames = 20 // Per match up

// AgentConfig describes one side. Without episodes or a duration the side
// plays at random.
type AgentConfig struct {
	ID         int
	Goroutines int
	Episodes   int
	Duration   time.Duration
}

func (c AgentConfig) searches() bool {
	return c.Episodes > 0 || c.Duration > 0
}

// MatchUp has X played through the engine and O as the computer opponent.
type MatchUp struct {
	X AgentConfig
	O AgentConfig
}

type Result struct {
	MatchUp
	Tally    engine.Tally
	Searches []SearchRecord
}

// SearchRecord is the search behind one computed move.
type SearchRecord struct {
	Game  int // within the match up, from 1
	Agent int // AgentConfig.ID
	Move  int // searches by this agent in the game, from 1
	searcher.MoveMetrics
}

// recorder keeps every completed search of one agent.
type recorder struct {
	searcher.MetricsCollector
	mu      sync.Mutex
	game    int
	agent   int
	records []SearchRecord
}

func newRecorder(n, agent int) *recorder {
	return &recorder{MetricsCollector: searcher.NewMetricsCollector(), game: n, agent: agent}
}

func (r *recorder) Complete() searcher.MoveMetrics {
	metric := r.MetricsCollector.Complete()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, SearchRecord{Game: r.game, Agent: r.agent, Move: len(r.records) + 1, MoveMetrics: metric})
	return metric
}

func (r *recorder) Records() []SearchRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SearchRecord{}, r.records...)
}

// Parallelization pairs agents with growing goroutine counts against a
// sequential baseline with the same episode budget.
func Parallelization(episodes int) []MatchUp {
	baseline := AgentConfig{ID: 0, Goroutines: 1, Episodes: episodes}
	matchUps := []MatchUp{}
	for i, goroutines := range []int{1, 2, 4, 8} {
		matchUps = append(matchUps, MatchUp{
			X: AgentConfig{ID: i + 1, Goroutines: goroutines, Episodes: episodes},
			O: baseline,
		})
	}
	return matchUps
}

// Run plays games sessions per match up. Every event also goes to sink.
// A non-zero seed makes the whole run reproducible.
func Run(ctx context.Context, matchUps []MatchUp, games int, seed uint64, sink engine.OutputSink) ([]Result, error) {
	results := make([]Result, 0, len(matchUps))
	count := 0
	for mi, m := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between X=%+v and O=%+v...", mi+1, len(matchUps), m.X, m.O)

		outcomes := make([]game.Outcome, 0, games)
		searches := []SearchRecord{}
		for i := 0; i < games; i++ {
			var gameSeed uint64
			if seed != 0 {
				gameSeed = seed + uint64(count)*1000
			}
			count++

			out, records, err := playGame(ctx, m, i+1, gameSeed, sink)
			if err != nil {
				return results, fmt.Errorf("failed to play matchup %d game %d: %w", mi+1, i+1, err)
			}
			outcomes = append(outcomes, out)
			searches = append(searches, records...)
		}

		t := engine.Summarize(outcomes)
		log.Info().Msgf("completed matchup %d of %d: X won %d, lost %d, tied %d", mi+1, len(matchUps), t.Won, t.Lost, t.Tied)
		results = append(results, Result{MatchUp: m, Tally: t, Searches: searches})
	}
	return results, nil
}

func playGame(ctx context.Context, m MatchUp, n int, seed uint64, sink engine.OutputSink) (game.Outcome, []SearchRecord, error) {
	var xLog, oLog *recorder

	opts := []game.Option{game.WithComputerOpponent()}
	if m.O.searches() {
		oLog = newRecorder(n, m.O.ID)
		opts = append(opts, game.WithStrategy(createMCTS(m.O, offset(seed, 100), oLog).Strategy()))
	}

	var input engine.InputProvider = player.NewRandom(game.NewRandomSource(offset(seed, 1)))
	if m.X.searches() {
		xLog = newRecorder(n, m.X.ID)
		input = player.NewSearcher(createMCTS(m.X, offset(seed, 200), xLog), game.NewRandomSource(offset(seed, 1)))
	}

	e := engine.New(game.TicTacToe(opts...), input, sink, engine.WithRandomSource(game.NewRandomSource(seed)))
	out, err := e.Run(ctx)
	return out, append(xLog.Records(), oLog.Records()...), err
}

// offset keeps 0 meaning "seed from the clock".
func offset(seed, by uint64) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + by
}

func createMCTS(config AgentConfig, seed uint64, metrics searcher.MetricsCollector) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithSeed(seed),
		searcher.WithMetrics(metrics),
	}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	return searcher.NewMCTS(options...)
}

// Write stores the agent configs, the per match up results, every search and
// the collected session records under a timestamped folder in root.
func Write(root string, results []Result, c stats.Collector) (string, error) {
	writer, err := stats.NewWriter(root)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	seen := map[int]bool{}
	agents := [][]string{}
	rows := [][]string{}
	searches := [][]string{}
	for _, r := range results {
		for _, a := range []AgentConfig{r.X, r.O} {
			if !seen[a.ID] {
				seen[a.ID] = true
				agents = append(agents, []string{
					strconv.Itoa(a.ID),
					strconv.Itoa(a.Goroutines),
					strconv.Itoa(a.Episodes),
					a.Duration.String(),
				})
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(r.X.ID),
			strconv.Itoa(r.O.ID),
			strconv.Itoa(r.Tally.Won),
			strconv.Itoa(r.Tally.Lost),
			strconv.Itoa(r.Tally.Tied),
		})
		for _, sr := range r.Searches {
			searches = append(searches, []string{
				strconv.Itoa(r.X.ID),
				strconv.Itoa(r.O.ID),
				strconv.Itoa(sr.Game),
				strconv.Itoa(sr.Agent),
				strconv.Itoa(sr.Move),
				strconv.Itoa(sr.Goroutines),
				strconv.FormatInt(sr.Episodes, 10),
				strconv.FormatInt(sr.FullPlayouts, 10),
				strconv.FormatInt(sr.TreeSize, 10),
				strconv.FormatInt(sr.Duration.Microseconds(), 10),
			})
		}
	}

	if err := writer.WriteTable("agents.csv", []string{"id", "goroutines", "episodes", "duration"}, agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteTable("results.csv", []string{"x", "o", "x_won", "x_lost", "tied"}, rows); err != nil {
		return "", fmt.Errorf("failed to store results: %w", err)
	}
	if err := writer.WriteTable("search.csv", []string{"x", "o", "game", "agent", "move", "goroutines", "episodes", "full_playouts", "tree_size", "duration_us"}, searches); err != nil {
		return "", fmt.Errorf("failed to store search metrics: %w", err)
	}
	if err := writer.WriteSessionRecords(c.Sessions()); err != nil {
		return "", fmt.Errorf("failed to write session records: %w", err)
	}
	log.Info().Msgf("stored experiment records in %s", writer.Dir())
	return writer.Dir(), nil
}
