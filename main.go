package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arcade/communication"
	"arcade/communication/client"
	"arcade/communication/server"
	"arcade/config"
	"arcade/engine"
	"arcade/experiments"
	"arcade/game"
	"arcade/player"
	"arcade/render"
	"arcade/searcher"
	"arcade/stats"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type flags struct {
	game       string
	seed       uint64
	statsDir   string
	serve      bool
	addr       string
	timeout    time.Duration
	connect    string
	words      string
	auto       bool
	vsComputer bool
	attempts   int
	maxMoves   int
	rounds     int
	search     int
	goroutines int
	experiment bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	f := flags{}
	flag.StringVar(&f.game, "game", "rps", fmt.Sprintf("Game to play %v", game.Names()))
	flag.Uint64Var(&f.seed, "seed", cfg.Seed, "Random seed, 0 seeds from the clock")
	flag.StringVar(&f.statsDir, "stats", cfg.StatsDir, "Directory for session statistics, empty to disable")
	flag.BoolVar(&f.serve, "serve", false, "Serve games over HTTP instead of playing in the terminal")
	flag.StringVar(&f.addr, "addr", cfg.Addr, "Listen address for -serve")
	flag.DurationVar(&f.timeout, "timeout", cfg.Timeout, "Per request timeout for -serve")
	flag.StringVar(&f.connect, "connect", "", "Play against the server at this URL")
	flag.StringVar(&f.words, "words", cfg.WordsFile, "Word list file for the word guessing game")
	flag.BoolVar(&f.auto, "auto", false, "Let the computer play random moves for you")
	flag.BoolVar(&f.vsComputer, "vs-computer", false, "Play tic-tac-toe against the computer")
	flag.IntVar(&f.attempts, "attempts", 0, "Attempt budget for words and bomb, 0 keeps the default")
	flag.IntVar(&f.maxMoves, "max-moves", 0, "Abort a session after this many move requests")
	flag.IntVar(&f.rounds, "rounds", 0, "Stop a match after this many sessions, 0 for no limit")
	flag.IntVar(&f.search, "search", 0, "Tree search episodes per computer tic-tac-toe move, 0 plays at random")
	flag.IntVar(&f.goroutines, "goroutines", 2, "Goroutines sharing the search tree")
	flag.BoolVar(&f.experiment, "experiment", false, "Run the tic-tac-toe parallel search experiment")
	flag.Parse()

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		log.Error().Err(err).Msg("arcade stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	if f.experiment {
		return runExperiment(ctx, f)
	}

	opts, err := gameOptions(f)
	if err != nil {
		return err
	}

	var collector stats.Collector = stats.NewDummyCollector()
	if f.statsDir != "" {
		collector = stats.NewCollector()
		defer writeStats(f.statsDir, collector)
	}

	if f.serve {
		srv := server.New(server.NewMemoryStore(),
			server.WithSink(collector),
			server.WithGameOptions(opts...),
			server.WithTimeout(f.timeout),
		)
		return srv.Start(ctx, f.addr)
	}

	input := provider(f)
	output := engine.Sinks{render.NewConsole(os.Stdout), collector}

	if f.connect != "" {
		req := communication.NewSessionRequest{Game: f.game, Seed: f.seed, Attempts: f.attempts, VsComputer: f.vsComputer}
		_, err := engine.NewRemote(client.New(f.connect, nil), req, input, output, f.maxMoves).Run(ctx)
		return err
	}

	def, err := game.Lookup(f.game, opts...)
	if err != nil {
		return err
	}
	if f.attempts > 0 && !def.Bounded() {
		log.Warn().Str("game", def.Name).Msg("game has no attempt budget, ignoring -attempts")
	}
	rounds := f.rounds
	if f.auto && rounds == 0 && def.Replay != game.ReplayNever {
		rounds = 10
	}
	e := engine.New(def, input, output,
		engine.WithRandomSource(game.NewRandomSource(f.seed)),
		engine.WithMaxMoves(f.maxMoves),
		engine.WithMaxRounds(rounds),
	)
	outcomes, err := e.Match(ctx)
	t := engine.Summarize(outcomes)
	if len(outcomes) > 1 {
		fmt.Printf("Rounds: %d, won: %d, lost: %d, tied: %d\n", len(outcomes), t.Won, t.Lost, t.Tied)
	}
	return err
}

func runExperiment(ctx context.Context, f flags) error {
	episodes := f.search
	if episodes <= 0 {
		episodes = 500
	}
	dir := f.statsDir
	if dir == "" {
		dir = "experiments"
	}

	collector := stats.NewCollector()
	results, err := experiments.Run(ctx, experiments.Parallelization(episodes), experiments.NumGames, f.seed, collector)
	if err != nil {
		return err
	}
	_, err = experiments.Write(dir, results, collector)
	return err
}

func gameOptions(f flags) ([]game.Option, error) {
	opts := []game.Option{game.WithMaxAttempts(f.attempts)}
	if f.vsComputer {
		opts = append(opts, game.WithComputerOpponent())
		if f.search > 0 {
			opts = append(opts, game.WithStrategy(newMCTS(f, 0).Strategy()))
		}
	}
	if f.words != "" {
		file, err := os.Open(f.words)
		if err != nil {
			return nil, fmt.Errorf("failed to open word list: %w", err)
		}
		defer file.Close()
		words, err := game.LoadWords(file)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithWords(words))
	}
	return opts, nil
}

func provider(f flags) engine.InputProvider {
	if f.auto {
		// Offset so the player's draws differ from the computer's.
		seed := f.seed
		if seed != 0 {
			seed++
		}
		if f.search > 0 {
			return player.NewSearcher(newMCTS(f, 1), game.NewRandomSource(seed))
		}
		return player.NewRandom(game.NewRandomSource(seed))
	}
	return player.NewConsole(os.Stdin, os.Stdout)
}

// newMCTS gives each searcher its own block of rollout seeds.
func newMCTS(f flags, block uint64) *searcher.MCTS {
	seed := f.seed
	if seed != 0 {
		seed += 1 + block*uint64(f.goroutines)
	}
	return searcher.NewMCTS(
		searcher.WithEpisodes(f.search),
		searcher.WithGoroutines(f.goroutines),
		searcher.WithSeed(seed),
		searcher.WithMetrics(searcher.NewMetricsCollector()),
	)
}

func writeStats(root string, c stats.Collector) {
	w, err := stats.NewWriter(root)
	if err != nil {
		log.Error().Err(err).Msg("failed to create stats directory")
		return
	}
	if err := w.WriteSessionRecords(c.Sessions()); err != nil {
		log.Error().Err(err).Msg("failed to write session records")
	}
	if err := w.WriteMoveRecords(c.Moves()); err != nil {
		log.Error().Err(err).Msg("failed to write move records")
	}
	log.Info().Msgf("Stats written to %s", w.Dir())
}
