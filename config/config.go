// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel  zerolog.Level
	Seed      uint64 // 0 seeds from the clock
	StatsDir  string // empty disables stats export
	Addr      string
	WordsFile string
	Timeout   time.Duration // per HTTP request
}

// Load reads .env files (missing ones are fine) and then the environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		StatsDir:  os.Getenv("ARCADE_STATS_DIR"),
		Addr:      getEnv("ARCADE_ADDR", ":8080"),
		WordsFile: os.Getenv("ARCADE_WORDS"),
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = lvl

	timeout, err := time.ParseDuration(getEnv("ARCADE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ARCADE_TIMEOUT: %w", err)
	}
	cfg.Timeout = timeout

	if v := os.Getenv("ARCADE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ARCADE_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
