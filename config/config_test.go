package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables and restores them after the test. godotenv
// never overrides a variable that is set, even to the empty string.
func clearEnv(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "ARCADE_SEED", "ARCADE_STATS_DIR", "ARCADE_ADDR", "ARCADE_WORDS", "ARCADE_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := FromEnv()

		require.NoError(t, err)
		require.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
		require.Equal(t, uint64(0), cfg.Seed)
		require.Equal(t, ":8080", cfg.Addr)
		require.Empty(t, cfg.StatsDir)
		require.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("ARCADE_SEED", "42")
		t.Setenv("ARCADE_STATS_DIR", "out")
		t.Setenv("ARCADE_ADDR", ":9000")
		t.Setenv("ARCADE_WORDS", "words.txt")

		cfg, err := FromEnv()

		require.NoError(t, err)
		require.Equal(t, Config{
			LogLevel:  zerolog.DebugLevel,
			Seed:      42,
			StatsDir:  "out",
			Addr:      ":9000",
			WordsFile: "words.txt",
		}, cfg)
	})

	t.Run("bad seed", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ARCADE_SEED", "-1")

		_, err := FromEnv()

		require.ErrorContains(t, err, "ARCADE_SEED")
	})

	t.Run("bad timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ARCADE_TIMEOUT", "soon")

		_, err := FromEnv()

		require.ErrorContains(t, err, "ARCADE_TIMEOUT")
	})

	t.Run("bad level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "loud")

		_, err := FromEnv()

		require.ErrorContains(t, err, "LOG_LEVEL")
	})
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ARCADE_SEED=7\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, uint64(7), cfg.Seed)
}

func TestLoadKeepsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARCADE_SEED", "3")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ARCADE_SEED=7\nARCADE_ADDR=:9090\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, uint64(3), cfg.Seed, "Environment should win over the .env file")
	require.Equal(t, ":9090", cfg.Addr)
}
