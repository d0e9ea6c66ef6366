package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"prison/game"
	"prison/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, SEARCH_DEPTH, cfg.SearchDepth)
	require.Equal(t, []game.PlayerType{game.Human, game.Minimax}, cfg.PlayerTypes())
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "prison.yaml", `
search_depth: 5
turn_delay: 250ms
players: [minimax, random, random]
seed: 42
log_level: debug
`)
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Run("yaml file", func(t *testing.T) {
		cfg, err := Load(path, missing)
		require.NoError(t, err)
		require.Equal(t, 5, cfg.SearchDepth)
		require.Equal(t, 250*time.Millisecond, cfg.TurnDelay)
		require.Equal(t, []game.PlayerType{game.Minimax, game.Random, game.Random}, cfg.PlayerTypes())
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, zerolog.DebugLevel, cfg.Level())
		require.Equal(t, MAX_TURNS, cfg.MaxTurns, "unset keys keep their default")
	})

	t.Run("environment wins over yaml", func(t *testing.T) {
		t.Setenv("PRISON_SEARCH_DEPTH", "2")
		t.Setenv("PRISON_PLAYERS", "random, minimax")
		t.Setenv("PRISON_TURN_DELAY", "1s")
		cfg, err := Load(path, missing)
		require.NoError(t, err)
		require.Equal(t, 2, cfg.SearchDepth)
		require.Equal(t, time.Second, cfg.TurnDelay)
		require.Equal(t, []string{"random", "minimax"}, cfg.Players)
	})

	t.Run("env file", func(t *testing.T) {
		env := writeFile(t, "test.env", "PRISON_MAX_TURNS=77\n")
		t.Cleanup(func() { os.Unsetenv("PRISON_MAX_TURNS") })
		cfg, err := Load("", env)
		require.NoError(t, err)
		require.Equal(t, 77, cfg.MaxTurns)
	})

	t.Run("bad values", func(t *testing.T) {
		t.Setenv("PRISON_SEED", "many")
		_, err := Load("", missing)
		require.ErrorContains(t, err, "PRISON_SEED")
	})

	t.Run("unknown player type", func(t *testing.T) {
		bad := writeFile(t, "bad.yaml", "players: [alien, minimax]\n")
		_, err := Load(bad, missing)
		require.ErrorContains(t, err, "alien")
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.SearchDepth = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.SearchDepth = searcher.MaxDepth + 1
	require.ErrorContains(t, cfg.Validate(), "at most")
	cfg.SearchDepth = searcher.MaxDepth
	require.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Players = []string{"minimax"}
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
}
