// meta/meta.go
package meta

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"prison/game"
	"prison/searcher"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SEARCH_DEPTH is the default number of plies the computer looks ahead.
const SEARCH_DEPTH = 3

// TURN_DELAY is the minimum time a computer turn takes, so humans can follow.
const TURN_DELAY = 500 * time.Millisecond

// MAX_TURNS caps a single game.
const MAX_TURNS = 10000

// GAMES is the number of games per experiment matchup.
const GAMES = 10

// Config holds the runtime settings. Later sources override earlier ones: defaults,
// then the YAML file, then environment variables (optionally from .env files).
type Config struct {
	SearchDepth int           `yaml:"search_depth"`
	TurnDelay   time.Duration `yaml:"turn_delay"`
	Deadline    time.Duration `yaml:"deadline"`
	Players     []string      `yaml:"players"`
	Seed        uint64        `yaml:"seed"`
	MaxTurns    int           `yaml:"max_turns"`
	LogLevel    string        `yaml:"log_level"`
	Games       int           `yaml:"games"`
	OutputDir   string        `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		SearchDepth: SEARCH_DEPTH,
		TurnDelay:   TURN_DELAY,
		Players:     []string{game.Human.String(), game.Minimax.String()},
		Seed:        uint64(time.Now().UnixNano()),
		MaxTurns:    MAX_TURNS,
		LogLevel:    zerolog.InfoLevel.String(),
		Games:       GAMES,
		OutputDir:   "results",
	}
}

// Load builds a Config from an optional YAML file and the environment. Missing .env
// files are skipped; variables already set in the environment win over them.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load env file: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("PRISON_SEARCH_DEPTH"); ok {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PRISON_SEARCH_DEPTH: %w", err)
		}
		c.SearchDepth = depth
	}
	if v, ok := os.LookupEnv("PRISON_TURN_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PRISON_TURN_DELAY: %w", err)
		}
		c.TurnDelay = d
	}
	if v, ok := os.LookupEnv("PRISON_PLAYERS"); ok {
		c.Players = strings.Split(v, ",")
		for i := range c.Players {
			c.Players[i] = strings.TrimSpace(c.Players[i])
		}
	}
	if v, ok := os.LookupEnv("PRISON_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PRISON_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv("PRISON_MAX_TURNS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PRISON_MAX_TURNS: %w", err)
		}
		c.MaxTurns = n
	}
	if v, ok := os.LookupEnv("PRISON_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.SearchDepth < 1 {
		return fmt.Errorf("search depth must be positive, got %d", c.SearchDepth)
	}
	if c.SearchDepth > searcher.MaxDepth {
		return fmt.Errorf("search depth must be at most %d, got %d", searcher.MaxDepth, c.SearchDepth)
	}
	if c.TurnDelay < 0 || c.Deadline < 0 {
		return errors.New("durations must not be negative")
	}
	if len(c.Players) < game.MinPlayers || len(c.Players) > game.MaxPlayers {
		return fmt.Errorf("need %d to %d players, got %d", game.MinPlayers, game.MaxPlayers, len(c.Players))
	}
	for _, p := range c.Players {
		if _, err := game.ParsePlayerType(p); err != nil {
			return err
		}
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max turns must be positive, got %d", c.MaxTurns)
	}
	return nil
}

// PlayerTypes converts the configured seat names. Call Validate first.
func (c Config) PlayerTypes() []game.PlayerType {
	types := make([]game.PlayerType, 0, len(c.Players))
	for _, p := range c.Players {
		t, _ := game.ParsePlayerType(p)
		types = append(types, t)
	}
	return types
}

// Level is the configured log level, info when it cannot be parsed.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}
