package experiments

import (
	"context"
	"fmt"
	"time"

	"prison/engine"
	"prison/experiments/metrics"
	"prison/game"
	"prison/player"
	"prison/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TypeMinimax = "minimax"
	TypeRandom  = "random"
	TimeBudget  = 50 * time.Millisecond
)

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Type: TypeMinimax, Depth: 1},
	{ID: 2, Type: TypeMinimax, Depth: 2},
	{ID: 3, Type: TypeMinimax, Depth: 3},
	{ID: 4, Type: TypeMinimax, Depth: searcher.MaxDepth, Deadline: TimeBudget},
}

// Settings shared by every experiment.
type Settings struct {
	Games     int // per matchup
	MaxMoves  int
	Seed      uint64
	OutputDir string
}

type Summary struct {
	Games int
	Wins  map[int]int // agent config ID to games won
	Dir   string
}

// RunDepthExperiment pairs each search configuration against the random baseline.
func RunDepthExperiment(s Settings) (Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Type: TypeRandom}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment("depth", s, append(depthConfigs, baseline), matchUps)
}

// RunLookaheadExperiment pairs consecutive search depths to see whether looking one
// ply further pays off.
func RunLookaheadExperiment(s Settings) (Summary, error) {
	configs := depthConfigs[:3]
	matchUps := [][2]metrics.AgentConfig{}
	for i := 1; i < len(configs); i++ {
		matchUps = append(matchUps, [2]metrics.AgentConfig{configs[i-1], configs[i]})
	}
	return runExperiment("lookahead", s, configs, matchUps)
}

func runExperiment(name string, s Settings, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) (Summary, error) {
	summary := Summary{Wins: make(map[int]int)}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Str("experiment", name).Int("matchups", len(matchUps)).Msg("starting experiment")

	for mi, matchup := range matchUps {
		for i := 0; i < s.Games; i++ {
			// Alternate who sits first.
			seats := matchup
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			seed := s.Seed + uint64(summary.Games)
			result, err := runGame(seats, seed, s.MaxMoves)
			if err != nil {
				return summary, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			summary.Games++
			winner := -1
			for _, config := range seats {
				if result.Winner == seatName(config) {
					winner = config.ID
					summary.Wins[config.ID]++
				}
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         summary.Games,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: summary.Games, MoveMetric: mm})
			}
			log.Info().
				Int("matchup", mi+1).
				Int("game", i+1).
				Int("winner", winner).
				Int("moves", result.Game.TotalMoves).
				Msg("game finished")
		}
	}

	writer, err := metrics.NewWriter(s.OutputDir, name)
	if err != nil {
		return summary, err
	}
	summary.Dir = writer.Dir()
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return summary, err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, err
	}
	log.Info().Str("experiment", name).Str("dir", summary.Dir).Msg("stored results")
	return summary, nil
}

func seatName(config metrics.AgentConfig) string {
	return fmt.Sprintf("agent-%d", config.ID)
}

// runGame plays one game between two configured agents. Both seats get explicit
// agents so differently configured searchers can meet.
func runGame(seats [2]metrics.AgentConfig, seed uint64, maxMoves int) (engine.Result, error) {
	players := make([]*game.Player, len(seats))
	agents := make(map[uuid.UUID]engine.Agent, len(seats))
	for i, config := range seats {
		agent, typ, err := createAgent(config, seed+uint64(i))
		if err != nil {
			return engine.Result{}, err
		}
		players[i] = game.NewPlayer(seatName(config), typ)
		agents[players[i].ID] = agent
	}
	gs, err := game.NewGameState(players, seed)
	if err != nil {
		return engine.Result{}, err
	}

	e := engine.New(engine.Config{}, nil)
	e.Start(gs)
	defer e.Stop()
	return e.Run(agents, 0, maxMoves)
}

func createAgent(config metrics.AgentConfig, seed uint64) (engine.Agent, game.PlayerType, error) {
	switch config.Type {
	case TypeRandom:
		return player.NewRandom(seed), game.Random, nil
	case TypeMinimax:
		m := searcher.NewMinimax(searcher.WithDepth(config.Depth), searcher.WithMetrics())
		if config.Deadline > 0 {
			return &deadlineAgent{m: m, deadline: config.Deadline}, game.Minimax, nil
		}
		return m, game.Minimax, nil
	}
	return nil, 0, fmt.Errorf("unknown agent type %q", config.Type)
}

// deadlineAgent deepens iteratively until its time runs out.
type deadlineAgent struct {
	m        *searcher.Minimax
	deadline time.Duration
}

func (a *deadlineAgent) FindMove(gs *game.GameState) (game.Action, metrics.SearchMetric) {
	ctx, cancel := context.WithTimeout(context.Background(), a.deadline)
	defer cancel()
	return a.m.SearchWithin(ctx, gs, a.m.Depth())
}
