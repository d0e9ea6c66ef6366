package experiments

import (
	"time"

	"prison/experiments/metrics"
	"prison/game"
	"prison/player"
	"prison/searcher"

	"github.com/rs/zerolog/log"
)

type Throughput struct {
	Depth    int
	Nodes    int
	Duration time.Duration
}

func (t Throughput) NodesPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Nodes) / t.Duration.Seconds()
}

// RunThroughputExperiment measures search speed per depth on positions sampled from
// a random playout. The same positions are searched at every depth.
func RunThroughputExperiment(s Settings, maxDepth, positions int) ([]Throughput, error) {
	states, err := samplePositions(s.Seed, positions)
	if err != nil {
		return nil, err
	}

	configs := []metrics.AgentConfig{}
	moveRecords := []metrics.MoveRecord{}
	results := []Throughput{}

	log.Info().Int("positions", len(states)).Int("max_depth", maxDepth).Msg("starting throughput experiment")

	for depth := 1; depth <= maxDepth; depth++ {
		config := metrics.AgentConfig{ID: depth, Type: TypeMinimax, Depth: depth}
		configs = append(configs, config)
		m := searcher.NewMinimax(searcher.WithDepth(depth), searcher.WithMetrics())

		result := Throughput{Depth: depth}
		for i, gs := range states {
			action, metric := m.FindMove(gs)
			result.Nodes += metric.Nodes
			result.Duration += metric.Duration
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game: depth,
				MoveMetric: metrics.MoveMetric{
					Step:         i + 1,
					Player:       gs.Current,
					Action:       game.Describe(action),
					Score:        action.Head().Score,
					SearchMetric: metric,
				},
			})
		}
		results = append(results, result)
		log.Info().
			Int("depth", depth).
			Int("nodes", result.Nodes).
			Float64("nodes_per_second", result.NodesPerSecond()).
			Msg("completed depth")
	}

	writer, err := metrics.NewWriter(s.OutputDir, "throughput")
	if err != nil {
		return results, err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return results, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return results, err
	}
	return results, nil
}

// samplePositions plays random moves and keeps a copy of every position seen, up to n.
func samplePositions(seed uint64, n int) ([]*game.GameState, error) {
	gs, err := game.NewGameState([]*game.Player{
		game.NewPlayer("a", game.Random),
		game.NewPlayer("b", game.Random),
		game.NewPlayer("c", game.Random),
	}, seed)
	if err != nil {
		return nil, err
	}
	r := player.NewRandom(seed)
	states := []*game.GameState{}
	for len(states) < n && !gs.IsOver() {
		states = append(states, gs.Clone())
		action, _ := r.FindMove(gs)
		if err := game.Commit(gs, action); err != nil {
			return states, err
		}
	}
	return states, nil
}
