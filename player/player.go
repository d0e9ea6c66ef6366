package player

import (
	"time"

	"prison/experiments/metrics"
	"prison/game"

	"golang.org/x/exp/rand"
)

// Random is the non-adversarial computer player: it samples uniformly among all
// legal actions instead of searching.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// FindMove returns a uniformly chosen legal action, or a leaf when there is none.
func (r *Random) FindMove(gs *game.GameState) (game.Action, metrics.SearchMetric) {
	start := time.Now()
	actions := game.LegalActions(gs)
	metric := metrics.SearchMetric{Nodes: len(actions)}
	if len(actions) == 0 {
		metric.Duration = time.Since(start)
		return game.Leaf{Header: game.Header{Actor: gs.Current}}, metric
	}
	action := actions[r.rng.Intn(len(actions))]
	metric.Duration = time.Since(start)
	return action, metric
}
