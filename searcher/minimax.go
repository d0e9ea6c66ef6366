package searcher

import (
	"context"
	"math"

	"prison/experiments/metrics"
	"prison/game"

	"github.com/rs/zerolog/log"
)

const (
	DefaultDepth = 3
	MaxDepth     = 10

	// Sentinel scores for categories with no legal instance
	PosInf = math.MaxInt
	NegInf = math.MinInt
)

type Option func(m *Minimax)

// Minimax searches one locally best candidate per action category, so every node has
// exactly seven children. It mutates the state in place and reverts every
// simulation, so it is not safe for concurrent use.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
	metrics  metrics.Collector
	player   int // perspective of the search in progress
}

// WithDepth sets the search depth. Non-positive depths are ignored and depths past
// MaxDepth are capped.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = min(depth, MaxDepth)
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:    DefaultDepth,
		evaluate: game.EvaluatePosition,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Search returns the best action for the current player without applying it. At
// depth 0, or once the game is over, it returns a leaf carrying the evaluation of
// the current player's position. Leaves deeper in the tree are scored for the player
// who was current when the search started.
func (m *Minimax) Search(gs *game.GameState, depth int, maximizing bool) game.Action {
	m.player = gs.Current
	best, _ := m.search(context.Background(), gs, depth, maximizing)
	return best
}

// FindMove searches at the configured depth.
func (m *Minimax) FindMove(gs *game.GameState) (game.Action, metrics.SearchMetric) {
	m.metrics.Start(m.depth)
	best := m.Search(gs, m.depth, true)
	m.metrics.CompleteDepth(m.depth)
	return best, m.metrics.Complete()
}

// SearchWithin deepens iteratively until maxDepth or until ctx is done, and returns
// the result of the deepest completed iteration. Depth 1 always completes.
func (m *Minimax) SearchWithin(ctx context.Context, gs *game.GameState, maxDepth int) (game.Action, metrics.SearchMetric) {
	m.metrics.Start(maxDepth)
	if maxDepth <= 0 {
		return m.Search(gs, 0, true), m.metrics.Complete()
	}

	m.player = gs.Current
	best, _ := m.search(context.Background(), gs, 1, true)
	m.metrics.CompleteDepth(1)
	for depth := 2; depth <= maxDepth; depth++ {
		result, complete := m.search(ctx, gs, depth, true)
		if !complete {
			log.Debug().Int("depth", depth).Msg("search deadline reached")
			break
		}
		best = result
		m.metrics.CompleteDepth(depth)
	}
	return best, m.metrics.Complete()
}

// search reports false when ctx ended before the node was fully explored. The state
// is always restored before returning.
func (m *Minimax) search(ctx context.Context, gs *game.GameState, depth int, maximizing bool) (game.Action, bool) {
	m.metrics.AddNode()
	if depth <= 0 || gs.IsOver() {
		m.metrics.AddLeaf()
		return game.Leaf{Header: game.Header{Actor: gs.Current, Score: m.evaluate(gs, m.player)}}, true
	}

	sentinel := NegInf
	if !maximizing {
		sentinel = PosInf
	}

	actor := gs.Current
	var best game.Action
	for _, kind := range game.Kinds {
		if ctx.Err() != nil {
			return nil, false
		}

		var scored game.Action
		candidate, ok := m.candidate(gs, kind)
		if !ok {
			scored = game.Placeholder(kind, actor, sentinel)
		} else {
			u := game.Apply(gs, candidate)
			child, complete := m.search(ctx, gs, depth-1, !maximizing)
			game.Revert(gs, u)
			if !complete {
				return nil, false
			}
			scored = candidate.WithScore(child.Head().Score)
		}

		if best == nil || prefer(scored, best, maximizing) {
			best = scored
		}
	}
	return best, true
}

// prefer reports whether candidate should replace best. Legal actions always beat
// sentinels; otherwise only a strictly better score wins, so ties keep the earlier
// category.
func prefer(candidate, best game.Action, maximizing bool) bool {
	c, b := candidate.Head(), best.Head()
	if c.Valid != b.Valid {
		return c.Valid
	}
	if maximizing {
		return c.Score > b.Score
	}
	return c.Score < b.Score
}

// NoLegalMove reports whether a top-level result is a sentinel rather than a move.
func NoLegalMove(a game.Action) bool {
	return a == nil || !a.Head().Valid
}
