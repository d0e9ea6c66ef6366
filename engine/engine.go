package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"prison/experiments/metrics"
	"prison/game"
	"prison/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const MaxMoves = 10000

var (
	ErrNoActiveGame   = errors.New("no active game")
	ErrNotAdversarial = errors.New("player is not a minimax player")
	ErrNotPlayersTurn = errors.New("not the player's turn")
	ErrNoLegalMove    = errors.New("no legal move")
)

// CommitHook applies an action to the authoritative state and notifies observers.
type CommitHook interface {
	Commit(gs *game.GameState, a game.Action) error
}

type CommitFunc func(gs *game.GameState, a game.Action) error

func (f CommitFunc) Commit(gs *game.GameState, a game.Action) error {
	return f(gs, a)
}

type Config struct {
	Depth    int
	Deadline time.Duration // when set, search deepens iteratively up to Depth within it
	Metrics  bool
}

// Engine owns the game state. A single mutex serialises computer turns and commits
// coming from humans or the network, so no action lands while a search is running.
type Engine struct {
	mu         sync.Mutex
	config     Config
	state      *game.GameState
	hook       CommitHook
	searchers  map[uuid.UUID]*searcher.Minimax
	lastMetric metrics.SearchMetric
}

func New(config Config, hook CommitHook) *Engine {
	if config.Depth <= 0 {
		config.Depth = searcher.DefaultDepth
	}
	if config.Depth > searcher.MaxDepth {
		log.Warn().Int("depth", config.Depth).Int("max", searcher.MaxDepth).Msg("search depth capped")
		config.Depth = searcher.MaxDepth
	}
	if hook == nil {
		hook = CommitFunc(game.Commit)
	}
	return &Engine{
		config:    config,
		hook:      hook,
		searchers: make(map[uuid.UUID]*searcher.Minimax),
	}
}

func (e *Engine) Start(gs *game.GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = gs
	log.Info().Int("players", len(gs.Players)).Str("starting", gs.CurrentPlayer().Name).Msg("game started")
}

// Restore swaps in a state, for example a snapshot from the game history.
func (e *Engine) Restore(gs *game.GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = gs
}

func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = nil
}

// View runs fn with exclusive access to the live state.
func (e *Engine) View(fn func(gs *game.GameState)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return ErrNoActiveGame
	}
	fn(e.state)
	return nil
}

func (e *Engine) LastMetric() metrics.SearchMetric {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastMetric
}

// MakeTurn searches and commits a move for a computer player. Precondition failures
// return at once, before anything is mutated. Once a search has run the call never
// returns before delay has passed, whether or not a move was committed.
func (e *Engine) MakeTurn(player *game.Player, delay time.Duration) (game.Action, error) {
	start := time.Now()
	action, err := e.makeTurn(player)
	if isPrecondition(err) {
		return nil, err
	}
	if rest := delay - time.Since(start); rest > 0 {
		time.Sleep(rest)
	}
	if err != nil {
		return nil, err
	}
	return action, nil
}

func isPrecondition(err error) bool {
	return errors.Is(err, ErrNoActiveGame) || errors.Is(err, ErrNotAdversarial) || errors.Is(err, ErrNotPlayersTurn)
}

func (e *Engine) makeTurn(player *game.Player) (game.Action, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil || e.state.IsOver() {
		return nil, ErrNoActiveGame
	}
	if player == nil || player.Type != game.Minimax {
		return nil, ErrNotAdversarial
	}
	if e.state.CurrentPlayer().ID != player.ID {
		return nil, fmt.Errorf("%w: %s", ErrNotPlayersTurn, player.Name)
	}

	m := e.searcher(player.ID)
	var (
		action game.Action
		metric metrics.SearchMetric
	)
	if e.config.Deadline > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.config.Deadline)
		action, metric = m.SearchWithin(ctx, e.state, e.config.Depth)
		cancel()
	} else {
		action, metric = m.FindMove(e.state)
	}
	e.lastMetric = metric

	if searcher.NoLegalMove(action) {
		return nil, ErrNoLegalMove
	}
	if err := e.hook.Commit(e.state, action); err != nil {
		return nil, fmt.Errorf("failed to commit %s: %w", game.Describe(action), err)
	}

	log.Debug().
		Str("player", player.Name).
		Str("action", game.Describe(action)).
		Int("score", action.Head().Score).
		Int("nodes", metric.Nodes).
		Dur("took", metric.Duration).
		Msg("computer turn")
	return action, nil
}

// Play commits an action chosen outside the engine: a human, a random player or a
// remote peer.
func (e *Engine) Play(a game.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return ErrNoActiveGame
	}
	return e.hook.Commit(e.state, a)
}

// searcher returns the player's search engine, creating it on first use.
func (e *Engine) searcher(id uuid.UUID) *searcher.Minimax {
	if m, ok := e.searchers[id]; ok {
		return m
	}
	options := []searcher.Option{searcher.WithDepth(e.config.Depth)}
	if e.config.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	m := searcher.NewMinimax(options...)
	e.searchers[id] = m
	return m
}
