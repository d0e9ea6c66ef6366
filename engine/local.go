package engine

import (
	"errors"
	"fmt"
	"time"

	"prison/experiments/metrics"
	"prison/game"
	"prison/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Agent chooses moves for seats the engine does not search for itself.
type Agent interface {
	FindMove(gs *game.GameState) (game.Action, metrics.SearchMetric)
}

type Result struct {
	Winner string // "" when the game was cut off
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

// Run executes the game loop until the game ends or maxMoves actions were committed.
// Seats with an agent play through it. Other Minimax seats play through MakeTurn and
// any remaining seat is an error.
func (e *Engine) Run(agents map[uuid.UUID]Agent, delay time.Duration, maxMoves int) (Result, error) {
	result := Result{Game: metrics.GameMetric{StartTime: time.Now()}}
	if err := e.View(func(gs *game.GameState) { result.Game.StartingPlayer = gs.Current }); err != nil {
		return result, err
	}
	log.Info().Int("seat", result.Game.StartingPlayer).Msg("player is starting")

	for step := 1; step <= maxMoves; step++ {
		var (
			player *game.Player
			seat   int
			over   bool
		)
		if err := e.View(func(gs *game.GameState) {
			over, seat, player = gs.IsOver(), gs.Current, gs.CurrentPlayer()
		}); err != nil {
			return result, err
		}
		if over {
			break
		}

		var (
			action game.Action
			metric metrics.SearchMetric
			err    error
		)
		if agent, ok := agents[player.ID]; ok {
			action, metric, err = e.agentTurn(agent)
		} else if player.Type == game.Minimax {
			action, err = e.MakeTurn(player, delay)
			metric = e.LastMetric()
		} else {
			return result, fmt.Errorf("no agent for %s", player)
		}
		if errors.Is(err, ErrNoLegalMove) {
			log.Warn().Str("player", player.Name).Msg("no legal move, stopping")
			break
		}
		if err != nil {
			return result, err
		}

		result.Moves = append(result.Moves, metrics.MoveMetric{
			Step:         step,
			Player:       seat,
			Action:       game.Describe(action),
			Score:        action.Head().Score,
			SearchMetric: metric,
		})
	}

	result.Game.EndTime = time.Now()
	result.Game.Duration = result.Game.EndTime.Sub(result.Game.StartTime)
	result.Game.TotalMoves = len(result.Moves)
	err := e.View(func(gs *game.GameState) {
		result.Game.Rounds = gs.Round + 1
		if w := gs.Winner(); w >= 0 {
			result.Winner = gs.Players[w].Name
		}
	})
	if result.Winner != "" {
		log.Info().Str("winner", result.Winner).Int("moves", result.Game.TotalMoves).Msg("game over")
	} else {
		log.Info().Int("moves", result.Game.TotalMoves).Msg("stopped without a winner")
	}
	result.Game.Winner = result.Winner
	return result, err
}

func (e *Engine) agentTurn(agent Agent) (game.Action, metrics.SearchMetric, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil, metrics.SearchMetric{}, ErrNoActiveGame
	}
	action, metric := agent.FindMove(e.state)
	if searcher.NoLegalMove(action) {
		return nil, metric, ErrNoLegalMove
	}
	if err := e.hook.Commit(e.state, action); err != nil {
		return nil, metric, fmt.Errorf("failed to commit %s: %w", game.Describe(action), err)
	}
	return action, metric, nil
}
