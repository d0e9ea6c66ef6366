package gamemaster

import (
	"fmt"

	"prison/game"

	"github.com/rs/zerolog/log"
)

// Update tells observers about a committed action.
type Update struct {
	Seq     int
	Action  game.Action
	Hash    game.StateHash
	Current int
	Round   int
	Over    bool
}

// GameMaster is the authoritative commit path. It applies actions for real, records a
// snapshot of every committed state and notifies observers.
type GameMaster struct {
	history *History
	updates chan Update
	seq     int
}

func NewGameMaster(buffer int) *GameMaster {
	return &GameMaster{
		history: NewHistory(),
		updates: make(chan Update, buffer),
	}
}

// Init records the starting position so it can be returned to.
func (gm *GameMaster) Init(gs *game.GameState) {
	gm.history.Save(gs)
}

func (gm *GameMaster) Commit(gs *game.GameState, a game.Action) error {
	if err := game.Commit(gs, a); err != nil {
		return fmt.Errorf("illegal move: %w", err)
	}
	gm.history.Save(gs)
	gm.seq++

	u := Update{
		Seq:     gm.seq,
		Action:  a,
		Hash:    gs.Hash(),
		Current: gs.Current,
		Round:   gs.Round,
		Over:    gs.IsOver(),
	}
	select {
	case gm.updates <- u:
	default:
		log.Warn().Int("seq", u.Seq).Msg("no room for update, observer is lagging")
	}
	if u.Over {
		log.Info().Int("seq", u.Seq).Msg("game over")
	}
	return nil
}

func (gm *GameMaster) Updates() <-chan Update {
	return gm.updates
}

func (gm *GameMaster) History() *History {
	return gm.history
}
