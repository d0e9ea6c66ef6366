package communication

import (
	"context"
	"fmt"

	"prison/game"

	"github.com/rs/zerolog/log"
)

// Committer is the local side of a replicated game. *engine.Engine satisfies it.
type Committer interface {
	Play(a game.Action) error
	View(fn func(gs *game.GameState)) error
}

// Replicator keeps a local game in step with a remote one. Local seats act here and
// their actions are published; every other seat's actions arrive over comm.
type Replicator struct {
	comm  Communicator
	local Committer
	seats map[int]bool
	sm    StateMachine
}

func NewReplicator(comm Communicator, local Committer, seats ...int) *Replicator {
	r := &Replicator{comm: comm, local: local, seats: make(map[int]bool)}
	for _, s := range seats {
		r.seats[s] = true
	}
	return r
}

func (r *Replicator) State() ConnState {
	return r.sm.State()
}

// Connect marks the link as up and works out whose turn it is.
func (r *Replicator) Connect() error {
	if err := r.sm.Transition(Connected); err != nil {
		return err
	}
	return r.sync()
}

func (r *Replicator) sync() error {
	var (
		over    bool
		current int
	)
	if err := r.local.View(func(gs *game.GameState) {
		over, current = gs.IsOver(), gs.Current
	}); err != nil {
		return err
	}
	switch {
	case over:
		return r.sm.Transition(Closed)
	case r.seats[current]:
		return r.sm.Transition(OurTurn)
	default:
		return r.sm.Transition(TheirTurn)
	}
}

func (r *Replicator) hash() (game.StateHash, error) {
	var h game.StateHash
	err := r.local.View(func(gs *game.GameState) { h = gs.Hash() })
	return h, err
}

// Publish sends an action that was already committed locally.
func (r *Replicator) Publish(ctx context.Context, a game.Action) error {
	if s := r.sm.State(); s != OurTurn {
		return fmt.Errorf("%w: %s", ErrNotOurTurn, s)
	}
	rec, err := Encode(a)
	if err != nil {
		return err
	}
	if rec.Hash, err = r.hash(); err != nil {
		return err
	}
	if err := r.comm.Send(ctx, rec); err != nil {
		return fmt.Errorf("failed to send %s: %w", game.Describe(a), err)
	}
	return r.sync()
}

// Receive waits for the remote side's next action and commits it locally.
func (r *Replicator) Receive(ctx context.Context) (game.Action, error) {
	if s := r.sm.State(); s != TheirTurn {
		return nil, fmt.Errorf("%w: %s", ErrNotTheirTurn, s)
	}
	rec, err := r.comm.Receive(ctx)
	if err != nil {
		return nil, err
	}
	a, err := rec.Decode()
	if err != nil {
		return nil, err
	}
	if r.seats[rec.Actor] {
		return nil, fmt.Errorf("peer acted for local seat %d", rec.Actor)
	}
	if err := r.local.Play(a); err != nil {
		return nil, fmt.Errorf("remote action rejected: %w", err)
	}
	if rec.Hash != 0 {
		h, err := r.hash()
		if err != nil {
			return nil, err
		}
		if h != rec.Hash {
			return nil, fmt.Errorf("%w after %s", ErrDesync, game.Describe(a))
		}
	}
	log.Debug().Int("actor", rec.Actor).Str("action", game.Describe(a)).Msg("applied remote action")
	return a, r.sync()
}

func (r *Replicator) Close() error {
	if err := r.sm.Transition(Closed); err != nil {
		log.Debug().Err(err).Msg("already closed")
	}
	return r.comm.Close()
}
