package communication

import (
	"fmt"
	"sync"
)

type ConnState int

const (
	Disconnected ConnState = iota
	Connected
	OurTurn
	TheirTurn
	Closed
)

var stateNames = [...]string{"disconnected", "connected", "our-turn", "their-turn", "closed"}

func (s ConnState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("ConnState(%d)", int(s))
}

var transitions = map[ConnState][]ConnState{
	Disconnected: {Connected, Closed},
	Connected:    {OurTurn, TheirTurn, Closed},
	OurTurn:      {TheirTurn, Closed},
	TheirTurn:    {OurTurn, Closed},
}

// StateMachine tracks the connection lifecycle. Staying in the same state is always
// allowed except once closed.
type StateMachine struct {
	mu    sync.Mutex
	state ConnState
}

func (sm *StateMachine) State() ConnState {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state
}

func (sm *StateMachine) Transition(to ConnState) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.state == to && to != Closed {
		return nil
	}
	for _, next := range transitions[sm.state] {
		if next == to {
			sm.state = to
			return nil
		}
	}
	return fmt.Errorf("invalid transition from %s to %s", sm.state, to)
}
