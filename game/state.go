package game

import (
	"github.com/google/uuid"
)

const BusSlots = 3

type Bus struct {
	ID      int
	Slots   [BusSlots]*Tile
	Blocked [BusSlots]bool
}

func (b *Bus) Tiles() int {
	n := 0
	for _, t := range b.Slots {
		if t != nil {
			n++
		}
	}
	return n
}

// FreeSlot returns the first unblocked empty slot.
func (b *Bus) FreeSlot() (int, bool) {
	for i := range b.Slots {
		if !b.Blocked[i] && b.Slots[i] == nil {
			return i, true
		}
	}
	return 0, false
}

func (b *Bus) clone() *Bus {
	if b == nil {
		return nil
	}
	c := *b
	for i, t := range b.Slots {
		c.Slots[i] = cloneTile(t)
	}
	return &c
}

// GameState is created once per game and mutated in place for the whole game,
// including speculative search where every mutation is reverted.
type GameState struct {
	Players         []*Player
	Current         int
	DrawStack       []*Tile // top is the last element
	FinalStack      []*Tile
	FinalStackStart int
	Buses           []*Bus
	Nursery         map[Color][]*Tile
	GuardReserve    []*Tile
	Discard         []*Tile
	Round           int

	open []*Undo // outstanding simulation tokens, most recent last
}

func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.Current]
}

func (gs *GameState) PlayerIndex(id uuid.UUID) int {
	for i, p := range gs.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (gs *GameState) BusIndex(id int) int {
	for i, b := range gs.Buses {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// NextTile is the tile a bus draw would take: the draw stack first, then the final stack.
func (gs *GameState) NextTile() *Tile {
	if n := len(gs.DrawStack); n > 0 {
		return gs.DrawStack[n-1]
	}
	if n := len(gs.FinalStack); n > 0 {
		return gs.FinalStack[n-1]
	}
	return nil
}

func (gs *GameState) FinalStackTouched() bool {
	return len(gs.FinalStack) < gs.FinalStackStart
}

// IsOver reports whether the game has ended: the final stack has been drawn from and
// either every player holds a bus, or nothing is left to draw and every open bus is empty.
func (gs *GameState) IsOver() bool {
	if !gs.FinalStackTouched() {
		return false
	}
	allTaken := true
	for _, p := range gs.Players {
		if p.TakenBus == nil {
			allTaken = false
			break
		}
	}
	if allTaken {
		return true
	}
	if gs.NextTile() != nil {
		return false
	}
	for _, b := range gs.Buses {
		if b.Tiles() > 0 {
			return false
		}
	}
	return true
}

// Winner returns the index of the player with the highest final score, earliest in
// turn order on ties, or -1 while the game is running.
func (gs *GameState) Winner() int {
	if !gs.IsOver() {
		return -1
	}
	best := 0
	for i := range gs.Players {
		if FinalScore(gs, i) > FinalScore(gs, best) {
			best = i
		}
	}
	return best
}

// Simulating reports whether speculative applies are still outstanding.
func (gs *GameState) Simulating() bool {
	return len(gs.open) > 0
}

// Clone deep-copies the state. Outstanding simulation tokens are not carried over.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		Players:         make([]*Player, len(gs.Players)),
		Current:         gs.Current,
		DrawStack:       cloneTiles(gs.DrawStack),
		FinalStack:      cloneTiles(gs.FinalStack),
		FinalStackStart: gs.FinalStackStart,
		Nursery:         make(map[Color][]*Tile, len(gs.Nursery)),
		GuardReserve:    cloneTiles(gs.GuardReserve),
		Discard:         cloneTiles(gs.Discard),
		Round:           gs.Round,
	}
	for i, p := range gs.Players {
		c.Players[i] = p.clone()
	}
	if len(gs.Buses) > 0 {
		c.Buses = make([]*Bus, len(gs.Buses))
		for i, b := range gs.Buses {
			c.Buses[i] = b.clone()
		}
	}
	for color, babies := range gs.Nursery {
		c.Nursery[color] = cloneTiles(babies)
	}
	return c
}
