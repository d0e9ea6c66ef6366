package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var (
	ErrGameOver       = errors.New("game is over - no actions allowed")
	ErrNotYourTurn    = errors.New("actor is not the current player")
	ErrIllegalAction  = errors.New("illegal action")
	ErrSimulationOpen = errors.New("state has outstanding simulations")
)

// Unlock thresholds: placing the 3rd and 6th prisoner of a color earns a guard.
var guardUnlocks = map[int]bool{3: true, 6: true}

// Validate checks an action against the current state without mutating it.
func Validate(gs *GameState, a Action) error {
	if gs.IsOver() {
		return ErrGameOver
	}
	actor := a.Head().Actor
	if actor != gs.Current {
		return fmt.Errorf("%w: actor %d, current %d", ErrNotYourTurn, actor, gs.Current)
	}
	p := gs.Players[actor]
	ok := false
	switch v := a.(type) {
	case AddTileToBus:
		ok = CanAddToBus(gs, actor, v.Bus, v.Slot)
	case MovePrisonerFromIsolation:
		ok = CanMoveFromIsolation(p, v.Target)
	case MoveEmployee:
		ok = CanMoveEmployee(p, v.From, v.To)
	case BuyPrisonerFromOtherIsolation:
		ok = CanBuy(gs, actor, v.Seller)
		if ok && v.Placed {
			ok = CanPlacePrisoner(p.Board, gs.Players[v.Seller].IsolationTop(), v.Target, p.MaxPrisonerTypes)
		}
	case FreePrisoner:
		ok = CanFree(p)
	case ExpandPrisonGrid:
		ok = CanExpand(p, v.Size, v.Anchor, v.Rotation)
	case TakeBus:
		ok = CanTakeBus(gs, actor, v.Bus)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalAction, Describe(a))
	}
	return nil
}

// Apply performs a speculative action in place and returns the token that reverts it.
// Applying an illegal action is a caller defect and panics before any mutation.
func Apply(gs *GameState, a Action) *Undo {
	if err := Validate(gs, a); err != nil {
		panic(fmt.Sprintf("apply: %v", err))
	}
	u := &Undo{action: a}
	gs.open = append(gs.open, u)
	gs.perform(u, a)
	return u
}

// Revert restores the state captured by the most recent outstanding Apply. Reverting
// any other token, or the same token twice, means the simulation has diverged and panics.
func Revert(gs *GameState, u *Undo) {
	n := len(gs.open)
	if u == nil || u.done || n == 0 || gs.open[n-1] != u {
		panic(ErrUndoMismatch)
	}
	u.rollback()
	if n == 1 {
		gs.open = nil
	} else {
		gs.open = gs.open[:n-1]
	}
}

// Commit applies an action for real. Nothing is journaled, so the floor plan only grows.
func Commit(gs *GameState, a Action) error {
	if gs.Simulating() {
		return ErrSimulationOpen
	}
	if err := Validate(gs, a); err != nil {
		return err
	}
	gs.perform(nil, a)
	for i, p := range gs.Players {
		p.Score = FinalScore(gs, i)
	}
	return nil
}

func (gs *GameState) perform(u *Undo, a Action) {
	p := gs.Players[a.Head().Actor]
	switch v := a.(type) {
	case AddTileToBus:
		gs.addTileToBus(u, v)
	case MovePrisonerFromIsolation:
		u.addInt(&p.Coins, -1)
		t := u.pop(&p.Isolation)
		gs.placePrisoner(u, p, t, v.Target)
	case MoveEmployee:
		moveEmployee(u, p, v.From, v.To)
	case BuyPrisonerFromOtherIsolation:
		gs.buy(u, p, v)
	case FreePrisoner:
		u.addInt(&p.Coins, -2)
		u.push(&gs.Discard, u.pop(&p.Isolation))
	case ExpandPrisonGrid:
		expand(u, p, v)
	case TakeBus:
		gs.takeBus(u, p, v)
	}
	gs.advance(u)
}

func (gs *GameState) addTileToBus(u *Undo, a AddTileToBus) {
	bus := gs.Buses[gs.BusIndex(a.Bus)]
	var t *Tile
	if len(gs.DrawStack) > 0 {
		t = u.pop(&gs.DrawStack)
	} else {
		t = u.pop(&gs.FinalStack)
	}
	u.setTile(&bus.Slots[a.Slot], t)
}

func (gs *GameState) buy(u *Undo, p *Player, a BuyPrisonerFromOtherIsolation) {
	seller := gs.Players[a.Seller]
	u.addInt(&p.Coins, -2)
	u.addInt(&seller.Coins, 1)
	t := u.pop(&seller.Isolation)
	if a.Placed {
		gs.placePrisoner(u, p, t, a.Target)
		return
	}
	u.push(&p.Isolation, t)
}

func expand(u *Undo, p *Player, a ExpandPrisonGrid) {
	for _, c := range Footprint(a.Size, a.Anchor, a.Rotation) {
		u.markFloor(p.Board, c)
	}
	u.addInt(&p.Coins, -a.Size.Cost())
	if a.Size == Big {
		u.addInt(&p.BigExpansions, -1)
		u.addInt(&p.MaxPrisonerTypes, 1)
	} else {
		u.addInt(&p.SmallExpansions, -1)
	}
}

// moveEmployee relocates a guard tile between posts.
func moveEmployee(u *Undo, p *Player, from, to Post) {
	var t *Tile
	if from.Slot == OnBoard {
		t = p.Board.Yard[from.Cell]
		u.clearYard(p.Board, from.Cell)
		u.removeGuardCell(p.Board, from.Cell)
	} else {
		t = p.Staff[from.Slot]
		u.setTile(&p.Staff[from.Slot], nil)
	}
	if to.Slot == OnBoard {
		placeGuard(u, p, t, to.Cell)
	} else {
		u.setTile(&p.Staff[to.Slot], t)
	}
	u.setBool(&p.EmployeeMoved, true)
}

func (gs *GameState) takeBus(u *Undo, p *Player, a TakeBus) {
	bus := u.removeBus(gs, gs.BusIndex(a.Bus))
	u.setBus(&p.TakenBus, bus)
	for i, t := range bus.Slots {
		if t == nil {
			continue
		}
		u.setTile(&bus.Slots[i], nil)
		gs.receive(u, p, t)
	}
}

// receive routes a tile arriving from a bus to where it belongs.
func (gs *GameState) receive(u *Undo, p *Player, t *Tile) {
	switch t.Kind {
	case Coin:
		u.addInt(&p.Coins, 1)
		u.push(&gs.Discard, t)
	case Guard:
		if c, ok := BestGuardCell(p.Board); ok {
			placeGuard(u, p, t, c)
			return
		}
		u.push(&gs.Discard, t)
	default:
		gs.settle(u, p, t)
	}
}

// settle places a prisoner at its best cell, or queues it in isolation.
func (gs *GameState) settle(u *Undo, p *Player, t *Tile) {
	if c, ok := BestCell(p.Board, t, p.MaxPrisonerTypes); ok {
		gs.placePrisoner(u, p, t, c)
		return
	}
	u.push(&p.Isolation, t)
}

// placePrisoner puts a prisoner on the yard, then resolves guard unlocks and breeding.
func (gs *GameState) placePrisoner(u *Undo, p *Player, t *Tile, c Cell) {
	b := p.Board
	u.putYard(b, c, t)

	if guardUnlocks[b.CountColor(t.Color)] && len(gs.GuardReserve) > 0 {
		if gc, ok := BestGuardCell(b); ok {
			placeGuard(u, p, u.pop(&gs.GuardReserve), gc)
		}
	}

	if !t.Breedable() {
		return
	}
	for _, nb := range c.Neighbours() {
		mate := b.Yard[nb]
		if mate == nil || !canBreed(t, mate) {
			continue
		}
		u.setBool(&t.Paired, true)
		u.setBool(&mate.Paired, true)
		if len(gs.Nursery[t.Color]) > 0 {
			gs.settle(u, p, u.popNursery(gs, t.Color))
		}
		return
	}
}

func placeGuard(u *Undo, p *Player, t *Tile, c Cell) {
	u.putYard(p.Board, c, t)
	u.addGuardCell(p.Board, c)
}

// advance passes the turn to the next player without a bus. When every player holds
// one the round ends: unless the final stack has been touched, buses go back on the
// table and a new round starts.
func (gs *GameState) advance(u *Undo) {
	n := len(gs.Players)
	for step := 1; step <= n; step++ {
		next := (gs.Current + step) % n
		if gs.Players[next].TakenBus == nil {
			u.setInt(&gs.Current, next)
			return
		}
	}
	if gs.FinalStackTouched() {
		return
	}
	buses := make([]*Bus, 0, n)
	for _, p := range gs.Players {
		buses = append(buses, p.TakenBus)
		u.setBus(&p.TakenBus, nil)
		if p.EmployeeMoved {
			u.setBool(&p.EmployeeMoved, false)
		}
	}
	slices.SortFunc(buses, func(a, b *Bus) int { return a.ID - b.ID })
	u.setBuses(gs, buses)
	u.addInt(&gs.Round, 1)
	u.setInt(&gs.Current, (gs.Current+1)%n)
}
