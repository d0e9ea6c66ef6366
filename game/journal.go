package game

import (
	"errors"

	"golang.org/x/exp/slices"
)

var ErrUndoMismatch = errors.New("undo token does not match the most recent simulation")

// Undo journals every edit an apply made as an inverse closure. Inverses run in
// reverse order, so cascaded placements unwind last-applied-first. A nil *Undo
// journals nothing, which is how committed actions mutate the state.
type Undo struct {
	action Action
	edits  []func()
	done   bool
}

func (u *Undo) Action() Action {
	return u.action
}

func (u *Undo) record(inverse func()) {
	if u == nil {
		return
	}
	u.edits = append(u.edits, inverse)
}

func (u *Undo) rollback() {
	for i := len(u.edits) - 1; i >= 0; i-- {
		u.edits[i]()
	}
	u.edits = nil
	u.done = true
}

func (u *Undo) setInt(p *int, v int) {
	old := *p
	*p = v
	u.record(func() { *p = old })
}

func (u *Undo) addInt(p *int, delta int) {
	u.setInt(p, *p+delta)
}

func (u *Undo) setBool(p *bool, v bool) {
	old := *p
	*p = v
	u.record(func() { *p = old })
}

func (u *Undo) setTile(p **Tile, t *Tile) {
	old := *p
	*p = t
	u.record(func() { *p = old })
}

func (u *Undo) setBus(p **Bus, b *Bus) {
	old := *p
	*p = b
	u.record(func() { *p = old })
}

func (u *Undo) push(s *[]*Tile, t *Tile) {
	*s = append(*s, t)
	u.record(func() { *s = trimTop(*s) })
}

func (u *Undo) pop(s *[]*Tile) *Tile {
	t := (*s)[len(*s)-1]
	*s = trimTop(*s)
	u.record(func() { *s = append(*s, t) })
	return t
}

// trimTop drops the top tile. Empty stacks are always nil.
func trimTop(s []*Tile) []*Tile {
	if len(s) <= 1 {
		return nil
	}
	return s[:len(s)-1]
}

func (u *Undo) putYard(b *Board, c Cell, t *Tile) {
	b.Yard[c] = t
	u.record(func() { delete(b.Yard, c) })
}

func (u *Undo) clearYard(b *Board, c Cell) {
	t := b.Yard[c]
	delete(b.Yard, c)
	u.record(func() { b.Yard[c] = t })
}

// markFloor is the only floor edit. Its inverse exists solely inside a simulation.
func (u *Undo) markFloor(b *Board, c Cell) {
	b.Floor[c] = true
	u.record(func() { delete(b.Floor, c) })
}

func (u *Undo) addGuardCell(b *Board, c Cell) {
	b.Guards = append(b.Guards, c)
	u.record(func() {
		if len(b.Guards) <= 1 {
			b.Guards = nil
			return
		}
		b.Guards = b.Guards[:len(b.Guards)-1]
	})
}

func (u *Undo) removeGuardCell(b *Board, c Cell) {
	i := slices.Index(b.Guards, c)
	if i < 0 {
		return
	}
	b.Guards = slices.Delete(b.Guards, i, i+1)
	if len(b.Guards) == 0 {
		b.Guards = nil
	}
	u.record(func() { b.Guards = slices.Insert(b.Guards, i, c) })
}

// removeBus takes a bus out of the shared list; the inverse restores its exact position.
func (u *Undo) removeBus(gs *GameState, i int) *Bus {
	bus := gs.Buses[i]
	gs.Buses = slices.Delete(gs.Buses, i, i+1)
	if len(gs.Buses) == 0 {
		gs.Buses = nil
	}
	u.record(func() { gs.Buses = slices.Insert(gs.Buses, i, bus) })
	return bus
}

func (u *Undo) setBuses(gs *GameState, buses []*Bus) {
	old := gs.Buses
	gs.Buses = buses
	u.record(func() { gs.Buses = old })
}

func (u *Undo) popNursery(gs *GameState, color Color) *Tile {
	babies := gs.Nursery[color]
	t := babies[len(babies)-1]
	gs.Nursery[color] = trimTop(babies)
	u.record(func() { gs.Nursery[color] = append(gs.Nursery[color], t) })
	return t
}
