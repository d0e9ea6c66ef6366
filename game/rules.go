package game

import "fmt"

type ExpansionSize int

const (
	Small ExpansionSize = iota
	Big
)

func (s ExpansionSize) String() string {
	if s == Big {
		return "big"
	}
	return "small"
}

// Cost in coins of one expansion of this size.
func (s ExpansionSize) Cost() int {
	if s == Big {
		return 2
	}
	return 1
}

type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

var Rotations = [4]Rotation{Rot0, Rot90, Rot180, Rot270}

func (r Rotation) valid() bool {
	return r == Rot0 || r == Rot90 || r == Rot180 || r == Rot270
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// Footprint returns the cells an expansion would mark as floor. A small piece covers
// the anchor and its neighbour in the rotation's direction; a big piece is the 2x2
// square extending from the anchor into the rotation's quadrant.
func Footprint(size ExpansionSize, anchor Cell, rot Rotation) []Cell {
	var dx, dy int
	if size == Small {
		switch rot {
		case Rot0:
			dx = 1
		case Rot90:
			dy = 1
		case Rot180:
			dx = -1
		case Rot270:
			dy = -1
		}
		return []Cell{anchor, anchor.Add(Cell{dx, dy})}
	}
	switch rot {
	case Rot0:
		dx, dy = 1, 1
	case Rot90:
		dx, dy = -1, 1
	case Rot180:
		dx, dy = -1, -1
	case Rot270:
		dx, dy = 1, -1
	}
	return []Cell{
		anchor,
		anchor.Add(Cell{dx, 0}),
		anchor.Add(Cell{0, dy}),
		anchor.Add(Cell{dx, dy}),
	}
}

// CanPlacePrisoner checks floor, occupancy, the distinct-color cap and neighbour
// compatibility. Old prisoners get along with everyone.
func CanPlacePrisoner(b *Board, t *Tile, c Cell, typeCap int) bool {
	if t == nil || t.Kind != Prisoner {
		return false
	}
	if !b.InBounds(c) || !b.Floor[c] || b.Yard[c] != nil {
		return false
	}
	colors := b.Colors()
	if !colors[t.Color] && len(colors) >= typeCap {
		return false
	}
	if t.Trait == Old {
		return true
	}
	for _, nb := range c.Neighbours() {
		if n := b.Yard[nb]; n.IsPrisoner() && n.Color != t.Color {
			return false
		}
	}
	return true
}

// CanPlaceGuard only needs an empty floor cell.
func CanPlaceGuard(b *Board, c Cell) bool {
	return b.InBounds(c) && b.Floor[c] && b.Yard[c] == nil
}

func CanExpand(p *Player, size ExpansionSize, anchor Cell, rot Rotation) bool {
	if !rot.valid() || (size != Small && size != Big) {
		return false
	}
	remaining := p.SmallExpansions
	if size == Big {
		remaining = p.BigExpansions
	}
	if remaining <= 0 || p.Coins < size.Cost() {
		return false
	}
	b := p.Board
	footprint := Footprint(size, anchor, rot)
	for _, c := range footprint {
		if !b.InBounds(c) || b.Floor[c] {
			return false
		}
	}
	return touchesFloor(b, footprint)
}

func touchesFloor(b *Board, footprint []Cell) bool {
	for _, c := range footprint {
		for _, nb := range c.Neighbours() {
			if b.Floor[nb] {
				return true
			}
		}
	}
	return false
}

// expansionFit counts floor neighbours around a footprint; compact growth scores higher.
func expansionFit(b *Board, footprint []Cell) int {
	fit := 0
	for _, c := range footprint {
		for _, nb := range c.Neighbours() {
			if b.Floor[nb] {
				fit++
			}
		}
	}
	return fit
}

func CanAddToBus(gs *GameState, player, busID, slot int) bool {
	p := gs.Players[player]
	if p.TakenBus != nil || gs.NextTile() == nil {
		return false
	}
	i := gs.BusIndex(busID)
	if i < 0 || slot < 0 || slot >= BusSlots {
		return false
	}
	bus := gs.Buses[i]
	return !bus.Blocked[slot] && bus.Slots[slot] == nil
}

func CanTakeBus(gs *GameState, player, busID int) bool {
	if gs.Players[player].TakenBus != nil {
		return false
	}
	i := gs.BusIndex(busID)
	return i >= 0 && gs.Buses[i].Tiles() > 0
}

func CanMoveFromIsolation(p *Player, target Cell) bool {
	top := p.IsolationTop()
	if top == nil || p.Coins < 1 {
		return false
	}
	return CanPlacePrisoner(p.Board, top, target, p.MaxPrisonerTypes)
}

func CanFree(p *Player) bool {
	return len(p.Isolation) > 0 && p.Coins >= 2
}

func CanBuy(gs *GameState, buyer, seller int) bool {
	if seller == buyer || seller < 0 || seller >= len(gs.Players) {
		return false
	}
	return gs.Players[buyer].Coins >= 2 && len(gs.Players[seller].Isolation) > 0
}

// CanMoveEmployee checks a relocation between posts: the source must hold a guard and
// the destination must be an empty staff slot or a legal guard cell. Each player may
// move one employee per round.
func CanMoveEmployee(p *Player, from, to Post) bool {
	if p.EmployeeMoved || from == to || p.employeeAt(from) == nil {
		return false
	}
	if to.Slot == OnBoard {
		return CanPlaceGuard(p.Board, to.Cell)
	}
	return to.Slot >= 0 && to.Slot < OnBoard && p.Staff[to.Slot] == nil
}

// BestCell picks the legal cell with the most same-color neighbours, first in scan
// order on ties.
func BestCell(b *Board, t *Tile, typeCap int) (Cell, bool) {
	best, bestScore, found := Cell{}, -1, false
	for c := range b.cells {
		if !CanPlacePrisoner(b, t, c, typeCap) {
			continue
		}
		if s := b.adjacentSameColor(c, t.Color); s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, found
}

// BestGuardCell picks the empty floor cell watching the most prisoners.
func BestGuardCell(b *Board) (Cell, bool) {
	best, bestScore, found := Cell{}, -1, false
	for c := range b.cells {
		if !CanPlaceGuard(b, c) {
			continue
		}
		if s := b.AdjacentPrisoners(c); s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, found
}
