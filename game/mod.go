package game

import (
	"encoding/binary"
	"hash/fnv"
)

// Evaluate scores a state from one player's perspective. Higher is better for that player.
type Evaluate func(gs *GameState, player int) int

type StateHash uint64

// Hash fingerprints the observable game state. Peers compare hashes to confirm they
// stayed in lockstep after replicating an action.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	buf := make([]byte, 8)
	write := func(v int) {
		binary.LittleEndian.PutUint64(buf, uint64(v))
		h.Write(buf)
	}
	writeTile := func(t *Tile) {
		if t == nil {
			write(-1)
			return
		}
		write(t.ID)
		if t.Paired {
			write(1)
		} else {
			write(0)
		}
	}
	writeTiles := func(tiles []*Tile) {
		write(len(tiles))
		for _, t := range tiles {
			writeTile(t)
		}
	}
	writeBus := func(b *Bus) {
		if b == nil {
			write(-1)
			return
		}
		write(b.ID)
		for _, t := range b.Slots {
			writeTile(t)
		}
	}

	write(gs.Current)
	write(gs.Round)
	writeTiles(gs.DrawStack)
	writeTiles(gs.FinalStack)
	writeTiles(gs.GuardReserve)
	writeTiles(gs.Discard)
	for c := 0; c < NumColors; c++ {
		writeTiles(gs.Nursery[Color(c)])
	}
	write(len(gs.Buses))
	for _, b := range gs.Buses {
		writeBus(b)
	}
	for _, p := range gs.Players {
		write(p.Coins)
		write(p.BigExpansions)
		write(p.SmallExpansions)
		write(p.MaxPrisonerTypes)
		if p.EmployeeMoved {
			write(1)
		} else {
			write(0)
		}
		writeTiles(p.Isolation)
		writeBus(p.TakenBus)
		for _, t := range p.Staff {
			writeTile(t)
		}
		for c := range p.Board.cells {
			if p.Board.Floor[c] {
				write(c.Y*p.Board.Width + c.X)
				writeTile(p.Board.Yard[c])
			}
		}
		write(len(p.Board.Guards))
		for _, c := range p.Board.Guards {
			write(c.Y*p.Board.Width + c.X)
		}
	}
	return StateHash(h.Sum64())
}
