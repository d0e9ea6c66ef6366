package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

const (
	MinPlayers      = 2
	MaxPlayers      = 5
	FinalStackSize  = 15
	coinTiles       = 10
	pileGuards      = 4
	reserveGuards   = 8
	babiesPerColor  = 2
	tilesPerTrait   = 2
	plainPerColor   = 4
	blockedSlotSeat = 2 // with two players this bus slot is closed
)

// ColorsInPlay is the number of prisoner colors used for a player count.
func ColorsInPlay(players int) int {
	return min(NumColors, players+3)
}

// NewGameState deals a fresh game. The seed drives the shuffle, so equal seeds give
// equal games.
func NewGameState(players []*Player, seed uint64) (*GameState, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("need %d to %d players, got %d", MinPlayers, MaxPlayers, len(players))
	}

	gs := &GameState{
		Players: players,
		Nursery: make(map[Color][]*Tile),
	}

	id := 0
	newTile := func(kind TileKind, color Color, trait Trait) *Tile {
		id++
		return &Tile{ID: id, Kind: kind, Color: color, Trait: trait}
	}

	var pile []*Tile
	for c := 0; c < ColorsInPlay(len(players)); c++ {
		color := Color(c)
		for _, trait := range []Trait{Male, Female, Old, Rich} {
			for i := 0; i < tilesPerTrait; i++ {
				pile = append(pile, newTile(Prisoner, color, trait))
			}
		}
		for i := 0; i < plainPerColor; i++ {
			pile = append(pile, newTile(Prisoner, color, NoTrait))
		}
		for i := 0; i < babiesPerColor; i++ {
			gs.Nursery[color] = append(gs.Nursery[color], newTile(Prisoner, color, Baby))
		}
	}
	for i := 0; i < coinTiles; i++ {
		pile = append(pile, newTile(Coin, 0, NoTrait))
	}
	for i := 0; i < pileGuards; i++ {
		pile = append(pile, newTile(Guard, 0, NoTrait))
	}
	for i := 0; i < reserveGuards; i++ {
		gs.GuardReserve = append(gs.GuardReserve, newTile(Guard, 0, NoTrait))
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })

	split := len(pile) - FinalStackSize
	gs.DrawStack = pile[:split:split]
	gs.FinalStack = pile[split:]
	gs.FinalStackStart = len(gs.FinalStack)

	for i := range players {
		bus := &Bus{ID: i}
		if len(players) == 2 {
			bus.Blocked[blockedSlotSeat] = true
		}
		gs.Buses = append(gs.Buses, bus)
	}
	return gs, nil
}
