package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, players int) *GameState {
	t.Helper()
	ps := make([]*Player, players)
	for i := range ps {
		ps[i] = NewPlayer("player", Minimax)
	}
	gs, err := NewGameState(ps, 7)
	require.NoError(t, err)
	return gs
}

var nextTestTileID = 10_000

func testTile(kind TileKind, color Color, trait Trait) *Tile {
	nextTestTileID++
	return &Tile{ID: nextTestTileID, Kind: kind, Color: color, Trait: trait}
}

func prisoner(color Color, trait Trait) *Tile {
	return testTile(Prisoner, color, trait)
}

// requireRoundTrip applies and reverts an action and checks nothing changed.
func requireRoundTrip(t *testing.T, gs *GameState, a Action) {
	t.Helper()
	before := gs.Clone()
	hash := gs.Hash()
	u := Apply(gs, a)
	Revert(gs, u)
	require.Equal(t, before, gs, "state changed after reverting %s", Describe(a))
	require.Equal(t, hash, gs.Hash(), "hash changed after reverting %s", Describe(a))
	require.False(t, gs.Simulating(), "token left open")
}

func head(actor int) Header {
	return Header{Actor: actor, Valid: true}
}
