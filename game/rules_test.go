package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanPlacePrisoner(t *testing.T) {
	t.Run("needs empty floor", func(t *testing.T) {
		b := NewBoard()
		red := prisoner(Red, NoTrait)
		require.True(t, CanPlacePrisoner(b, red, Cell{3, 5}, 3))
		require.False(t, CanPlacePrisoner(b, red, Cell{0, 0}, 3), "off the floor")
		require.False(t, CanPlacePrisoner(b, red, Cell{-1, 5}, 3), "out of bounds")

		b.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
		require.False(t, CanPlacePrisoner(b, red, Cell{3, 5}, 3), "occupied")
	})

	t.Run("rejects a different color next door", func(t *testing.T) {
		b := NewBoard()
		b.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
		require.False(t, CanPlacePrisoner(b, prisoner(Blue, NoTrait), Cell{4, 5}, 3))
		require.True(t, CanPlacePrisoner(b, prisoner(Blue, NoTrait), Cell{5, 5}, 3))
		require.True(t, CanPlacePrisoner(b, prisoner(Red, Male), Cell{4, 5}, 3))
	})

	t.Run("old prisoners skip the neighbour check", func(t *testing.T) {
		b := NewBoard()
		b.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
		require.True(t, CanPlacePrisoner(b, prisoner(Blue, Old), Cell{4, 5}, 3))
	})

	t.Run("caps distinct colors", func(t *testing.T) {
		b := NewBoard()
		b.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
		b.Yard[Cell{5, 5}] = prisoner(Blue, NoTrait)
		require.False(t, CanPlacePrisoner(b, prisoner(Green, NoTrait), Cell{7, 6}, 2))
		require.True(t, CanPlacePrisoner(b, prisoner(Green, NoTrait), Cell{7, 6}, 3))
		require.True(t, CanPlacePrisoner(b, prisoner(Blue, NoTrait), Cell{7, 6}, 2), "known color")
	})

	t.Run("guards are not prisoners", func(t *testing.T) {
		b := NewBoard()
		require.False(t, CanPlacePrisoner(b, testTile(Guard, 0, NoTrait), Cell{3, 5}, 3))
	})
}

func TestCanPlaceGuard(t *testing.T) {
	b := NewBoard()
	b.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
	require.True(t, CanPlaceGuard(b, Cell{4, 5}), "guards ignore colors")
	require.False(t, CanPlaceGuard(b, Cell{3, 5}))
	require.False(t, CanPlaceGuard(b, Cell{0, 0}))
}

func TestFootprint(t *testing.T) {
	t.Run("small follows the rotation", func(t *testing.T) {
		a := Cell{5, 5}
		require.Equal(t, []Cell{a, {6, 5}}, Footprint(Small, a, Rot0))
		require.Equal(t, []Cell{a, {5, 6}}, Footprint(Small, a, Rot90))
		require.Equal(t, []Cell{a, {4, 5}}, Footprint(Small, a, Rot180))
		require.Equal(t, []Cell{a, {5, 4}}, Footprint(Small, a, Rot270))
	})

	t.Run("big covers a square", func(t *testing.T) {
		require.ElementsMatch(t, []Cell{{5, 5}, {4, 5}, {5, 4}, {4, 4}}, Footprint(Big, Cell{5, 5}, Rot180))
	})
}

func TestCanExpand(t *testing.T) {
	t.Run("overlapping small expansion is rejected", func(t *testing.T) {
		p := NewPlayer("p", Minimax)
		p.Coins = 100
		p.SmallExpansions = 2
		// (7,5) is floor, (8,5) is not
		require.False(t, CanExpand(p, Small, Cell{7, 5}, Rot0))
		require.False(t, CanExpand(p, Small, Cell{8, 5}, Rot180))
	})

	t.Run("adjacent expansion is accepted", func(t *testing.T) {
		p := NewPlayer("p", Minimax)
		require.True(t, CanExpand(p, Small, Cell{8, 5}, Rot0))
		require.True(t, CanExpand(p, Small, Cell{5, 4}, Rot270))
	})

	t.Run("must touch the prison", func(t *testing.T) {
		p := NewPlayer("p", Minimax)
		require.False(t, CanExpand(p, Small, Cell{0, 0}, Rot0))
	})

	t.Run("must stay on the grid", func(t *testing.T) {
		p := NewPlayer("p", Minimax)
		p.Board.Floor[Cell{11, 0}] = true
		require.False(t, CanExpand(p, Small, Cell{11, 1}, Rot0))
	})

	t.Run("needs coins and pieces", func(t *testing.T) {
		p := NewPlayer("p", Minimax)
		p.Coins = 1
		require.False(t, CanExpand(p, Big, Cell{8, 5}, Rot0), "big costs two")
		p.Coins = 2
		require.True(t, CanExpand(p, Big, Cell{8, 5}, Rot0))
		p.BigExpansions = 0
		require.False(t, CanExpand(p, Big, Cell{8, 5}, Rot0))
	})

	t.Run("rejects unknown rotations", func(t *testing.T) {
		p := NewPlayer("p", Minimax)
		require.False(t, CanExpand(p, Small, Cell{8, 5}, Rotation(45)))
	})
}

func TestBusEligibility(t *testing.T) {
	gs := newTestState(t, 2)

	require.True(t, CanAddToBus(gs, 0, 0, 0))
	require.False(t, CanAddToBus(gs, 0, 0, 2), "blocked slot with two players")
	require.False(t, CanTakeBus(gs, 0, 0), "empty bus")

	gs.Buses[0].Slots[0] = prisoner(Red, NoTrait)
	require.False(t, CanAddToBus(gs, 0, 0, 0), "occupied slot")
	require.True(t, CanTakeBus(gs, 0, 0))

	gs.Players[0].TakenBus = &Bus{ID: 9}
	require.False(t, CanAddToBus(gs, 0, 1, 0), "already holds a bus")
	require.False(t, CanTakeBus(gs, 0, 0), "already holds a bus")

	gs.DrawStack, gs.FinalStack = nil, nil
	require.False(t, CanAddToBus(gs, 1, 1, 0), "nothing to draw")
}

func TestIsolationEligibility(t *testing.T) {
	gs := newTestState(t, 2)
	p := gs.Players[0]

	require.False(t, CanFree(p))
	p.Isolation = []*Tile{prisoner(Red, NoTrait)}
	p.Coins = 1
	require.False(t, CanFree(p), "freeing costs two")
	require.False(t, CanBuy(gs, 1, 0), "buyer has one coin")
	p.Coins = 2
	require.True(t, CanFree(p))

	gs.Players[1].Coins = 2
	require.True(t, CanBuy(gs, 1, 0))
	require.False(t, CanBuy(gs, 1, 1), "cannot buy from yourself")
	require.False(t, CanBuy(gs, 0, 1), "seller isolation empty")
}

func TestCanMoveEmployee(t *testing.T) {
	p := NewPlayer("p", Minimax)
	guard := testTile(Guard, 0, NoTrait)
	p.Staff[Janitor] = guard

	require.True(t, CanMoveEmployee(p, StaffPost(Janitor), StaffPost(Lawyer1)))
	require.True(t, CanMoveEmployee(p, StaffPost(Janitor), BoardPost(Cell{3, 5})))
	require.False(t, CanMoveEmployee(p, StaffPost(Janitor), StaffPost(Janitor)))
	require.False(t, CanMoveEmployee(p, StaffPost(Secretary1), StaffPost(Lawyer1)), "nobody to move")
	require.False(t, CanMoveEmployee(p, StaffPost(Janitor), BoardPost(Cell{0, 0})), "off the floor")
}

func TestBestCell(t *testing.T) {
	b := NewBoard()
	b.Yard[Cell{5, 5}] = prisoner(Red, NoTrait)
	b.Yard[Cell{6, 6}] = prisoner(Red, NoTrait)

	c, ok := BestCell(b, prisoner(Red, NoTrait), 3)
	require.True(t, ok)
	require.Equal(t, Cell{6, 5}, c, "touches both reds")

	g, ok := BestGuardCell(b)
	require.True(t, ok)
	require.Equal(t, Cell{6, 5}, g)

	full := NewBoard()
	for cell := range full.Floor {
		full.Yard[cell] = prisoner(Red, NoTrait)
	}
	_, ok = BestCell(full, prisoner(Red, NoTrait), 3)
	require.False(t, ok)
	_, ok = BestGuardCell(full)
	require.False(t, ok)
}
