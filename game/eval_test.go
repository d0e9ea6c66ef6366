package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluatePosition(t *testing.T) {
	t.Run("worked scenario", func(t *testing.T) {
		gs := newTestState(t, 2)
		p := gs.Players[0]
		p.Board.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
		p.Board.Yard[Cell{4, 5}] = prisoner(Red, Male)
		p.Coins = 3
		gs.DrawStack = gs.DrawStack[:5]

		// 20 prisoners + 6 coin urgency + 2 coverage
		require.Equal(t, 28, EvaluatePosition(gs, 0))
	})

	t.Run("deterministic", func(t *testing.T) {
		gs := newTestState(t, 3)
		p := gs.Players[1]
		p.Board.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
		p.Isolation = []*Tile{prisoner(Blue, NoTrait), prisoner(Green, NoTrait)}
		first := EvaluatePosition(gs, 1)
		require.Equal(t, first, EvaluatePosition(gs, 1))
	})

	t.Run("coins stop counting late in the game", func(t *testing.T) {
		gs := newTestState(t, 2)
		gs.Players[0].Coins = 4
		early := EvaluatePosition(gs, 0)
		gs.DrawStack = gs.DrawStack[:2]
		require.Equal(t, early-8, EvaluatePosition(gs, 0))
	})

	t.Run("isolation penalties", func(t *testing.T) {
		gs := newTestState(t, 2)
		p := gs.Players[0]
		p.Coins = 0
		base := EvaluatePosition(gs, 0)

		p.Isolation = []*Tile{prisoner(Blue, NoTrait), prisoner(Blue, Old), prisoner(Green, NoTrait)}
		// two distinct colors at 20 each, three tiles at 5 each
		require.Equal(t, base-40-15, EvaluatePosition(gs, 0))

		p.Staff[Janitor] = testTile(Guard, 0, NoTrait)
		// the janitor halves the color penalty and is worth 2
		require.Equal(t, base-20-15+2, EvaluatePosition(gs, 0))
	})

	t.Run("staff synergies", func(t *testing.T) {
		gs := newTestState(t, 2)
		p := gs.Players[0]
		p.Coins = 2
		gs.DrawStack = nil
		base := EvaluatePosition(gs, 0)

		p.Staff[Secretary1] = testTile(Guard, 0, NoTrait)
		require.Equal(t, base+20+1, EvaluatePosition(gs, 0), "secretary times coins")

		p.Board.Yard[Cell{3, 5}] = prisoner(Red, Rich)
		p.Staff[Lawyer2] = testTile(Guard, 0, NoTrait)
		require.Equal(t, base+21+10+10+2, EvaluatePosition(gs, 0), "prisoner, lawyer per rich, lawyer")
	})

	t.Run("guards value their neighbourhood", func(t *testing.T) {
		gs := newTestState(t, 2)
		p := gs.Players[0]
		gs.DrawStack = nil
		p.Board.Yard[Cell{3, 5}] = prisoner(Red, NoTrait)
		p.Board.Yard[Cell{5, 5}] = prisoner(Red, NoTrait)
		base := EvaluatePosition(gs, 0)

		p.Board.Yard[Cell{4, 5}] = testTile(Guard, 0, NoTrait)
		p.Board.Guards = []Cell{{4, 5}}
		// round(10*2/4) = 5, plus 2 per guard
		require.Equal(t, base+7, EvaluatePosition(gs, 0))
	})
}

func TestFinalScore(t *testing.T) {
	gs := newTestState(t, 2)
	p := gs.Players[0]
	p.Coins = 3
	p.Board.Yard[Cell{3, 5}] = prisoner(Red, Rich)
	p.Board.Yard[Cell{5, 5}] = prisoner(Red, NoTrait)
	p.Board.Yard[Cell{4, 5}] = testTile(Guard, 0, NoTrait)
	p.Board.Guards = []Cell{{4, 5}}
	p.Staff[Secretary1] = testTile(Guard, 0, NoTrait)
	p.Staff[Lawyer1] = testTile(Guard, 0, NoTrait)
	p.Isolation = []*Tile{prisoner(Blue, NoTrait)}

	// 2 prisoners + 3 coins + 1 rich + 2 watched - 2 isolation
	require.Equal(t, 6, FinalScore(gs, 0))
	require.Equal(t, 6, EvaluateScore(gs, 0))
	require.Equal(t, 0, FinalScore(gs, 1))
}
