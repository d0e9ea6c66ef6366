package player

import (
	"io"
	"strings"
	"testing"

	"prison/game"

	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState([]*game.Player{
		game.NewPlayer("a", game.Random),
		game.NewPlayer("b", game.Random),
	}, 3)
	require.NoError(t, err)
	return gs
}

func TestRandomPlaysLegalMoves(t *testing.T) {
	gs := newState(t)
	r := NewRandom(1)
	for step := 0; step < 50 && !gs.IsOver(); step++ {
		action, metric := r.FindMove(gs)
		require.True(t, action.Head().Valid)
		require.Positive(t, metric.Nodes)
		require.NoError(t, game.Commit(gs, action), "step %d", step)
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a, _ := NewRandom(9).FindMove(newState(t))
	b, _ := NewRandom(9).FindMove(newState(t))
	require.Equal(t, a, b)
}

func TestRandomWithoutMoves(t *testing.T) {
	gs := newState(t)
	gs.DrawStack, gs.FinalStack = nil, nil
	require.True(t, gs.IsOver())

	action, _ := NewRandom(1).FindMove(gs)
	require.False(t, action.Head().Valid)
	require.Equal(t, game.KindLeaf, action.Kind())
}

func TestConsole(t *testing.T) {
	gs := newState(t)
	actions := game.LegalActions(gs)
	require.Greater(t, len(actions), 1)

	t.Run("retries until a valid number", func(t *testing.T) {
		var out strings.Builder
		c := NewConsole(strings.NewReader("x\n0\n2\n"), &out)
		action, metric := c.FindMove(gs)
		require.Equal(t, actions[1], action)
		require.Equal(t, len(actions), metric.Nodes)
		require.Equal(t, 2, strings.Count(out.String(), "pick a number"))
		require.Contains(t, out.String(), game.Describe(actions[0]))
	})

	t.Run("closed input gives up", func(t *testing.T) {
		c := NewConsole(strings.NewReader(""), io.Discard)
		action, _ := c.FindMove(gs)
		require.Equal(t, game.KindLeaf, action.Kind())
	})
}
