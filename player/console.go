package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"prison/experiments/metrics"
	"prison/game"
)

// Console lets a person pick moves from a numbered list of legal actions.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// FindMove blocks until a valid choice is entered. Closed input yields a leaf.
func (c *Console) FindMove(gs *game.GameState) (game.Action, metrics.SearchMetric) {
	start := time.Now()
	leaf := game.Leaf{Header: game.Header{Actor: gs.Current}}
	actions := game.LegalActions(gs)
	metric := metrics.SearchMetric{Nodes: len(actions)}
	if len(actions) == 0 {
		return leaf, metric
	}

	p := gs.CurrentPlayer()
	fmt.Fprintf(c.out, "%s to move: round %d, %d coins, %d in isolation, score %d\n",
		p.Name, gs.Round+1, p.Coins, len(p.Isolation), game.FinalScore(gs, gs.Current))
	for i, a := range actions {
		fmt.Fprintf(c.out, "%3d  %s\n", i+1, game.Describe(a))
	}
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			metric.Duration = time.Since(start)
			return leaf, metric
		}
		n, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err == nil && n >= 1 && n <= len(actions) {
			metric.Duration = time.Since(start)
			return actions[n-1], metric
		}
		fmt.Fprintf(c.out, "pick a number from 1 to %d\n", len(actions))
	}
}
