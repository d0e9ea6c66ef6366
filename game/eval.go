package game

import "math"

// EvaluatePosition is the search heuristic. It weighs the yard, staff synergies and
// isolation pressure from the given player's perspective. It is pure: the same state
// always yields the same score.
func EvaluatePosition(gs *GameState, player int) int {
	p := gs.Players[player]
	b := p.Board

	score := 10 * b.Prisoners()
	for _, c := range b.Guards {
		score += guardQuality(b, c)
	}
	score += 10 * p.Secretaries() * p.Coins
	score += 10 * p.Lawyers() * b.RichPrisoners()
	score -= isolationPenalty(p) * distinctColors(p.Isolation)

	// Coins only matter while there is still time to spend them
	if len(gs.DrawStack) > 2 {
		score += 2 * p.Coins
	}
	if p.HasJanitor() {
		score += 2
	}
	score += 2 * p.Lawyers()
	score += p.Secretaries()
	score += 2 * len(b.Guards)
	score -= 5 * len(p.Isolation)
	score += int(math.Round(0.2 * float64(b.FloorCells())))
	return score
}

// guardQuality scales a guard's worth by how many of its four neighbours hold prisoners.
func guardQuality(b *Board, c Cell) int {
	return int(math.Round(10 * float64(b.AdjacentPrisoners(c)) / 4))
}

func isolationPenalty(p *Player) int {
	if p.HasJanitor() {
		return 10
	}
	return 20
}

// FinalScore is the end-of-game tally used to decide the winner.
func FinalScore(gs *GameState, player int) int {
	p := gs.Players[player]
	b := p.Board

	score := b.Prisoners()
	score += p.Secretaries() * p.Coins
	score += p.Lawyers() * b.RichPrisoners()
	for _, c := range b.Guards {
		score += b.AdjacentPrisoners(c)
	}
	penalty := 2
	if p.HasJanitor() {
		penalty = 1
	}
	score -= penalty * distinctColors(p.Isolation)
	return score
}

// EvaluateScore ranks positions by the final tally alone.
func EvaluateScore(gs *GameState, player int) int {
	return FinalScore(gs, player)
}
