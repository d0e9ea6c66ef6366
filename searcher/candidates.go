package searcher

import (
	"prison/game"
)

// candidate builds the locally best instance of one action category for the
// current player. It reports false when the category has no legal instance.
func (m *Minimax) candidate(gs *game.GameState, kind game.Kind) (game.Action, bool) {
	actor := gs.Current
	p := gs.Players[actor]
	header := game.Header{Actor: actor, Valid: true}

	switch kind {
	case game.KindAddTileToBus:
		return bestBusPlacement(gs, actor)
	case game.KindMovePrisonerFromIsolation:
		top := p.IsolationTop()
		if top == nil || p.Coins < 1 {
			return nil, false
		}
		target, ok := game.BestCell(p.Board, top, p.MaxPrisonerTypes)
		if !ok {
			return nil, false
		}
		return game.MovePrisonerFromIsolation{Header: header, Target: target}, true
	case game.KindMoveEmployee:
		return m.bestByEvaluation(gs, actor, asActions(game.EmployeeMoves(p, actor, true)))
	case game.KindBuyPrisonerFromOtherIsolation:
		return m.bestByEvaluation(gs, actor, asActions(game.Purchases(gs, actor)))
	case game.KindFreePrisoner:
		if !game.CanFree(p) {
			return nil, false
		}
		return game.FreePrisoner{Header: header}, true
	case game.KindExpandPrisonGrid:
		return bestExpansion(p, actor)
	case game.KindTakeBus:
		var takes []game.Action
		for _, bus := range gs.Buses {
			if game.CanTakeBus(gs, actor, bus.ID) {
				takes = append(takes, game.TakeBus{Header: header, Bus: bus.ID})
			}
		}
		return m.bestByEvaluation(gs, actor, takes)
	}
	return nil, false
}

func asActions[T game.Action](in []T) []game.Action {
	out := make([]game.Action, len(in))
	for i, a := range in {
		out[i] = a
	}
	return out
}

// bestByEvaluation tries each option and keeps the one the actor's static evaluation
// likes most, first on ties.
func (m *Minimax) bestByEvaluation(gs *game.GameState, actor int, options []game.Action) (game.Action, bool) {
	var best game.Action
	bestScore := NegInf
	for _, a := range options {
		u := game.Apply(gs, a)
		score := m.evaluate(gs, actor)
		game.Revert(gs, u)
		if best == nil || score > bestScore {
			best, bestScore = a, score
		}
	}
	return best, best != nil
}

// bestBusPlacement puts the next tile on the bus the actor would most like to take.
func bestBusPlacement(gs *game.GameState, actor int) (game.Action, bool) {
	placements := game.BusPlacements(gs, actor)
	if len(placements) == 0 {
		return nil, false
	}
	p := gs.Players[actor]
	tile := gs.NextTile()
	best, bestAppeal := placements[0], NegInf
	for _, a := range placements {
		bus := gs.Buses[gs.BusIndex(a.Bus)]
		appeal := tileAppeal(p, tile)
		for _, t := range bus.Slots {
			if t != nil {
				appeal += tileAppeal(p, t)
			}
		}
		if appeal > bestAppeal {
			best, bestAppeal = a, appeal
		}
	}
	return best, true
}

// tileAppeal is a rough guess of how useful a tile is to a player.
func tileAppeal(p *game.Player, t *game.Tile) int {
	switch t.Kind {
	case game.Coin:
		return 2
	case game.Guard:
		return 1
	}
	colors := p.Board.Colors()
	switch {
	case colors[t.Color]:
		return 3
	case len(colors) < p.MaxPrisonerTypes:
		return 1
	}
	return -2
}

// bestExpansion picks the expansion that hugs the existing floor most tightly.
func bestExpansion(p *game.Player, actor int) (game.Action, bool) {
	var best game.Action
	bestFit := -1
	for _, a := range game.Expansions(p, actor) {
		if fit := game.ExpansionFit(p, a); fit > bestFit {
			best, bestFit = a, fit
		}
	}
	return best, best != nil
}
