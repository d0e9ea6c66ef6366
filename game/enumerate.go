package game

// LegalActions lists every legal action of the current player. Purchases use the best
// cell for the bought prisoner, so each seller contributes one action.
func LegalActions(gs *GameState) []Action {
	if gs.IsOver() {
		return nil
	}
	actor := gs.Current
	p := gs.Players[actor]
	h := Header{Actor: actor, Valid: true}
	var out []Action

	for _, a := range BusPlacements(gs, actor) {
		out = append(out, a)
	}
	if top := p.IsolationTop(); top != nil && p.Coins >= 1 {
		for c := range p.Board.cells {
			if CanPlacePrisoner(p.Board, top, c, p.MaxPrisonerTypes) {
				out = append(out, MovePrisonerFromIsolation{Header: h, Target: c})
			}
		}
	}
	for _, a := range EmployeeMoves(p, actor, false) {
		out = append(out, a)
	}
	for _, a := range Purchases(gs, actor) {
		out = append(out, a)
	}
	if CanFree(p) {
		out = append(out, FreePrisoner{Header: h})
	}
	for _, a := range Expansions(p, actor) {
		out = append(out, a)
	}
	for _, bus := range gs.Buses {
		if CanTakeBus(gs, actor, bus.ID) {
			out = append(out, TakeBus{Header: h, Bus: bus.ID})
		}
	}
	return out
}

// BusPlacements lists every bus slot the next drawn tile could go to.
func BusPlacements(gs *GameState, actor int) []AddTileToBus {
	var out []AddTileToBus
	for _, bus := range gs.Buses {
		for slot := 0; slot < BusSlots; slot++ {
			if CanAddToBus(gs, actor, bus.ID, slot) {
				out = append(out, AddTileToBus{Header: Header{Actor: actor, Valid: true}, Bus: bus.ID, Slot: slot})
			}
		}
	}
	return out
}

// EmployeeMoves lists relocations from every occupied post to every free one. When
// compact is set, the only board destination considered is the best guard cell.
func EmployeeMoves(p *Player, actor int, compact bool) []MoveEmployee {
	var sources, targets []Post
	for s := Janitor; s < OnBoard; s++ {
		if p.Staff[s] != nil {
			sources = append(sources, StaffPost(s))
		} else {
			targets = append(targets, StaffPost(s))
		}
	}
	for _, c := range p.Board.Guards {
		sources = append(sources, BoardPost(c))
	}
	if len(sources) == 0 {
		return nil
	}
	if compact {
		if c, ok := BestGuardCell(p.Board); ok {
			targets = append(targets, BoardPost(c))
		}
	} else {
		for c := range p.Board.cells {
			if CanPlaceGuard(p.Board, c) {
				targets = append(targets, BoardPost(c))
			}
		}
	}

	var out []MoveEmployee
	for _, from := range sources {
		for _, to := range targets {
			if CanMoveEmployee(p, from, to) {
				out = append(out, MoveEmployee{Header: Header{Actor: actor, Valid: true}, From: from, To: to})
			}
		}
	}
	return out
}

// Purchases offers one purchase per seller, placing the prisoner at the buyer's best
// cell when one is legal.
func Purchases(gs *GameState, actor int) []BuyPrisonerFromOtherIsolation {
	p := gs.Players[actor]
	var out []BuyPrisonerFromOtherIsolation
	for seller := range gs.Players {
		if !CanBuy(gs, actor, seller) {
			continue
		}
		target, ok := BestCell(p.Board, gs.Players[seller].IsolationTop(), p.MaxPrisonerTypes)
		out = append(out, BuyPrisonerFromOtherIsolation{
			Header: Header{Actor: actor, Valid: true},
			Seller: seller,
			Target: target,
			Placed: ok,
		})
	}
	return out
}

// Expansions lists every legal expansion, big pieces first.
func Expansions(p *Player, actor int) []ExpandPrisonGrid {
	var out []ExpandPrisonGrid
	for _, size := range []ExpansionSize{Big, Small} {
		for c := range p.Board.cells {
			for _, rot := range Rotations {
				if CanExpand(p, size, c, rot) {
					out = append(out, ExpandPrisonGrid{
						Header:   Header{Actor: actor, Valid: true},
						Size:     size,
						Anchor:   c,
						Rotation: rot,
					})
				}
			}
		}
	}
	return out
}

// ExpansionFit scores how snugly an expansion joins the existing floor.
func ExpansionFit(p *Player, a ExpandPrisonGrid) int {
	return expansionFit(p.Board, Footprint(a.Size, a.Anchor, a.Rotation))
}
