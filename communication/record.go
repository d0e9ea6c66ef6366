package communication

import (
	"fmt"

	"prison/game"
)

// ActionRecord is the wire form of a committed action. Hash is the sender's state
// hash after the commit, zero when unknown.
type ActionRecord struct {
	Kind     string             `json:"kind"`
	Actor    int                `json:"actor"`
	Bus      int                `json:"bus,omitempty"`
	Slot     int                `json:"slot,omitempty"`
	Target   game.Cell          `json:"target,omitempty"`
	From     game.Post          `json:"from,omitempty"`
	To       game.Post          `json:"to,omitempty"`
	Seller   int                `json:"seller,omitempty"`
	Placed   bool               `json:"placed,omitempty"`
	Size     game.ExpansionSize `json:"size,omitempty"`
	Rotation game.Rotation      `json:"rotation,omitempty"`
	Hash     game.StateHash     `json:"hash,omitempty"`
}

func Encode(a game.Action) (ActionRecord, error) {
	rec := ActionRecord{Kind: a.Kind().String(), Actor: a.Head().Actor}
	switch v := a.(type) {
	case game.AddTileToBus:
		rec.Bus, rec.Slot = v.Bus, v.Slot
	case game.MovePrisonerFromIsolation:
		rec.Target = v.Target
	case game.MoveEmployee:
		rec.From, rec.To = v.From, v.To
	case game.BuyPrisonerFromOtherIsolation:
		rec.Seller, rec.Target, rec.Placed = v.Seller, v.Target, v.Placed
	case game.FreePrisoner:
	case game.ExpandPrisonGrid:
		rec.Size, rec.Target, rec.Rotation = v.Size, v.Anchor, v.Rotation
	case game.TakeBus:
		rec.Bus = v.Bus
	default:
		return ActionRecord{}, fmt.Errorf("cannot send %s", a.Kind())
	}
	return rec, nil
}

// Decode rebuilds the action. Whether it is legal is up to the receiving game.
func (rec ActionRecord) Decode() (game.Action, error) {
	kind, err := game.ParseKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	h := game.Header{Actor: rec.Actor, Valid: true}
	switch kind {
	case game.KindAddTileToBus:
		return game.AddTileToBus{Header: h, Bus: rec.Bus, Slot: rec.Slot}, nil
	case game.KindMovePrisonerFromIsolation:
		return game.MovePrisonerFromIsolation{Header: h, Target: rec.Target}, nil
	case game.KindMoveEmployee:
		return game.MoveEmployee{Header: h, From: rec.From, To: rec.To}, nil
	case game.KindBuyPrisonerFromOtherIsolation:
		return game.BuyPrisonerFromOtherIsolation{Header: h, Seller: rec.Seller, Target: rec.Target, Placed: rec.Placed}, nil
	case game.KindFreePrisoner:
		return game.FreePrisoner{Header: h}, nil
	case game.KindExpandPrisonGrid:
		return game.ExpandPrisonGrid{Header: h, Size: rec.Size, Anchor: rec.Target, Rotation: rec.Rotation}, nil
	default:
		return game.TakeBus{Header: h, Bus: rec.Bus}, nil
	}
}
