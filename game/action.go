package game

import "fmt"

type Kind int

const (
	KindAddTileToBus Kind = iota
	KindMovePrisonerFromIsolation
	KindMoveEmployee
	KindBuyPrisonerFromOtherIsolation
	KindFreePrisoner
	KindExpandPrisonGrid
	KindTakeBus
	// KindLeaf marks a search result that only carries a score.
	KindLeaf Kind = -1
)

// Kinds lists the action categories in enumeration order. Search ties go to the
// earlier category.
var Kinds = [...]Kind{
	KindAddTileToBus,
	KindMovePrisonerFromIsolation,
	KindMoveEmployee,
	KindBuyPrisonerFromOtherIsolation,
	KindFreePrisoner,
	KindExpandPrisonGrid,
	KindTakeBus,
}

var kindNames = [...]string{
	"add-tile-to-bus",
	"move-prisoner-from-isolation",
	"move-employee",
	"buy-prisoner-from-other-isolation",
	"free-prisoner",
	"expand-prison-grid",
	"take-bus",
}

func (k Kind) String() string {
	if k == KindLeaf {
		return "leaf"
	}
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown action kind %q", s)
}

// Header is shared by every action: who acts, whether the action is a real candidate
// and the score search assigned to it.
type Header struct {
	Actor int
	Valid bool
	Score int
}

// Action is a closed set of variants. Values are never mutated after construction.
type Action interface {
	Kind() Kind
	Head() Header
	WithScore(score int) Action
	sealed()
}

type AddTileToBus struct {
	Header
	Bus  int // bus ID
	Slot int
}

type MovePrisonerFromIsolation struct {
	Header
	Target Cell
}

type MoveEmployee struct {
	Header
	From Post
	To   Post
}

// BuyPrisonerFromOtherIsolation places the bought prisoner at Target when Placed is
// set, otherwise it goes to the buyer's own isolation.
type BuyPrisonerFromOtherIsolation struct {
	Header
	Seller int
	Target Cell
	Placed bool
}

type FreePrisoner struct {
	Header
}

type ExpandPrisonGrid struct {
	Header
	Size     ExpansionSize
	Anchor   Cell
	Rotation Rotation
}

type TakeBus struct {
	Header
	Bus int // bus ID
}

type Leaf struct {
	Header
}

func (AddTileToBus) Kind() Kind                  { return KindAddTileToBus }
func (MovePrisonerFromIsolation) Kind() Kind     { return KindMovePrisonerFromIsolation }
func (MoveEmployee) Kind() Kind                  { return KindMoveEmployee }
func (BuyPrisonerFromOtherIsolation) Kind() Kind { return KindBuyPrisonerFromOtherIsolation }
func (FreePrisoner) Kind() Kind                  { return KindFreePrisoner }
func (ExpandPrisonGrid) Kind() Kind              { return KindExpandPrisonGrid }
func (TakeBus) Kind() Kind                       { return KindTakeBus }
func (Leaf) Kind() Kind                          { return KindLeaf }

func (a AddTileToBus) Head() Header                  { return a.Header }
func (a MovePrisonerFromIsolation) Head() Header     { return a.Header }
func (a MoveEmployee) Head() Header                  { return a.Header }
func (a BuyPrisonerFromOtherIsolation) Head() Header { return a.Header }
func (a FreePrisoner) Head() Header                  { return a.Header }
func (a ExpandPrisonGrid) Head() Header              { return a.Header }
func (a TakeBus) Head() Header                       { return a.Header }
func (a Leaf) Head() Header                          { return a.Header }

func (a AddTileToBus) WithScore(s int) Action                  { a.Score = s; return a }
func (a MovePrisonerFromIsolation) WithScore(s int) Action     { a.Score = s; return a }
func (a MoveEmployee) WithScore(s int) Action                  { a.Score = s; return a }
func (a BuyPrisonerFromOtherIsolation) WithScore(s int) Action { a.Score = s; return a }
func (a FreePrisoner) WithScore(s int) Action                  { a.Score = s; return a }
func (a ExpandPrisonGrid) WithScore(s int) Action              { a.Score = s; return a }
func (a TakeBus) WithScore(s int) Action                       { a.Score = s; return a }
func (a Leaf) WithScore(s int) Action                          { a.Score = s; return a }

func (AddTileToBus) sealed()                  {}
func (MovePrisonerFromIsolation) sealed()     {}
func (MoveEmployee) sealed()                  {}
func (BuyPrisonerFromOtherIsolation) sealed() {}
func (FreePrisoner) sealed()                  {}
func (ExpandPrisonGrid) sealed()              {}
func (TakeBus) sealed()                       {}
func (Leaf) sealed()                          {}

// Placeholder builds an invalid action of the given kind, used to carry a sentinel
// score for a category with no legal instance.
func Placeholder(k Kind, actor int, score int) Action {
	h := Header{Actor: actor, Score: score}
	switch k {
	case KindAddTileToBus:
		return AddTileToBus{Header: h}
	case KindMovePrisonerFromIsolation:
		return MovePrisonerFromIsolation{Header: h}
	case KindMoveEmployee:
		return MoveEmployee{Header: h}
	case KindBuyPrisonerFromOtherIsolation:
		return BuyPrisonerFromOtherIsolation{Header: h}
	case KindFreePrisoner:
		return FreePrisoner{Header: h}
	case KindExpandPrisonGrid:
		return ExpandPrisonGrid{Header: h}
	case KindTakeBus:
		return TakeBus{Header: h}
	}
	return Leaf{Header: h}
}

func Describe(a Action) string {
	h := a.Head()
	switch v := a.(type) {
	case AddTileToBus:
		return fmt.Sprintf("%s bus=%d slot=%d", v.Kind(), v.Bus, v.Slot)
	case MovePrisonerFromIsolation:
		return fmt.Sprintf("%s to=%v", v.Kind(), v.Target)
	case MoveEmployee:
		return fmt.Sprintf("%s %s%v -> %s%v", v.Kind(), v.From.Slot, v.From.Cell, v.To.Slot, v.To.Cell)
	case BuyPrisonerFromOtherIsolation:
		return fmt.Sprintf("%s seller=%d to=%v placed=%t", v.Kind(), v.Seller, v.Target, v.Placed)
	case ExpandPrisonGrid:
		return fmt.Sprintf("%s %s at=%v rot=%s", v.Kind(), v.Size, v.Anchor, v.Rotation)
	case TakeBus:
		return fmt.Sprintf("%s bus=%d", v.Kind(), v.Bus)
	}
	return fmt.Sprintf("%s score=%d", a.Kind(), h.Score)
}
