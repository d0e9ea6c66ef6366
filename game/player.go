package game

import (
	"fmt"

	"github.com/google/uuid"
)

type PlayerType int

const (
	Human PlayerType = iota
	Minimax
	Random
	Network
)

func (t PlayerType) String() string {
	switch t {
	case Human:
		return "human"
	case Minimax:
		return "minimax"
	case Random:
		return "random"
	case Network:
		return "network"
	}
	return fmt.Sprintf("PlayerType(%d)", int(t))
}

func ParsePlayerType(s string) (PlayerType, error) {
	for _, t := range []PlayerType{Human, Minimax, Random, Network} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown player type %q", s)
}

// StaffSlot names one of the five staff positions, or OnBoard for a guard standing
// on a yard cell.
type StaffSlot int

const (
	Janitor StaffSlot = iota
	Secretary1
	Secretary2
	Lawyer1
	Lawyer2
	OnBoard
)

const NumStaffSlots = int(OnBoard)

var slotNames = [...]string{"janitor", "secretary-1", "secretary-2", "lawyer-1", "lawyer-2", "board"}

func (s StaffSlot) String() string {
	if s >= 0 && int(s) < len(slotNames) {
		return slotNames[s]
	}
	return fmt.Sprintf("StaffSlot(%d)", int(s))
}

// Post is where an employee stands: a staff slot, or a yard cell when Slot is OnBoard.
type Post struct {
	Slot StaffSlot
	Cell Cell
}

func StaffPost(s StaffSlot) Post { return Post{Slot: s} }

func BoardPost(c Cell) Post { return Post{Slot: OnBoard, Cell: c} }

const (
	StartingCoins      = 1
	StartingExpansions = 2
	StartingTypeCap    = 3
)

type Player struct {
	ID               uuid.UUID
	Name             string
	Type             PlayerType
	Board            *Board
	Isolation        []*Tile // top is the last element
	TakenBus         *Bus
	Coins            int
	Staff            [NumStaffSlots]*Tile
	BigExpansions    int
	SmallExpansions  int
	MaxPrisonerTypes int
	EmployeeMoved    bool // staff may be reshuffled once per round
	Score            int
}

func NewPlayer(name string, typ PlayerType) *Player {
	return &Player{
		ID:               uuid.New(),
		Name:             name,
		Type:             typ,
		Board:            NewBoard(),
		Coins:            StartingCoins,
		BigExpansions:    StartingExpansions,
		SmallExpansions:  StartingExpansions,
		MaxPrisonerTypes: StartingTypeCap,
	}
}

func (p *Player) HasJanitor() bool {
	return p.Staff[Janitor] != nil
}

func (p *Player) Secretaries() int {
	return p.countStaff(Secretary1, Secretary2)
}

func (p *Player) Lawyers() int {
	return p.countStaff(Lawyer1, Lawyer2)
}

func (p *Player) countStaff(slots ...StaffSlot) int {
	n := 0
	for _, s := range slots {
		if p.Staff[s] != nil {
			n++
		}
	}
	return n
}

// IsolationTop returns the prisoner that would leave isolation next.
func (p *Player) IsolationTop() *Tile {
	if len(p.Isolation) == 0 {
		return nil
	}
	return p.Isolation[len(p.Isolation)-1]
}

func (p *Player) employeeAt(post Post) *Tile {
	if post.Slot == OnBoard {
		if t := p.Board.Yard[post.Cell]; t != nil && t.Kind == Guard {
			return t
		}
		return nil
	}
	if post.Slot < 0 || post.Slot >= OnBoard {
		return nil
	}
	return p.Staff[post.Slot]
}

func (p *Player) clone() *Player {
	c := *p
	c.Board = p.Board.clone()
	c.Isolation = cloneTiles(p.Isolation)
	c.TakenBus = p.TakenBus.clone()
	for i, t := range p.Staff {
		c.Staff[i] = cloneTile(t)
	}
	return &c
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Type)
}
