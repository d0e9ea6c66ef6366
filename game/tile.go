package game

import "fmt"

type TileKind int

const (
	Prisoner TileKind = iota
	Coin
	Guard
)

func (k TileKind) String() string {
	switch k {
	case Prisoner:
		return "prisoner"
	case Coin:
		return "coin"
	case Guard:
		return "guard"
	}
	return fmt.Sprintf("TileKind(%d)", int(k))
}

// Color is the prisoner type. Only prisoner tiles carry a meaningful color.
type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Purple
	Orange
	Pink
	Brown
	NumColors int = iota
)

var colorNames = [...]string{"red", "blue", "green", "yellow", "purple", "orange", "pink", "brown"}

func (c Color) String() string {
	if c >= 0 && int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

type Trait int

const (
	NoTrait Trait = iota
	Male
	Female
	Old
	Rich
	Baby
)

var traitNames = [...]string{"none", "male", "female", "old", "rich", "baby"}

func (t Trait) String() string {
	if t >= 0 && int(t) < len(traitNames) {
		return traitNames[t]
	}
	return fmt.Sprintf("Trait(%d)", int(t))
}

// Tile is created once at setup and afterwards only moves between containers.
type Tile struct {
	ID     int
	Kind   TileKind
	Color  Color
	Trait  Trait
	Paired bool
}

// Breedable reports whether the tile can still pair with an opposite-sex neighbour.
func (t *Tile) Breedable() bool {
	return t.Kind == Prisoner && (t.Trait == Male || t.Trait == Female) && !t.Paired
}

func (t *Tile) IsPrisoner() bool {
	return t != nil && t.Kind == Prisoner
}

func (t *Tile) String() string {
	if t.Kind != Prisoner {
		return fmt.Sprintf("#%d %s", t.ID, t.Kind)
	}
	return fmt.Sprintf("#%d %s/%s", t.ID, t.Color, t.Trait)
}

func canBreed(a, b *Tile) bool {
	if !a.Breedable() || !b.Breedable() || a.Color != b.Color {
		return false
	}
	return a.Trait != b.Trait
}

func cloneTile(t *Tile) *Tile {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// cloneTiles keeps empty stacks nil so snapshots compare equal to live states.
func cloneTiles(tiles []*Tile) []*Tile {
	if len(tiles) == 0 {
		return nil
	}
	out := make([]*Tile, len(tiles))
	for i, t := range tiles {
		out[i] = cloneTile(t)
	}
	return out
}

func distinctColors(tiles []*Tile) int {
	seen := make(map[Color]bool)
	for _, t := range tiles {
		if t.Kind == Prisoner {
			seen[t.Color] = true
		}
	}
	return len(seen)
}
