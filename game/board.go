package game

const (
	BoardWidth  = 12
	BoardHeight = 12
)

type Cell struct {
	X int
	Y int
}

// neighbours are visited in a fixed order so cascades are deterministic.
var directions = [4]Cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (c Cell) Add(d Cell) Cell {
	return Cell{c.X + d.X, c.Y + d.Y}
}

func (c Cell) Neighbours() [4]Cell {
	var out [4]Cell
	for i, d := range directions {
		out[i] = c.Add(d)
	}
	return out
}

// Board is a player's yard of placed tiles over a floor plan. Floor only holds true
// entries, and every occupied yard cell is floor.
type Board struct {
	Width  int
	Height int
	Yard   map[Cell]*Tile
	Floor  map[Cell]bool
	Guards []Cell // yard cells holding guard tiles, in placement order
}

func NewBoard() *Board {
	b := &Board{
		Width:  BoardWidth,
		Height: BoardHeight,
		Yard:   make(map[Cell]*Tile),
		Floor:  make(map[Cell]bool),
	}
	// Starting prison: a 5x2 block in the middle of the grid
	for y := 5; y <= 6; y++ {
		for x := 3; x <= 7; x++ {
			b.Floor[Cell{x, y}] = true
		}
	}
	return b
}

func (b *Board) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.Width && c.Y < b.Height
}

func (b *Board) IsFloor(c Cell) bool {
	return b.Floor[c]
}

func (b *Board) IsEmpty(c Cell) bool {
	return b.Yard[c] == nil
}

func (b *Board) At(c Cell) *Tile {
	return b.Yard[c]
}

func (b *Board) FloorCells() int {
	return len(b.Floor)
}

func (b *Board) Prisoners() int {
	n := 0
	for _, t := range b.Yard {
		if t.Kind == Prisoner {
			n++
		}
	}
	return n
}

func (b *Board) RichPrisoners() int {
	n := 0
	for _, t := range b.Yard {
		if t.Kind == Prisoner && t.Trait == Rich {
			n++
		}
	}
	return n
}

func (b *Board) CountColor(color Color) int {
	n := 0
	for _, t := range b.Yard {
		if t.Kind == Prisoner && t.Color == color {
			n++
		}
	}
	return n
}

// Colors returns the set of prisoner colors present in the yard.
func (b *Board) Colors() map[Color]bool {
	colors := make(map[Color]bool)
	for _, t := range b.Yard {
		if t.Kind == Prisoner {
			colors[t.Color] = true
		}
	}
	return colors
}

func (b *Board) AdjacentPrisoners(c Cell) int {
	n := 0
	for _, nb := range c.Neighbours() {
		if b.Yard[nb].IsPrisoner() {
			n++
		}
	}
	return n
}

func (b *Board) adjacentSameColor(c Cell, color Color) int {
	n := 0
	for _, nb := range c.Neighbours() {
		if t := b.Yard[nb]; t.IsPrisoner() && t.Color == color {
			n++
		}
	}
	return n
}

// cells yields every in-bounds cell in scan order (row by row).
func (b *Board) cells(yield func(Cell) bool) {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if !yield(Cell{x, y}) {
				return
			}
		}
	}
}

func (b *Board) clone() *Board {
	c := &Board{
		Width:  b.Width,
		Height: b.Height,
		Yard:   make(map[Cell]*Tile, len(b.Yard)),
		Floor:  make(map[Cell]bool, len(b.Floor)),
	}
	for k, t := range b.Yard {
		c.Yard[k] = cloneTile(t)
	}
	for k, v := range b.Floor {
		c.Floor[k] = v
	}
	if len(b.Guards) > 0 {
		c.Guards = append([]Cell(nil), b.Guards...)
	}
	return c
}
