package gamemaster

import (
	"errors"

	"prison/game"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History keeps full snapshots of committed states. It is unrelated to the search's
// in-place undo journal and far coarser.
type History struct {
	snapshots []*game.GameState
	cursor    int // index of the current snapshot
}

func NewHistory() *History {
	return &History{cursor: -1}
}

// Save records a copy of gs as the newest state and forgets anything undone.
func (h *History) Save(gs *game.GameState) {
	h.snapshots = append(h.snapshots[:h.cursor+1], gs.Clone())
	h.cursor = len(h.snapshots) - 1
}

// Undo steps back one committed action and returns a copy of that state.
func (h *History) Undo() (*game.GameState, error) {
	if h.cursor <= 0 {
		return nil, ErrNothingToUndo
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), nil
}

func (h *History) Redo() (*game.GameState, error) {
	if h.cursor >= len(h.snapshots)-1 {
		return nil, ErrNothingToRedo
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), nil
}

func (h *History) Len() int {
	return len(h.snapshots)
}
