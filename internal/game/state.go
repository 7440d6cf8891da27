// internal/game/state.go
//
// Board state machine.
// A State is a Board plus the transient UI overlay (selected and focused
// cells). Every transition is a method on a State value that returns a new
// State; the receiver is left as it was.
//
// Tile lifecycle: default -> opened. Only HideAll and NewGame move a tile
// back to default.

package game

// State is one session's board and selection.
type State struct {
	Board    Board
	Selected *Coord
	Focused  *Coord
}

// NewState wraps a freshly generated board with an empty selection.
func NewState(b Board) State {
	return State{Board: b}
}

func ptr(c Coord) *Coord { return &c }

func same(p *Coord, c Coord) bool { return p != nil && *p == c }

// IsSelected reports whether c is the selected cell.
func (s State) IsSelected(c Coord) bool { return same(s.Selected, c) }

// IsFocused reports whether c is the focused (hovered) cell.
func (s State) IsFocused(c Coord) bool { return same(s.Focused, c) }

// locked reports whether hover events on c are ignored.
func (s State) locked(c Coord) bool {
	return !c.InBounds() || s.Board.At(c).Opened() || s.IsSelected(c)
}

// HoverEnter focuses c unless it is opened or selected.
func (s State) HoverEnter(c Coord) State {
	if s.locked(c) {
		return s
	}
	s.Focused = ptr(c)
	return s
}

// HoverLeave clears focus unless c is opened or selected.
func (s State) HoverLeave(c Coord) State {
	if s.locked(c) {
		return s
	}
	s.Focused = nil
	return s
}

// Click selects c, or deselects it when c is already selected.
// Clicking an opened tile does nothing.
func (s State) Click(c Coord) State {
	if !c.InBounds() || s.Board.At(c).Opened() {
		return s
	}
	if s.IsSelected(c) {
		s.Selected = nil
		return s
	}
	s.Selected = ptr(c)
	return s
}

// ConfirmOpen opens the selected tile and clears the selection.
func (s State) ConfirmOpen() State {
	if s.Selected == nil {
		return s
	}
	c := *s.Selected
	s.Board.Tiles[c.Row][c.Col].State = StateOpened
	s.Selected = nil
	return s
}

// RevealAll opens every tile.
func (s State) RevealAll() State {
	s.Board = s.Board.withState(StateOpened)
	return s
}

// HideAll closes every tile, including ones opened earlier.
func (s State) HideAll() State {
	s.Board = s.Board.withState(StateDefault)
	return s
}

// NewGame replaces the board with one from src and clears the overlay.
func (s State) NewGame(src BoardSource) (State, error) {
	b, err := src.NewBoard()
	if err != nil {
		return s, err
	}
	return NewState(b), nil
}

func (b Board) withState(st TileState) Board {
	for i := range b.Tiles {
		for j := range b.Tiles[i] {
			b.Tiles[i][j].State = st
		}
	}
	return b
}

// Action names a user intent accepted by Apply.
type Action string

const (
	ActionHoverEnter Action = "hover_enter"
	ActionHoverLeave Action = "hover_leave"
	ActionClick      Action = "click"
	ActionOpen       Action = "open"
	ActionReveal     Action = "reveal"
	ActionHide       Action = "hide"
	ActionNew        Action = "new"
)

// NeedsCoord reports whether the action targets a specific cell.
func (a Action) NeedsCoord() bool {
	switch a {
	case ActionHoverEnter, ActionHoverLeave, ActionClick:
		return true
	}
	return false
}

// Apply dispatches a to the matching transition.
// c is ignored by actions that do not target a cell.
func Apply(s State, a Action, c Coord, src BoardSource) (State, error) {
	switch a {
	case ActionHoverEnter:
		return s.HoverEnter(c), nil
	case ActionHoverLeave:
		return s.HoverLeave(c), nil
	case ActionClick:
		return s.Click(c), nil
	case ActionOpen:
		return s.ConfirmOpen(), nil
	case ActionReveal:
		return s.RevealAll(), nil
	case ActionHide:
		return s.HideAll(), nil
	case ActionNew:
		return s.NewGame(src)
	}
	return s, ErrUnknownAction
}
