// internal/game/view.go
//
// Render-side projections of a State. Nothing here is stored; everything is
// recomputed from the live board on each request.

package game

// Overlay colors for closed tiles.
const (
	SelectedColor = "green"
	FocusedColor  = "grey"
	UnopenedColor = "white"
)

// DisplayColor resolves what a tile shows. The true color is only ever
// returned for opened tiles.
func DisplayColor(t Tile, selected, focused bool) string {
	switch {
	case t.Opened():
		return t.Color.Hex()
	case selected:
		return SelectedColor
	case focused:
		return FocusedColor
	}
	return UnopenedColor
}

// Score is opened vs total tiles of one team color.
type Score struct {
	Opened int `json:"opened"`
	Total  int `json:"total"`
}

// Scores returns the red and blue counters.
func (s State) Scores() (red Score, blue Score) {
	red = Score{Opened: s.Board.CountOpened(Red), Total: s.Board.Count(Red)}
	blue = Score{Opened: s.Board.CountOpened(Blue), Total: s.Board.Count(Blue)}
	return red, blue
}

// TileView is a tile as sent to the browser.
type TileView struct {
	Word    string    `json:"word"`
	State   TileState `json:"state"`
	Display string    `json:"display"`
	Color   Color     `json:"color,omitempty"` // set only when opened
}

// BoardView is the JSON payload for one render.
type BoardView struct {
	ID           string       `json:"id"`
	Tiles        [][]TileView `json:"tiles"`
	Selected     *Coord       `json:"selected"`
	SelectedWord string       `json:"selectedWord,omitempty"`
	Focused      *Coord       `json:"focused"`
	Red          Score        `json:"red"`
	Blue         Score        `json:"blue"`
}

// NewView projects s for rendering.
func NewView(s State) BoardView {
	v := BoardView{
		ID:       s.Board.ID,
		Tiles:    make([][]TileView, Rows),
		Selected: s.Selected,
		Focused:  s.Focused,
	}
	for i := range s.Board.Tiles {
		v.Tiles[i] = make([]TileView, Cols)
		for j, t := range s.Board.Tiles[i] {
			c := Coord{Row: i, Col: j}
			tv := TileView{
				Word:    t.Word,
				State:   t.State,
				Display: DisplayColor(t, s.IsSelected(c), s.IsFocused(c)),
			}
			if t.Opened() {
				tv.Color = t.Color
			}
			v.Tiles[i][j] = tv
		}
	}
	if s.Selected != nil {
		v.SelectedWord = s.Board.At(*s.Selected).Word
	}
	v.Red, v.Blue = s.Scores()
	return v
}
