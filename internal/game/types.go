// internal/game/types.go
//
// Core type definitions for a Codenames board.
// Defines:
//   - Color: the hidden team assignment of a tile.
//   - TileState: whether a tile's color has been revealed.
//   - Tile, Coord, Board: the 5x5 grid and how cells are addressed.

package game

const (
	Rows = 5
	Cols = 5
	Size = Rows * Cols

	RedCount   = 8
	BlueCount  = 8
	BlackCount = 1
	// WhiteCount is what remains once the swing tile is assigned.
	WhiteCount = Size - RedCount - BlueCount - BlackCount - 1
)

// Color is the hidden affiliation of a tile.
type Color string

const (
	// ColorUnassigned marks a tile whose color has not been zipped in yet.
	// It is never shown to players and is distinct from White.
	ColorUnassigned Color = ""
	White           Color = "white"
	Red             Color = "red"
	Blue            Color = "blue"
	Black           Color = "black"
)

// Hex returns the palette color used when a tile is opened.
func (c Color) Hex() string {
	switch c {
	case Red:
		return "#BF3131"
	case Blue:
		return "#86B6F6"
	case Black:
		return "#EEE2DE"
	case White:
		return "#FEFAE0"
	}
	return UnopenedColor
}

// TileState is the persisted visibility of a tile.
// Selected and focused are UI overlays tracked on State, not here.
type TileState string

const (
	StateDefault TileState = "default"
	StateOpened  TileState = "opened"
)

// Tile is one cell on the board.
type Tile struct {
	Word  string
	Color Color
	State TileState
}

// Opened reports whether the tile's true color is visible.
func (t Tile) Opened() bool { return t.State == StateOpened }

// Coord addresses a cell, 0-indexed.
type Coord struct {
	Row int `json:"row" schema:"row,required"`
	Col int `json:"col" schema:"col,required"`
}

// InBounds reports whether c lies on a Rows x Cols board.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Board is a full 5x5 arrangement for one game.
// Tiles is an array, so assigning a Board copies every tile.
type Board struct {
	ID    string
	Tiles [Rows][Cols]Tile
}

// At returns the tile at c. c must be in bounds.
func (b Board) At(c Coord) Tile { return b.Tiles[c.Row][c.Col] }

// Count returns how many tiles carry color c.
func (b Board) Count(c Color) int {
	n := 0
	for _, row := range b.Tiles {
		for _, t := range row {
			if t.Color == c {
				n++
			}
		}
	}
	return n
}

// CountOpened returns how many opened tiles carry color c.
func (b Board) CountOpened(c Color) int {
	n := 0
	for _, row := range b.Tiles {
		for _, t := range row {
			if t.Color == c && t.Opened() {
				n++
			}
		}
	}
	return n
}

// SwingColor reports which of Red/Blue received the extra tile.
func (b Board) SwingColor() Color {
	if b.Count(Red) > b.Count(Blue) {
		return Red
	}
	return Blue
}
