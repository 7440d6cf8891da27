package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codenames/internal/seq"
)

func newTestState(t *testing.T) (State, *Generator) {
	t.Helper()
	g := NewGenerator(wordList(40), seq.New(seq.DefaultSeed), rand.New(rand.NewPCG(7, 8)))
	b, err := g.NewBoard()
	require.NoError(t, err)
	return NewState(b), g
}

type failingSource struct{}

func (failingSource) NewBoard() (Board, error) { return Board{}, errors.New("boom") }

func allInState(b Board, st TileState) bool {
	for _, row := range b.Tiles {
		for _, tile := range row {
			if tile.State != st {
				return false
			}
		}
	}
	return true
}

func TestClick_SelectAndDeselect(t *testing.T) {
	s, _ := newTestState(t)
	c := Coord{0, 0}

	s = s.Click(c)
	require.NotNil(t, s.Selected)
	assert.Equal(t, c, *s.Selected)

	s = s.Click(c)
	assert.Nil(t, s.Selected)
	assert.Equal(t, StateDefault, s.Board.At(c).State)
}

func TestClick_MovesSelection(t *testing.T) {
	s, _ := newTestState(t)
	s = s.Click(Coord{0, 0}).Click(Coord{1, 1})
	require.NotNil(t, s.Selected)
	assert.Equal(t, Coord{1, 1}, *s.Selected)
}

func TestConfirmOpen(t *testing.T) {
	s, _ := newTestState(t)
	c := Coord{2, 3}

	s = s.Click(c).ConfirmOpen()
	assert.Equal(t, StateOpened, s.Board.At(c).State)
	assert.Nil(t, s.Selected)

	again := s.Click(c)
	assert.Equal(t, s, again)
}

func TestConfirmOpen_NoSelection(t *testing.T) {
	s, _ := newTestState(t)
	assert.Equal(t, s, s.ConfirmOpen())
}

func TestOpenedTileIgnoresEverything(t *testing.T) {
	s, _ := newTestState(t)
	opened := Coord{1, 2}
	s = s.Click(opened).ConfirmOpen()
	s = s.Click(Coord{4, 4}).HoverEnter(Coord{3, 3})

	for _, next := range []State{s.Click(opened), s.HoverEnter(opened), s.HoverLeave(opened)} {
		assert.Equal(t, s, next)
	}
}

func TestHover(t *testing.T) {
	s, _ := newTestState(t)
	c := Coord{3, 1}

	s = s.HoverEnter(c)
	require.NotNil(t, s.Focused)
	assert.Equal(t, c, *s.Focused)

	s = s.HoverEnter(Coord{3, 2})
	assert.Equal(t, Coord{3, 2}, *s.Focused)

	s = s.HoverLeave(Coord{3, 2})
	assert.Nil(t, s.Focused)
}

func TestHover_SelectedIgnored(t *testing.T) {
	s, _ := newTestState(t)
	c := Coord{0, 4}
	s = s.HoverEnter(Coord{1, 1}).Click(c)

	assert.Equal(t, s, s.HoverEnter(c))
	assert.Equal(t, s, s.HoverLeave(c))
}

func TestOutOfBoundsIsNoop(t *testing.T) {
	s, _ := newTestState(t)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {Rows, 0}, {0, Cols}} {
		assert.Equal(t, s, s.Click(c))
		assert.Equal(t, s, s.HoverEnter(c))
		assert.Equal(t, s, s.HoverLeave(c))
	}
}

func TestRevealAndHideIdempotent(t *testing.T) {
	s, _ := newTestState(t)

	r1 := s.RevealAll()
	r2 := r1.RevealAll()
	assert.True(t, allInState(r1.Board, StateOpened))
	assert.Equal(t, r1, r2)

	h1 := r2.HideAll()
	h2 := h1.HideAll()
	assert.True(t, allInState(h1.Board, StateDefault))
	assert.Equal(t, h1, h2)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s, _ := newTestState(t)
	before := s
	_ = s.Click(Coord{2, 2}).ConfirmOpen()
	_ = s.RevealAll()
	assert.Equal(t, before, s)
	assert.True(t, allInState(s.Board, StateDefault))
}

func TestSelectionPointerNotShared(t *testing.T) {
	s, _ := newTestState(t)
	a := s.Click(Coord{1, 1})
	b := a.Click(Coord{2, 2})
	assert.Equal(t, Coord{1, 1}, *a.Selected)
	assert.Equal(t, Coord{2, 2}, *b.Selected)
}

func TestNewGameAfterReveal(t *testing.T) {
	s, g := newTestState(t)
	s = s.HoverEnter(Coord{0, 1}).Click(Coord{0, 0}).RevealAll()
	old := s

	next, err := s.NewGame(g)
	require.NoError(t, err)
	assert.Nil(t, next.Selected)
	assert.Nil(t, next.Focused)
	assert.True(t, allInState(next.Board, StateDefault))
	assert.NotEqual(t, old.Board.ID, next.Board.ID)
	assert.True(t, allInState(old.Board, StateOpened))
}

func TestNewGame_Error(t *testing.T) {
	s, _ := newTestState(t)
	next, err := s.NewGame(failingSource{})
	assert.Error(t, err)
	assert.Equal(t, s, next)
}

func TestApply(t *testing.T) {
	s, g := newTestState(t)
	c := Coord{4, 0}

	s, err := Apply(s, ActionClick, c, g)
	require.NoError(t, err)
	s, err = Apply(s, ActionOpen, Coord{}, g)
	require.NoError(t, err)
	assert.True(t, s.Board.At(c).Opened())

	_, err = Apply(s, Action("explode"), c, g)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAction_NeedsCoord(t *testing.T) {
	assert.True(t, ActionClick.NeedsCoord())
	assert.True(t, ActionHoverEnter.NeedsCoord())
	assert.False(t, ActionReveal.NeedsCoord())
	assert.False(t, ActionNew.NeedsCoord())
}

func openedCount(b Board) int {
	n := 0
	for _, row := range b.Tiles {
		for _, tile := range row {
			if tile.Opened() {
				n++
			}
		}
	}
	return n
}

func TestRandomWalkKeepsInvariants(t *testing.T) {
	s, g := newTestState(t)
	r := rand.New(rand.NewPCG(9, 10))
	actions := []Action{ActionHoverEnter, ActionHoverLeave, ActionClick, ActionOpen, ActionReveal, ActionHide}
	for range 2000 {
		a := actions[r.IntN(len(actions))]
		c := Coord{r.IntN(Rows), r.IntN(Cols)}
		before := openedCount(s.Board)

		next, err := Apply(s, a, c, g)
		require.NoError(t, err)

		if s.Selected != nil && a == ActionOpen {
			require.Nil(t, next.Selected)
		}
		if next.Selected != nil {
			require.True(t, next.Selected.InBounds())
		}
		if next.Focused != nil {
			require.True(t, next.Focused.InBounds())
		}
		if a != ActionHide {
			require.GreaterOrEqual(t, openedCount(next.Board), before)
		}
		s = next
	}
}
