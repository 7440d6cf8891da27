// internal/game/generator.go
//
// Board generation.
// Responsibilities:
//   - Pick 25 words with the seeded, reproducible sequence (SelectWords).
//   - Assign hidden colors with a non-deterministic source (GenerateColors).
//   - Zip both grids into a fresh Board (Assemble).
//
// Notes:
//   - Color counts are fixed: 8 red, 8 blue, 1 black, one swing tile that
//     goes to red or blue at random, and 7 white.
//   - Colors are placed by rejection sampling: pick a random cell, keep it
//     only if it is still white.

package game

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/codenames/internal/seq"
	"github.com/robalobadob/codenames/internal/words"
)

// Intner is the subset of *rand.Rand used for color placement.
type Intner interface {
	IntN(n int) int
}

// BoardSource produces fresh boards for new games.
type BoardSource interface {
	NewBoard() (Board, error)
}

// NewRand returns a PCG source seeded from runtime entropy.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// SelectWords deduplicates list, shuffles it with s and lays the first
// Size words out row by row.
func SelectWords(list []string, s *seq.Sequence) ([Rows][Cols]string, error) {
	var grid [Rows][Cols]string

	pool := words.Dedup(list)
	if len(pool) < Size {
		return grid, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughWords, len(pool), Size)
	}

	// Fisher-Yates, with the seeded sequence standing in for a random source.
	for i := len(pool) - 1; i > 0; i-- {
		j := int(s.Next() * float64(i+1))
		pool[i], pool[j] = pool[j], pool[i]
	}

	for i, w := range pool[:Size] {
		grid[i/Cols][i%Cols] = w
	}
	return grid, nil
}

// GenerateColors returns a color grid with the fixed team counts.
func GenerateColors(r Intner) [Rows][Cols]Color {
	var grid [Rows][Cols]Color
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = White
		}
	}

	place(&grid, r, Red, RedCount)
	place(&grid, r, Blue, BlueCount)
	place(&grid, r, Black, BlackCount)

	swing := Red
	if r.IntN(2) == 0 {
		swing = Blue
	}
	place(&grid, r, swing, 1)
	return grid
}

// place turns n still-white cells into c.
func place(grid *[Rows][Cols]Color, r Intner, c Color, n int) {
	for n > 0 {
		i, j := r.IntN(Rows), r.IntN(Cols)
		if grid[i][j] == White {
			grid[i][j] = c
			n--
		}
	}
}

// Assemble zips words and colors into a new Board with every tile closed.
func Assemble(w [Rows][Cols]string, c [Rows][Cols]Color) Board {
	b := Board{ID: uuid.NewString()}
	for i := range b.Tiles {
		for j := range b.Tiles[i] {
			b.Tiles[i][j] = Tile{Word: w[i][j], Color: c[i][j], State: StateDefault}
		}
	}
	return b
}

// Generator builds boards from one word list and one seeded sequence.
// The sequence advances across calls, so successive boards differ while a
// restarted process replays the same word order.
type Generator struct {
	mu    sync.Mutex // guards seq and rng
	words []string
	seq   *seq.Sequence
	rng   Intner
}

// NewGenerator constructs a Generator. A nil rng selects NewRand().
func NewGenerator(list []string, s *seq.Sequence, rng Intner) *Generator {
	if rng == nil {
		rng = NewRand()
	}
	return &Generator{words: list, seq: s, rng: rng}
}

// NewBoard implements BoardSource.
func (g *Generator) NewBoard() (Board, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	w, err := SelectWords(g.words, g.seq)
	if err != nil {
		return Board{}, err
	}
	return Assemble(w, GenerateColors(g.rng)), nil
}
