package history

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codenames/internal/game"
	"github.com/robalobadob/codenames/internal/seq"
	"github.com/robalobadob/codenames/internal/words"
)

func setupLog(t *testing.T) (*Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "history.db")
	l, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, path
}

func testBoard(t *testing.T) game.Board {
	t.Helper()
	list, err := words.Load("")
	require.NoError(t, err)
	g := game.NewGenerator(list, seq.New(seq.DefaultSeed), rand.New(rand.NewPCG(1, 2)))
	b, err := g.NewBoard()
	require.NoError(t, err)
	return b
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	l, path := setupLog(t)
	require.NoError(t, l.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	var n int
	require.NoError(t, again.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestStartedProgressFinished(t *testing.T) {
	ctx := context.Background()
	l, _ := setupLog(t)
	b := testBoard(t)

	require.NoError(t, l.Started(ctx, "session-1", b))
	// A second insert for the same board is ignored.
	require.NoError(t, l.Started(ctx, "session-1", b))

	st := game.NewState(b).RevealAll()
	require.NoError(t, l.Progress(ctx, st))

	entries, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, b.ID, e.ID)
	assert.Equal(t, "session-1", e.SessionID)
	assert.Equal(t, string(b.SwingColor()), e.SwingColor)
	assert.Equal(t, b.Count(game.Red), e.RedOpened)
	assert.Equal(t, b.Count(game.Blue), e.BlueOpened)
	assert.Equal(t, 17, e.RedTotal+e.BlueTotal)
	assert.Empty(t, e.FinishedAt)

	require.NoError(t, l.Finished(ctx, st.HideAll()))
	entries, err = l.Recent(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, entries[0].FinishedAt)
	assert.Zero(t, entries[0].RedOpened)

	// Finished games are frozen.
	require.NoError(t, l.Progress(ctx, st))
	entries, _ = l.Recent(ctx, 10)
	assert.Zero(t, entries[0].RedOpened)
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	l, _ := setupLog(t)
	for range 3 {
		require.NoError(t, l.Started(ctx, "s", testBoard(t)))
	}

	entries, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = l.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
