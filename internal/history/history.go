// internal/history/history.go
//
// Append-only log of generated boards.
// A row is written when a board is dealt and updated with opened counts as
// the game progresses and when the board is replaced. The log is never read
// back to restore a session.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/codenames/internal/game"
)

// Entry is one logged game.
type Entry struct {
	ID         string `json:"id"`
	SessionID  string `json:"sessionId"`
	SwingColor string `json:"swingColor"`
	RedOpened  int    `json:"redOpened"`
	RedTotal   int    `json:"redTotal"`
	BlueOpened int    `json:"blueOpened"`
	BlueTotal  int    `json:"blueTotal"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// Log writes game history rows.
type Log struct {
	db *sql.DB
}

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Log, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the database handle.
func (l *Log) Close() error { return l.db.Close() }

// Started records a newly dealt board for a session.
func (l *Log) Started(ctx context.Context, sessionID string, b game.Board) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO games
			(id, session_id, swing_color, red_total, blue_total, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, sessionID, string(b.SwingColor()), b.Count(game.Red), b.Count(game.Blue),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Progress stores the current opened counts of an unfinished game.
func (l *Log) Progress(ctx context.Context, st game.State) error {
	red, blue := st.Scores()
	_, err := l.db.ExecContext(ctx, `
		UPDATE games SET red_opened=?, blue_opened=?
		WHERE id=? AND finished_at IS NULL`,
		red.Opened, blue.Opened, st.Board.ID,
	)
	return err
}

// Finished stores final counts and closes the game.
func (l *Log) Finished(ctx context.Context, st game.State) error {
	red, blue := st.Scores()
	_, err := l.db.ExecContext(ctx, `
		UPDATE games SET red_opened=?, blue_opened=?, finished_at=?
		WHERE id=? AND finished_at IS NULL`,
		red.Opened, blue.Opened, time.Now().UTC().Format(time.RFC3339), st.Board.ID,
	)
	return err
}

// Recent returns the newest entries, at most limit (default 20).
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, session_id, swing_color, red_opened, red_total,
		       blue_opened, blue_total, started_at, COALESCE(finished_at, '')
		FROM games
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.SwingColor, &e.RedOpened, &e.RedTotal,
			&e.BlueOpened, &e.BlueTotal, &e.StartedAt, &e.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
