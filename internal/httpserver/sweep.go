// internal/httpserver/sweep.go
//
// Session eviction. Every interval, sessions whose state was not saved or
// updated within maxAge are closed in the history log and dropped from the
// store. A returning browser with a still-valid cookie gets a fresh board.

package httpserver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweep evicts idle sessions until ctx is done.
func (s *Server) Sweep(ctx context.Context, maxAge, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			s.evict(ctx, now.Add(-maxAge))
		}
	}
}

// evict drops sessions idle since before and returns how many went.
func (s *Server) evict(ctx context.Context, before time.Time) int {
	n := 0
	for _, id := range s.store.Stale(ctx, before) {
		if st, err := s.store.Get(ctx, id); err == nil && s.history != nil {
			if err := s.history.Finished(ctx, st); err != nil {
				log.Warn().Err(err).Str("board", st.Board.ID).Msg("history: record finish")
			}
		}
		if err := s.store.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("session", id).Msg("evict session")
			continue
		}
		n++
	}
	if n > 0 {
		log.Info().Int("evicted", n).Int("live", s.store.Len()).Msg("session sweep")
	}
	return n
}
