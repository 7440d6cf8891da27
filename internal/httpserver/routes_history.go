// internal/httpserver/routes_history.go
//
// Read-only history endpoint:
//   - GET /api/history?limit=N → most recent games, newest first
//
// Without a history log the endpoint answers with an empty list.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/internal/history"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// historyRes is returned by /api/history.
type historyRes struct {
	Games []history.Entry `json:"games"`
}

// mountHistory registers the /api/history routes.
func (s *Server) mountHistory(r chi.Router) {
	r.Get("/api/history", s.handleHistory)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	res := historyRes{Games: []history.Entry{}}
	if s.history != nil {
		rows, err := s.history.Recent(r.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("history: list recent")
			jsonError(w, http.StatusInternalServerError, "server_error")
			return
		}
		if rows != nil {
			res.Games = rows
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}
