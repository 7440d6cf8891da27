// internal/httpserver/board.go
//
// Board endpoints. All of them run behind withSession, which resolves the
// caller's session. GET deals a board for a new session; the POST routes
// answer 401 without a valid cookie:
//   - GET  /api/board              → current BoardView
//   - POST /api/board/click        → select / deselect (row, col)
//   - POST /api/board/hover/enter  → focus (row, col)
//   - POST /api/board/hover/leave  → unfocus (row, col)
//   - POST /api/board/open         → open the selected tile
//   - POST /api/board/reveal       → open every tile
//   - POST /api/board/hide         → close every tile
//   - POST /api/board/new          → deal a new board
//
// Cell coordinates come as form/query values or a JSON body {"row":0,"col":0}.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/internal/game"
	"github.com/robalobadob/codenames/internal/session"
)

// errBadCoord marks a cell request whose row/col is missing or malformed.
var errBadCoord = errors.New("row and col are required")

// ctxSessionKey is the context key type for the session ID.
type ctxSessionKey struct{}

func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxSessionKey{}).(string)
	return id
}

// mountBoard registers the /api/board routes. Only GET starts a session;
// actions need the cookie it sets.
func (s *Server) mountBoard(r chi.Router) {
	r.Route("/api/board", func(r chi.Router) {
		r.With(s.withSession(true)).Get("/", s.handleBoard)

		r.Group(func(r chi.Router) {
			r.Use(s.withSession(false))
			r.Post("/click", s.handleCell(game.ActionClick))
			r.Post("/hover/enter", s.handleCell(game.ActionHoverEnter))
			r.Post("/hover/leave", s.handleCell(game.ActionHoverLeave))
			r.Post("/open", s.handleAction(game.ActionOpen))
			r.Post("/reveal", s.handleAction(game.ActionReveal))
			r.Post("/hide", s.handleAction(game.ActionHide))
			r.Post("/new", s.handleAction(game.ActionNew))
		})
	})
}

// withSession attaches the caller's session ID to the request context.
// A missing or invalid token starts a new session when create is set and
// is rejected with 401 otherwise. A valid token whose state is gone (evicted
// or lost in a restart) gets a fresh board under the same ID.
func (s *Server) withSession(create bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, err := s.sessions.FromRequest(r)
			if err == nil {
				if _, err := s.store.Get(ctx, id); err == nil {
					next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxSessionKey{}, id)))
					return
				}
			} else if !create {
				s.sessions.Clear(w)
				jsonError(w, http.StatusUnauthorized, "no_session")
				return
			} else {
				id = ""
			}

			fresh := id == ""
			if fresh {
				id = session.NewID()
			}
			if err := s.deal(ctx, id); err != nil {
				log.Error().Err(err).Str("session", id).Msg("deal board")
				code, msg := statusFor(err)
				jsonError(w, code, msg)
				return
			}
			if fresh {
				tok, exp, err := s.sessions.Sign(id)
				if err != nil {
					log.Error().Err(err).Msg("sign session")
					jsonError(w, http.StatusInternalServerError, "sign_failed")
					return
				}
				s.sessions.SetCookie(w, tok, exp)
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxSessionKey{}, id)))
		})
	}
}

// deal generates a board for session id and stores it.
func (s *Server) deal(ctx context.Context, id string) error {
	b, err := s.gen.NewBoard()
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, id, game.NewState(b)); err != nil {
		return err
	}
	log.Info().Str("session", id).Str("board", b.ID).Msg("dealt board")
	if s.history != nil {
		if err := s.history.Started(ctx, id, b); err != nil {
			log.Warn().Err(err).Str("board", b.ID).Msg("history: record start")
		}
	}
	return nil
}

// handleBoard returns the current view.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Get(r.Context(), sessionID(r.Context()))
	if err != nil {
		code, msg := statusFor(err)
		jsonError(w, code, msg)
		return
	}
	_ = json.NewEncoder(w).Encode(game.NewView(st))
}

// handleCell serves actions that target one cell.
func (s *Server) handleCell(a game.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.decodeCoord(r)
		if err != nil {
			code, msg := statusFor(err)
			jsonError(w, code, msg)
			return
		}
		s.respond(w, r, a, c)
	}
}

// handleAction serves whole-board actions.
func (s *Server) handleAction(a game.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, a, game.Coord{})
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, a game.Action, c game.Coord) {
	st, err := s.apply(r.Context(), sessionID(r.Context()), a, c)
	if err != nil {
		log.Warn().Err(err).Str("action", string(a)).Msg("apply action")
		code, msg := statusFor(err)
		jsonError(w, code, msg)
		return
	}
	_ = json.NewEncoder(w).Encode(game.NewView(st))
}

// decodeCoord reads row/col from a JSON body or from form/query values.
func (s *Server) decodeCoord(r *http.Request) (game.Coord, error) {
	var c game.Coord
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/json" {
		var body struct {
			Row *int `json:"row"`
			Col *int `json:"col"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return c, fmt.Errorf("%w: %v", errBadCoord, err)
		}
		if body.Row == nil || body.Col == nil {
			return c, errBadCoord
		}
		c = game.Coord{Row: *body.Row, Col: *body.Col}
	} else {
		if err := r.ParseForm(); err != nil {
			return c, fmt.Errorf("%w: %v", errBadCoord, err)
		}
		if err := s.decoder.Decode(&c, r.Form); err != nil {
			return c, fmt.Errorf("%w: %v", errBadCoord, err)
		}
	}
	if !c.InBounds() {
		return c, game.ErrOutOfBounds
	}
	return c, nil
}

// apply runs one action against a session's state and logs history.
func (s *Server) apply(ctx context.Context, id string, a game.Action, c game.Coord) (game.State, error) {
	var prev game.State
	next, err := s.store.Update(ctx, id, func(st game.State) (game.State, error) {
		prev = st
		return game.Apply(st, a, c, s.gen)
	})
	if err != nil {
		return next, err
	}
	s.record(ctx, id, a, prev, next)
	return next, nil
}

// record mirrors state changes into the history log (best effort).
func (s *Server) record(ctx context.Context, id string, a game.Action, prev, next game.State) {
	if s.history == nil {
		return
	}
	switch a {
	case game.ActionNew:
		if err := s.history.Finished(ctx, prev); err != nil {
			log.Warn().Err(err).Str("board", prev.Board.ID).Msg("history: record finish")
		}
		if err := s.history.Started(ctx, id, next.Board); err != nil {
			log.Warn().Err(err).Str("board", next.Board.ID).Msg("history: record start")
		}
		log.Info().Str("session", id).Str("board", next.Board.ID).Msg("new game")
	case game.ActionOpen, game.ActionReveal, game.ActionHide:
		if err := s.history.Progress(ctx, next); err != nil {
			log.Warn().Err(err).Str("board", next.Board.ID).Msg("history: record progress")
		}
	}
}
