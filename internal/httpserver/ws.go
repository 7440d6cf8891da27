// internal/httpserver/ws.go
//
// Websocket channel for the board. Hover events fire on every mouse move,
// so the page sends them here instead of issuing one POST per event.
//
// Protocol (JSON text frames):
//   client → {"action":"hover_enter","row":1,"col":2}
//   server → BoardView after every accepted action, or {"error":"..."}
// The current view is pushed once right after the upgrade.
//
// The session must already exist (GET /api/board sets the cookie); the
// upgrade response cannot carry a fresh cookie.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/internal/game"
)

const (
	wsMaxMessage = 512
	wsWriteWait  = 10 * time.Second
	wsIdleWait   = 5 * time.Minute
)

// wsMessage is one client action.
type wsMessage struct {
	Action game.Action `json:"action"`
	Row    *int        `json:"row,omitempty"`
	Col    *int        `json:"col,omitempty"`
}

// coord validates the cell fields for actions that need one.
func (m wsMessage) coord() (game.Coord, error) {
	if !m.Action.NeedsCoord() {
		return game.Coord{}, nil
	}
	if m.Row == nil || m.Col == nil {
		return game.Coord{}, errBadCoord
	}
	c := game.Coord{Row: *m.Row, Col: *m.Col}
	if !c.InBounds() {
		return c, game.ErrOutOfBounds
	}
	return c, nil
}

type wsError struct {
	Error string `json:"error"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.FromRequest(r)
	if err != nil {
		jsonError(w, http.StatusUnauthorized, "no_session")
		return
	}
	st, err := s.store.Get(r.Context(), id)
	if err != nil {
		code, msg := statusFor(err)
		jsonError(w, code, msg)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsMaxMessage)

	// Close the socket when the server shuts down.
	ctx := r.Context()
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	log.Info().Str("session", id).Msg("websocket connected")
	defer log.Info().Str("session", id).Msg("websocket disconnected")

	if err := writeWS(conn, game.NewView(st)); err != nil {
		return
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleWait))
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("session", id).Msg("websocket read error")
			}
			return
		}

		var out any
		c, err := msg.coord()
		if err == nil {
			st, err = s.apply(ctx, id, msg.Action, c)
		}
		if err != nil {
			_, code := statusFor(err)
			out = wsError{Error: code}
		} else {
			out = game.NewView(st)
		}
		if err := writeWS(conn, out); err != nil {
			return
		}
	}
}

func writeWS(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}
