// internal/httpserver/server.go
//
// HTTP server wiring for the Codenames board.
// Responsibilities:
//   - Router + middleware (CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/static/*", "/health".
//   - Board endpoints under /api/board (session cookie required, created on demand).
//   - Websocket endpoint /ws for hover/click traffic.
//   - History listing /api/history and word list diagnostics /debug/words.
//
// Notes:
//   - Each browser session owns one game.State in the store; every action is
//     applied through store.Update, so actions of one session never interleave.
//   - History writes are best effort: failures are logged, gameplay continues.
//   - Sweep evicts sessions idle longer than the session TTL.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/assets"
	"github.com/robalobadob/codenames/internal/game"
	"github.com/robalobadob/codenames/internal/history"
	"github.com/robalobadob/codenames/internal/session"
	"github.com/robalobadob/codenames/internal/store"
	"github.com/robalobadob/codenames/internal/words"
)

// Recorder is the history log as used by the server.
type Recorder interface {
	Started(ctx context.Context, sessionID string, b game.Board) error
	Progress(ctx context.Context, st game.State) error
	Finished(ctx context.Context, st game.State) error
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// Server bundles router, session store, board generator and history log.
type Server struct {
	r        *chi.Mux
	store    store.Store
	gen      game.BoardSource
	sessions *session.Manager
	history  Recorder // optional
	decoder  *schema.Decoder
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
// hist may be nil to run without a history log.
func New(st store.Store, gen game.BoardSource, sm *session.Manager, hist Recorder, clientOrigin string) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		gen:      gen,
		sessions: sm,
		history:  hist,
		decoder:  schema.NewDecoder(),
	}
	s.decoder.IgnoreUnknownKeys(true)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == clientOrigin || sameHost(r, o)
		},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)       // add X-Request-ID
	s.r.Use(chimw.RealIP)          // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)             // zerolog access log
	s.r.Use(chimw.Recoverer)       // recover from panics
	s.r.Use(corsFor(clientOrigin)) // credentials-friendly CORS

	// --- page + diagnostics ---
	if static, err := assets.Static(); err == nil {
		s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFileFS(w, r, static, "index.html")
		})
		s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	} else {
		log.Error().Err(err).Msg("static assets unavailable")
	}

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "sessions": s.store.Len()})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			raw, uniq := words.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"raw": raw, "unique": uniq})
		})

		s.mountBoard(r)
		s.mountHistory(r)
	})

	// Websocket connections outlive the request timeout.
	s.r.Get("/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the router as the root http.Handler.
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// ----------------------------- helpers -------------------------------------

// jsonError writes {"error": code} with the given status.
func jsonError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// statusFor maps domain errors to HTTP status + error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBadCoord):
		return http.StatusBadRequest, "bad_coord"
	case errors.Is(err, game.ErrOutOfBounds):
		return http.StatusBadRequest, "out_of_range"
	case errors.Is(err, game.ErrUnknownAction):
		return http.StatusBadRequest, "unknown_action"
	case errors.Is(err, game.ErrNotEnoughWords):
		return http.StatusInternalServerError, "not_enough_words"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "no_session"
	}
	return http.StatusInternalServerError, "internal"
}

// sameHost reports whether origin points at the host serving r.
func sameHost(r *http.Request, origin string) bool {
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
