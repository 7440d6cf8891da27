package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/codenames/internal/config"
	"github.com/robalobadob/codenames/internal/game"
	"github.com/robalobadob/codenames/internal/history"
	"github.com/robalobadob/codenames/internal/httpserver"
	"github.com/robalobadob/codenames/internal/seq"
	"github.com/robalobadob/codenames/internal/session"
	"github.com/robalobadob/codenames/internal/store"
	"github.com/robalobadob/codenames/internal/words"
)

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg)

	if err := words.Init(cfg.Game.WordsFile); err != nil {
		log.Fatal().Err(err).Str("file", cfg.Game.WordsFile).Msg("failed to load word list")
	}
	raw, uniq := words.Stats()
	log.Info().Int("raw", raw).Int("unique", uniq).Msg("word list loaded")

	// A list too short for one board is a configuration error. The probe
	// uses its own sequence so the live one starts at the configured seed.
	list := words.List()
	if _, err := game.SelectWords(list, seq.New(cfg.Game.WordSeed)); err != nil {
		log.Fatal().Err(err).Msg("cannot generate boards")
	}
	gen := game.NewGenerator(list, seq.New(cfg.Game.WordSeed), nil)

	var rec httpserver.Recorder
	if hist, err := history.Open(cfg.DBPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("history disabled")
	} else {
		defer hist.Close()
		rec = hist
	}

	sm := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, cfg.IsProduction())
	srv := httpserver.New(store.NewMemoryStore(), gen, sm, rec, cfg.Server.ClientOrigin)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Router(),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Server.Env).Int64("seed", cfg.Game.WordSeed).Msg("starting codenames server")

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		return srv.Sweep(gCtx, cfg.Session.TTL, cfg.Session.SweepEvery)
	})
	g.Go(func() error {
		<-gCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server exited")
	}
	log.Info().Msg("shutdown complete")
}
