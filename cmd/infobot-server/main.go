package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"infobot-backend/internal/app"
	"infobot-backend/internal/config"
	logx "infobot-backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to create server")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logx.Info().Str("addr", srv.Addr).Str("env", cfg.Environment.String()).Msg("InfoBot server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		a.SweepSessions(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logx.Error().Err(err).Msg("server stopped with error")
	}
	if err := a.Close(); err != nil {
		logx.Error().Err(err).Msg("failed to release resources")
	}
	logx.Info().Msg("server stopped")
}
