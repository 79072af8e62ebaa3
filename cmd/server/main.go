package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bjaspel63/splitClass/internal/config"
	"github.com/bjaspel63/splitClass/internal/metrics"
	"github.com/bjaspel63/splitClass/internal/server"
	"github.com/bjaspel63/splitClass/internal/signaling"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	m := metrics.New()

	hub := signaling.NewHub(logger, m, identityFactory(cfg))
	go hub.Run()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Routes(hub, cfg, m, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("signaling server listening",
		slog.String("addr", cfg.ListenAddr),
		slog.String("identity_mode", string(cfg.IdentityMode)))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)

	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", slog.Any("error", err))
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func identityFactory(cfg config.Config) signaling.IdentityFactory {
	if cfg.IdentityMode == config.IdentityModeRandom {
		return signaling.RandomIdentity
	}
	return signaling.SequentialIdentity
}
