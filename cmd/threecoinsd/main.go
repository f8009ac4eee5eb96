package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nathankoerschner/threecoins/internal/adapters/details"
	httpadapter "github.com/nathankoerschner/threecoins/internal/adapters/http"
	"github.com/nathankoerschner/threecoins/internal/app"
	"github.com/nathankoerschner/threecoins/internal/bootstrap"
	"github.com/nathankoerschner/threecoins/internal/config"
	"github.com/nathankoerschner/threecoins/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// A broken table would silently mis-resolve every reading.
	if err := domain.ValidateTables(); err != nil {
		logger.Error("hexagram tables failed validation", "error", err)
		os.Exit(1)
	}

	stores, err := bootstrap.OpenStores(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Error("close store", "error", err)
		}
	}()

	interp, err := bootstrap.NewInterpreter(cfg, logger)
	if err != nil {
		logger.Error("failed to build interpreter", "error", err)
		os.Exit(1)
	}
	if interp == nil {
		logger.Warn("no LLM provider configured; interpretation disabled")
	}

	rng := bootstrap.StdRNG{}
	divination := app.NewDivinationService(rng, interp, details.NewEmbeddedStore(), stores.Readings, cfg.LLMModel, app.WithLogger(logger))
	sessions := app.NewSessionService(rng, stores.Sessions, stores.Readings, app.WithLogger(logger))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(divination, sessions)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "provider", cfg.LLMProvider, "persistent", cfg.DBPath != "")
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
