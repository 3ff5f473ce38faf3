package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/mmynk/santa/internal/api"
	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/config"
	"github.com/mmynk/santa/internal/matcher"
	"github.com/mmynk/santa/internal/service"
	"github.com/mmynk/santa/internal/storage/sqlite"
	"github.com/mmynk/santa/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Configuration loaded", "groups", len(cfg.Groups))

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	exchange := service.NewExchangeService(store, cfg.Groups)

	// Reconcile before serving: every configured group gets its one-time
	// assignment, stale groups are cleaned up. Infeasible groups are a
	// config problem for the operator; the rest of the exchange still runs.
	if err := exchange.Reconcile(context.Background()); err != nil {
		if errors.Is(err, matcher.ErrInfeasible) {
			slog.Error("Some groups have no feasible assignment; relax their exclusions and redeploy", "error", err)
		} else {
			slog.Error("Reconciliation failed", "error", err)
			os.Exit(1)
		}
	}

	server := api.NewServer(
		exchange,
		service.NewWishService(store),
		auth.NewAuthenticator(cfg.Groups),
		auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
	)

	slog.Info("Server starting", "address", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Handler()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
