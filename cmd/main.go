package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwrk-planet/activity-service/config"
	"github.com/cwrk-planet/activity-service/internal/memory"
	"github.com/cwrk-planet/activity-service/internal/metrics"
	"github.com/cwrk-planet/activity-service/internal/seed"
	httpserver "github.com/cwrk-planet/activity-service/internal/server/http"
	"github.com/cwrk-planet/activity-service/internal/service"
	httpx "github.com/cwrk-planet/activity-service/internal/transport/http"
	"github.com/cwrk-planet/activity-service/internal/transport/ws"
	"github.com/cwrk-planet/activity-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.ParseEnv(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
		Attrs: []slog.Attr{
			slog.Bool("enforce_capacity", cfg.Registry.CapacityEnforced()),
		},
	})
	slog.Info("starting activity-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- registry ---
	catalog, err := seed.Load(cfg.Registry.SeedPath)
	if err != nil {
		slog.Error("load seed", "path", cfg.Registry.SeedPath, "err", err)
		os.Exit(1)
	}
	repo := memory.NewActivityRepository(catalog, cfg.Registry.CapacityEnforced())
	for _, a := range catalog {
		metrics.Participants.WithLabelValues(a.Name).Set(float64(len(a.Participants)))
	}
	slog.Info("registry seeded", "activities", len(repo.Names()))

	// --- services ---
	signupSvc := service.NewSignupService(repo)

	// --- WS hub ---
	hub := ws.NewHub()
	signupSvc.SetNotifier(hub)
	wsServer := ws.NewServer(hub, signupSvc)
	wsServer.SetPingInterval(cfg.HTTP.WSPingInterval)

	// --- HTTP ---
	router := httpx.NewRouter(httpx.Deps{
		Handler:        httpx.NewHandler(signupSvc),
		WSServer:       wsServer,
		StaticDir:      cfg.HTTP.StaticDir,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	srv := httpserver.New(httpserver.Config{
		Addr:         cfg.HTTP.Addr,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, router)

	// --- graceful shutdown ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		slog.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	slog.Info("stopped")
}
