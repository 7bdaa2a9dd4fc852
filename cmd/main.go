package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gawron97/petBuddy-backend-sub000/config"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/pg"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/postgres"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/presence"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/service"
	httpx "github.com/Gawron97/petBuddy-backend-sub000/internal/transport/http"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/transport/ws"
	"github.com/Gawron97/petBuddy-backend-sub000/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting chat-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := pg.NewPool(ctx, pg.Config{
		DSN:             cfg.Postgres.DSN,
		ApplicationName: cfg.Logging.Service,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- repos ---
	chatRoomRepo := postgres.NewChatRoomRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)

	// --- presence & services ---
	registry := presence.NewRegistry()
	hub := ws.NewHub()

	defaultZone := time.Local
	if cfg.WS.DefaultTimeZone != "" {
		if loc, err := time.LoadLocation(cfg.WS.DefaultTimeZone); err == nil {
			defaultZone = loc
		} else {
			slog.Warn("invalid ws.defaultTimeZone, using server local", "zone", cfg.WS.DefaultTimeZone)
		}
	}

	chatSvc := service.NewChatService(chatRoomRepo, messageRepo)
	notifySvc := service.NewChatNotificationService(registry, hub, defaultZone)

	// --- WS & HTTP ---
	wsServer := ws.NewServer(hub, chatSvc, notifySvc)
	wsServer.SetPingInterval(cfg.PingInterval())

	handler := httpx.NewHandler(chatSvc)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped", "tracked_rooms", registry.Size())
}
