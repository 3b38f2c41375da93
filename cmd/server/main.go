package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/laundrosim/backend/internal/bus"
	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/engine"
	"github.com/laundrosim/backend/internal/httpapi"
	"github.com/laundrosim/backend/internal/journal"
	"github.com/laundrosim/backend/internal/monitoring"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	setupLogging(cfg.Server.LogLevel)

	j, err := openJournal(cfg)
	if err != nil {
		log.Fatalf("open journal: %v", err)
	}
	defer j.Close()

	eventBus := openBus(cfg)
	defer eventBus.Close()

	eng := engine.New(cfg, j,
		engine.WithBus(eventBus),
		engine.WithMetrics(monitoring.NewMetrics()),
	)

	api := httpapi.NewServer(eng, eventBus)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Server.Port, "journal", cfg.Journal.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Backend {
	case "file":
		return journal.OpenFile(cfg.Journal.FilePath)
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return journal.OpenPostgres(ctx, cfg.Journal.DSN)
	default:
		return journal.NewMemory(), nil
	}
}

// openBus prefers Redis when configured and reachable, otherwise falls
// back to the in-process bus.
func openBus(cfg *config.Config) bus.Bus {
	if !cfg.Redis.Enabled {
		return bus.NewLocal()
	}
	adapter, err := bus.NewGoRedisAdapter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("redis unavailable, using local event bus", "error", err)
		return bus.NewLocal()
	}
	return bus.NewRedis(adapter, "")
}
