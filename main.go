package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/config"
	"github.com/saxenaaman628/online-voting-system/internal/api"
	"github.com/saxenaaman628/online-voting-system/internal/controller"
	"github.com/saxenaaman628/online-voting-system/internal/middleware"
	"github.com/saxenaaman628/online-voting-system/internal/mongostore"
	"github.com/saxenaaman628/online-voting-system/internal/redis"
	redishandler "github.com/saxenaaman628/online-voting-system/internal/redisHandler"
	"github.com/saxenaaman628/online-voting-system/internal/registrar"
	"github.com/saxenaaman628/online-voting-system/internal/sqlstore"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/users"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	var handler slog.Handler
	if cfg.Development() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
		gin.SetMode(gin.ReleaseMode)
	}
	slog.SetDefault(slog.New(handler))
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		rdb, err := redis.NewClient(ctx, redis.Options{Addr: cfg.RedisURI, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, err
		}
		return redishandler.New(rdb), nil
	case config.DriverMongo:
		return mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverSQLite, config.DriverPostgres:
		return sqlstore.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	s, err := openStore(connectCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer s.Close()

	v := validation.New(time.Now)
	tokens := utils.NewTokens(cfg.JWTSecret, cfg.TokenTTL, time.Now)
	h := controller.New(s, v,
		users.NewService(s, v, tokens, time.Now),
		registrar.New(s, v, time.Now, registrar.WithExpiry(cfg.EnforceExpiry)),
		controller.Options{Development: cfg.Development(), MaxImageBytes: cfg.MaxImageBytes},
	)
	r := api.NewRouter(h, tokens, cfg.CORSOrigins, middleware.Timeout(cfg.RequestTimeout))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "store", cfg.StoreDriver, "mode", cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
