package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/ramadhanarif/storefront-client/internal/stubserver"
	"github.com/ramadhanarif/storefront-client/pkg/config"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "stubserver"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "stubserver",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store := stubserver.NewStore()
	if cfg.Stub.SeedDemo {
		if err := store.SeedDemo(); err != nil {
			logg.Error(context.Background(), "failed to seed demo data", err)
			os.Exit(1)
		}
	}

	srv, err := stubserver.New(cfg.Stub, store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stub server", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Stub.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting stub backend")

	server := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "stub backend stopped unexpectedly", err)
		os.Exit(1)
	}
}
