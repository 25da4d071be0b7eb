package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atifsayed22/bookit/applications/auth"
	"github.com/atifsayed22/bookit/config"
	"github.com/atifsayed22/bookit/controllers"
	badgerstore "github.com/atifsayed22/bookit/db/badger"
	mongostore "github.com/atifsayed22/bookit/db/mongo"
	"github.com/atifsayed22/bookit/db/postgres"
	"github.com/atifsayed22/bookit/logger"
	"github.com/atifsayed22/bookit/store"
)

// devJWTSecret is only accepted with the embedded badger store.
const devJWTSecret = "bookit-local-dev-secret"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[main] Configuration error: %v", err))
		os.Exit(1)
	}

	closer, err := logger.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[main] Logger initialization failed: %v", err))
		os.Exit(1)
	}
	defer closer.Close()
	log := logger.Log

	log.Info("[main] program started")

	// --- STORE ---
	log.Info(fmt.Sprintf("[main] Opening %s store...", cfg.StoreDriver))
	s, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Error(fmt.Sprintf("[main] Store initialization failed: %v", err))
		os.Exit(1)
	}
	defer s.Close()
	log.Info("[main] Store ready.")

	// --- AUTH ---
	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn("[main] JWT_SECRET not set. Using the local development secret.")
		secret = devJWTSecret
	}
	authn := auth.NewAuthenticator(secret, log)

	e := controllers.NewRouter(log, s, authn, controllers.RouterConfig{
		Driver:         cfg.StoreDriver,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		VoucherBaseURL: cfg.VoucherBaseURL,
	})

	log.Info(fmt.Sprintf("[main] Starting Echo server on :%s", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error(fmt.Sprintf("[main] Server stopped: %v", err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DatabaseURL, logger.Log)
	case config.DriverMongo:
		return mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.SlotLockTTL, logger.Log)
	default:
		return badgerstore.Open(cfg.BadgerDir, logger.Log)
	}
}
