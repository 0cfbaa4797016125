package main

import (
	"context"
	"log"

	"github.com/triptale-app/triptale-backend/config"
	"github.com/triptale-app/triptale-backend/internal/auth"
	"github.com/triptale-app/triptale-backend/internal/bootstrap"
	"github.com/triptale-app/triptale-backend/internal/jobs"
	"github.com/triptale-app/triptale-backend/internal/packages"
	"github.com/triptale-app/triptale-backend/internal/payments"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	provider, err := auth.InitializeFirebase(ctx, cfg.Auth.FirebaseServiceKey)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "triptale-backend",
		Version:     cfg.App.Version,
		DB:          db,
		Redis:       rdb,
		Tokens:      auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Provider:    provider,
		Intents:     payments.NewStripeGateway(cfg.Stripe.SecretKey),
	})

	scheduler := jobs.NewScheduler(packages.NewRepo(db), packages.NewCache(rdb))
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("tripTale server is running on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
