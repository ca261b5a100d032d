package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"flavis-be/internal/campaign"
	"flavis-be/internal/catalog"
	"flavis-be/internal/config"
	"flavis-be/internal/customer"
	"flavis-be/internal/db"
	"flavis-be/internal/draft"
	"flavis-be/internal/guard"
	"flavis-be/internal/handler"
	"flavis-be/internal/kvstore"
	"flavis-be/internal/logger"
	"flavis-be/internal/order"
	"flavis-be/internal/packages"
	"flavis-be/internal/upload"
	"flavis-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	// Guard state and drafts share the same persistent key-value store so
	// lockouts and in-progress forms both survive restarts.
	kv := kvstore.NewPostgres(database)
	submissionGuard := guard.New(kv, guard.Policy{
		Threshold: cfg.GuardThreshold,
		Durations: cfg.GuardDurations,
		Staleness: cfg.GuardStaleness,
		Counts:    guard.DefaultPolicy().Counts,
	})
	drafts := draft.NewStore(kv)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)
	if err := ensureAdmin(userRepo, cfg); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	campaignRepo := campaign.NewRepository(database)
	campaignSvc := campaign.NewService(campaignRepo)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	packRepo := packages.NewRepository(database)
	packSvc := packages.NewService(packRepo)

	customerRepo := customer.NewRepository(database)
	customerSvc := customer.NewService(customerRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, campaignSvc, submissionGuard, drafts)

	uploadSvc := upload.NewService(cfg.UploadDir, cfg.UploadMaxBytes, cfg.PublicBaseURL)

	h := handler.New(cfg, userSvc, campaignSvc, catalogSvc, packSvc, customerSvc, orderSvc, drafts, uploadSvc)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      h.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🍪 Flavis backend running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}

// ensureAdmin creates the configured admin account on first boot.
func ensureAdmin(repo user.Repository, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx := context.Background()
	if _, err := repo.FindByUsername(ctx, cfg.AdminUsername); err == nil {
		return nil
	}

	hashed, err := user.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	_, err = repo.Create(ctx, cfg.AdminUsername, hashed, string(user.RoleAdmin))
	return err
}
