package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/jobs"
	"hotelbooking/internal/modules/loyalty"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"
)

// One-shot run of the maintenance jobs, for cron or manual use.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := jobs.CompleteFinishedStays(ctx, repository.NewBookingRepository(db), time.Now())
	if err != nil {
		zl.Fatal("complete stays failed", zap.Error(err))
	}
	zl.Info("stay completion finished", zap.Int64("completed", n))

	loyaltyRepo := repository.NewLoyaltyRepository(db)
	credited, err := jobs.ReconcileLoyalty(ctx, loyaltyRepo, loyalty.NewService(loyaltyRepo, zl))
	if err != nil {
		zl.Error("loyalty reconciliation incomplete", zap.Int("credited", credited), zap.Error(err))
		return
	}
	zl.Info("loyalty reconciliation finished", zap.Int("credited", credited))
}
