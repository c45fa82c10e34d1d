package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dentalpoint/clinic-service/internal/config"
	"github.com/dentalpoint/clinic-service/internal/maintenance"
	"github.com/dentalpoint/clinic-service/internal/store"
)

func main() {
	log.Println("Error Log Cleanup Job - Starting")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Retention Policy: %d days", cfg.ErrorLogRetentionDays)

	st, err := store.NewClient(cfg.StoreBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize document store client: %v", err)
	}

	cleanupService := maintenance.NewCleanupService(maintenance.NewRepository(st), cfg.ErrorLogRetentionDays)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := cleanupService.CountExpired(ctx)
	if err != nil {
		log.Fatalf("Failed to count expired error entries: %v", err)
	}

	log.Printf("Found %d error entries eligible for deletion", count)

	if count == 0 {
		log.Println("No cleanup needed. Exiting.")
		os.Exit(0)
	}

	deletedCount, err := cleanupService.CleanupExpired(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("✓ Cleanup completed successfully: %d error entries deleted", deletedCount)
	log.Println("Cleanup Job - Finished")
}
