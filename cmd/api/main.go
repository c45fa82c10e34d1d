package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dentalpoint/clinic-service/internal/config"
	"github.com/dentalpoint/clinic-service/internal/filestore"
	clinichttp "github.com/dentalpoint/clinic-service/internal/http"
	"github.com/dentalpoint/clinic-service/internal/messaging"
	"github.com/dentalpoint/clinic-service/internal/store"
	"github.com/dentalpoint/clinic-service/internal/telemetry"
)

func main() {
	log.Println("clinic-service starting")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Telemetry degrades gracefully when the collector is unreachable.
	provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}
	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics initialization failed: %v", err)
		metrics = nil
	}

	st, err := store.NewClient(cfg.StoreBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize document store client: %v", err)
	}
	if metrics != nil {
		st = st.WithMetrics(metrics)
	}

	// The service stays up without a broker; events are simply skipped.
	publisher, err := messaging.NewPublisher(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
		publisher = nil
	}

	xrays := filestore.NewMemory()

	router := clinichttp.SetupRouter(&cfg, st, publisher, xrays, metrics)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("clinic-service listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("Error closing publisher: %v", err)
		}
	}
	if provider != nil {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}

	log.Println("clinic-service stopped")
}
