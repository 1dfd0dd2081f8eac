package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/demeco/devis-console/internal/config"
	"github.com/demeco/devis-console/internal/console"
	"github.com/demeco/devis-console/internal/gateway"
	"github.com/demeco/devis-console/internal/handlers"
	"github.com/demeco/devis-console/internal/logger"
	"github.com/demeco/devis-console/internal/policy"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info(ctx, "Console starting",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
		"backend_url", cfg.Backend.URL)

	// Wire the backend gateway, lifecycle policy and services
	gw := gateway.New(cfg.Backend.URL, cfg.Backend.Timeout)
	lifecycle := policy.New(gw)
	clientService := console.NewClientService(gw)
	devisService := console.NewDevisService(gw, lifecycle)

	// Set up HTTP routes
	router := handlers.NewRouter(clientService, devisService)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "address", addr)
		serverErrors <- server.ListenAndServe()
	}()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)

	case sig := <-sigChan:
		logger.Info(ctx, "Received shutdown signal", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.LogError(ctx, "Server shutdown error", err)
			// Force close if graceful shutdown fails
			server.Close()
		}

		logger.Info(ctx, "Server shutdown complete")
	}
}
