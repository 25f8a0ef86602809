package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/vending-machine/internal/catalog"
	"github.com/Lixing-Zhang/vending-machine/internal/config"
	"github.com/Lixing-Zhang/vending-machine/internal/handlers"
	"github.com/Lixing-Zhang/vending-machine/internal/service"
	"github.com/Lixing-Zhang/vending-machine/internal/vending"
	"github.com/Lixing-Zhang/vending-machine/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting vending machine api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// A machine without a valid catalog must not start
	log.Info("loading catalog...", "source", cfg.Machine.CatalogSource)
	inventory, err := catalog.NewLoader(nil).LoadSource(context.Background(), cfg.Machine.CatalogSource)
	if err != nil {
		log.Error("failed to load catalog", "source", cfg.Machine.CatalogSource, "error", err)
		os.Exit(1)
	}

	balance, err := cfg.Machine.Balance()
	if err != nil {
		log.Error("invalid initial balance", "error", err)
		os.Exit(1)
	}

	ledger := vending.NewLedger(inventory, balance)
	log.Info("catalog loaded successfully",
		"selections", inventory.Len(),
		"initial_balance", balance.StringFixed(2),
	)

	icons := handlers.NewIconRegistry()
	vendingService := service.NewVendingService(ledger, icons.Resolve)
	router := handlers.NewRouter(vendingService, ledger, cfg.Auth, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully", "final_balance", ledger.Balance().StringFixed(2))
}
