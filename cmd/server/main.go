package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api"
	"github.com/brokersim/Brokerage-Account-Backend/internal/audit"
	"github.com/brokersim/Brokerage-Account-Backend/internal/config"
	"github.com/brokersim/Brokerage-Account-Backend/internal/ledger"
	"github.com/brokersim/Brokerage-Account-Backend/internal/quote"
	"github.com/brokersim/Brokerage-Account-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the ledger directory
	led, err := ledger.Open(cfg.Ledger.DataDir)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}

	log.Printf("Loaded ledger from: %s", cfg.Ledger.DataDir)

	// Open audit database connection
	auditDB, err := audit.Open(cfg.Audit.Path)
	if err != nil {
		log.Fatalf("Failed to open audit database: %v", err)
	}
	defer auditDB.Close()

	auditLog := audit.NewLog(auditDB)

	// Create services
	quotes := quote.NewYahooClient()
	accountService := service.NewAccountService(led, auditLog)
	optionService := service.NewOptionService(led, quotes, auditLog)
	dividendService := service.NewDividendService(led, quotes, auditLog)
	valuationService := service.NewValuationService(led, quotes)

	// Run the lifecycle sweeps once at startup, then optionally on a schedule
	runSweeps(optionService, dividendService)

	var scheduler *cron.Cron
	if cfg.Sweep.Schedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Sweep.Schedule, func() {
			runSweeps(optionService, dividendService)
		})
		if err != nil {
			log.Fatalf("Invalid sweep schedule %q: %v", cfg.Sweep.Schedule, err)
		}
		scheduler.Start()
		log.Printf("Scheduled sweeps: %s", cfg.Sweep.Schedule)
	}

	// Create router
	router := api.NewRouter(accountService, optionService, dividendService, valuationService, quotes, auditLog, auditDB, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// runSweeps settles expired contracts, backfills dividend records and pays
// out any due dividends. Failures are logged and do not stop startup.
func runSweeps(optionService *service.OptionService, dividendService *service.DividendService) {
	now := time.Now()

	sweep, err := optionService.ExpirationSweep(now)
	if err != nil {
		log.Printf("Expiration sweep failed: %v", err)
	} else {
		log.Printf("Expiration sweep: %d exercised, %d expired, %d skipped", sweep.Exercised, sweep.Expired, len(sweep.Skipped))
	}

	detect, err := dividendService.DetectAndBackfill(now)
	if err != nil {
		log.Printf("Dividend detection failed: %v", err)
	} else {
		log.Printf("Dividend detection: %d created, %d skipped", detect.Created, len(detect.Skipped))
	}

	paid, err := dividendService.PaymentSweep(now)
	if err != nil {
		log.Printf("Dividend payment sweep failed: %v", err)
	} else {
		log.Printf("Dividend payment sweep: %d paid", paid.Paid)
	}
}
