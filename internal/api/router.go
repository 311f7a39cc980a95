package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/handlers"
	custommiddleware "github.com/brokersim/Brokerage-Account-Backend/internal/api/middleware"
	"github.com/brokersim/Brokerage-Account-Backend/internal/audit"
	"github.com/brokersim/Brokerage-Account-Backend/internal/config"
	"github.com/brokersim/Brokerage-Account-Backend/internal/quote"
	"github.com/brokersim/Brokerage-Account-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router. Mutating routes are
// guarded by the API key middleware when a key is configured.
func NewRouter(
	accountService *service.AccountService,
	optionService *service.OptionService,
	dividendService *service.DividendService,
	valuationService *service.ValuationService,
	quotes quote.Provider,
	auditLog *audit.Log,
	auditDB *sql.DB,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	apiKey := custommiddleware.NewAPIKey(cfg.API.Key)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(auditDB)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(valuationService)
			r.Get("/", portfolioHandler.Snapshot)
		})

		stockHandler := handlers.NewStockHandler(accountService, quotes)
		r.Route("/stock", func(r chi.Router) {
			r.With(apiKey).Post("/buy", stockHandler.BuyStock)
			r.With(apiKey).Post("/sell", stockHandler.SellStock)
		})

		r.Route("/cash", func(r chi.Router) {
			r.Get("/", stockHandler.Cash)
			r.With(apiKey).Post("/", stockHandler.AdjustCash)
		})

		r.Route("/option", func(r chi.Router) {
			optionHandler := handlers.NewOptionHandler(optionService)
			r.Get("/", optionHandler.Contracts)
			r.With(apiKey).Post("/", optionHandler.CreateCoveredCall)
			r.With(apiKey).Post("/sweep", optionHandler.ExpirationSweep)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.With(apiKey).Post("/exercise", optionHandler.ExerciseContract)
			})
		})

		r.Route("/dividend", func(r chi.Router) {
			dividendHandler := handlers.NewDividendHandler(dividendService)
			r.Get("/", dividendHandler.Dividends)
			r.With(apiKey).Post("/", dividendHandler.CreateDividend)
			r.With(apiKey).Post("/detect", dividendHandler.DetectAndBackfill)
			r.With(apiKey).Post("/sweep", dividendHandler.PaymentSweep)
		})

		r.Route("/events", func(r chi.Router) {
			eventHandler := handlers.NewEventHandler(auditLog)
			r.Get("/", eventHandler.Events)
		})
	})

	return r
}
