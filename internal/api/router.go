package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gcoelho/carteira-manager-backend/internal/api/handlers"
	custommiddleware "github.com/gcoelho/carteira-manager-backend/internal/api/middleware"
	"github.com/gcoelho/carteira-manager-backend/internal/config"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
	"github.com/gcoelho/carteira-manager-backend/internal/scheduler"
	"github.com/gcoelho/carteira-manager-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	fundService *service.FundService,
	credentialsService *service.CredentialsService,
	perfRepo *repository.PerformanceRepository,
	sched *scheduler.Scheduler,
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

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			performanceHandler := handlers.NewPerformanceHandler(perfRepo)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Put("/fund/{id}", portfolioHandler.UpdateHolding)
			r.Delete("/fund/{id}", portfolioHandler.RemoveHolding)
			r.Get("/{id}", portfolioHandler.Portfolio)
			r.Put("/{id}", portfolioHandler.UpdatePortfolio)
			r.Delete("/{id}", portfolioHandler.DeletePortfolio)
			r.Get("/{id}/fund", portfolioHandler.Holdings)
			r.Post("/{id}/fund", portfolioHandler.AddHolding)
			r.Get("/{id}/performance", performanceHandler.History)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(fundService)
			r.Get("/", fundHandler.Funds)
			r.Post("/", fundHandler.CreateFund)
			r.Get("/{id}", fundHandler.Fund)
			r.Delete("/{id}", fundHandler.DeleteFund)
			r.Get("/{id}/quotas", fundHandler.QuotaCoverage)
		})

		// Internal job triggers, guarded by the API key
		r.Route("/jobs", func(r chi.Router) {
			r.Use(custommiddleware.APIKey(credentialsService))
			jobsHandler := handlers.NewJobsHandler(sched)
			r.Post("/import", jobsHandler.RunImport)
			r.Post("/performance", jobsHandler.RunPerformance)
		})
	})

	return r
}
