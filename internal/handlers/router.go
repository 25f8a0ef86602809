package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/vending-machine/internal/config"
	"github.com/Lixing-Zhang/vending-machine/internal/middleware"
	"github.com/Lixing-Zhang/vending-machine/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every API route onto a chi router.
// Read endpoints are public; endpoints that move money or stock require an API key.
func NewRouter(svc *service.VendingService, machine stockedSelections, auth config.AuthConfig, log *slog.Logger) http.Handler {
	healthHandler := NewHealthHandler(log, machine)
	itemHandler := NewItemHandler(svc, log)
	purchaseHandler := NewPurchaseHandler(svc, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/items", itemHandler.ListItems)
		r.Get("/items/{selection}", itemHandler.GetItem)
		r.Get("/items/{selection}/quote", itemHandler.QuoteItem)
		r.Get("/balance", purchaseHandler.GetBalance)

		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(auth))
			r.Post("/deposit", purchaseHandler.Deposit)
			r.Post("/purchase", purchaseHandler.Purchase)
		})
	})

	return r
}
