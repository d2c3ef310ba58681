package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tonycardosa/afiliados-rst/internal/application"
)

// Handler is the HTTP adapter entrypoint for the sync and reporting use-cases.
// Keeping only the application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// NewRouter registers HTTP routes and the middleware stack.
// Centralizing routes here ensures consistent error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/sync/v1", func(r chi.Router) {
		r.Post("/orders", handler.syncOrders)
		r.Post("/brands", handler.syncBrands)
		r.Get("/commissions", handler.listCommissions)
		r.Get("/commissions/totals", handler.commissionTotals)
		r.Delete("/commissions/{commission_id}", handler.deleteCommission)
	})

	return r
}
