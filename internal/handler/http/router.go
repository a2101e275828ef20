package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vasiliy-maslov/storefront/internal/order"
	"github.com/vasiliy-maslov/storefront/internal/storefront"
)

type RouterConfig struct {
	AdminToken         string
	AllowCustomScripts bool
	Exporter           *order.CSVExporter
	// Delivery cities accepted at checkout; empty accepts any city.
	Cities []string
}

// NewRouter mounts the public shop API and the admin dashboard API.
func NewRouter(store *storefront.Storefront, cfg RouterConfig) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		NewCatalogHandler(store.Catalog).RegisterRoutes(r)
		NewCartHandler(store).RegisterRoutes(r)
		NewCheckoutHandler(store.Orders, cfg.Cities).RegisterRoutes(r)
		NewStorefrontHandler(store.Settings, cfg.AllowCustomScripts).RegisterRoutes(r)

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(AdminTokenMiddleware(cfg.AdminToken))
			NewDashboardHandler(store, cfg.Exporter, cfg.AllowCustomScripts).RegisterRoutes(r)
		})
	})

	return router
}
