package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

type CatalogHandler struct {
	catalog *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{catalog: store}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProduct)
}

// GET /products?cat=cars
func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := catalog.Category(r.URL.Query().Get("cat"))
	if category != "" && !category.Valid() {
		log.Warn().Str("category", category.String()).Msg("Unknown category filter")
		respondWithError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	respondWithJSON(w, http.StatusOK, ProductsResponse{Products: h.catalog.FilterByCategory(category)})
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.catalog.FindByID(id)
	if err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("Failed to get product by id")
		respondWithError(w, mapErrorToStatusCode(err), "Product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}
