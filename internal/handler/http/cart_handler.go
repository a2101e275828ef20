package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/storefront"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type UpdateCartItemRequest struct {
	// Zero or negative removes the line.
	Quantity *int `json:"quantity" validate:"required"`
}

type CartResponse struct {
	Items []cart.Line     `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type CartHandler struct {
	store    *storefront.Storefront
	validate *validator.Validate
}

func NewCartHandler(store *storefront.Storefront) *CartHandler {
	return &CartHandler{
		store:    store,
		validate: newValidator(),
	}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleGetCart)
	router.Post("/cart/items", h.handleAddItem)
	router.Put("/cart/items/{id}", h.handleUpdateItem)
	router.Delete("/cart/items/{id}", h.handleRemoveItem)
}

func (h *CartHandler) cartResponse() CartResponse {
	lines := h.store.Cart.Lines()
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return CartResponse{Items: lines, Count: count, Total: cart.Sum(lines)}
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var requestPayload AddCartItemRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	if _, err := h.store.AddToCart(requestPayload.ProductID); err != nil {
		log.Warn().Err(err).Str("product_id", requestPayload.ProductID).Msg("Failed to add product to cart")
		respondWithError(w, mapErrorToStatusCode(err), "Product not found")
		return
	}

	respondWithJSON(w, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var requestPayload UpdateCartItemRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	h.store.Cart.SetQuantity(id, *requestPayload.Quantity)

	respondWithJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	h.store.Cart.Remove(chi.URLParam(r, "id"))

	respondWithJSON(w, http.StatusOK, h.cartResponse())
}
