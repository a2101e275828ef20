package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront/internal/order"
)

type CheckoutRequest struct {
	Name  string `json:"name" validate:"required"`
	City  string `json:"city" validate:"required,delivery_city"`
	Phone string `json:"phone" validate:"required"`
}

type CheckoutResponse struct {
	OrderID string      `json:"order_id"`
	Order   order.Order `json:"order"`
}

type CheckoutHandler struct {
	orders   order.Service
	validate *validator.Validate
}

// NewCheckoutHandler accepts orders for the given delivery cities. With no
// cities configured any non-empty city is accepted.
func NewCheckoutHandler(orders order.Service, cities []string) *CheckoutHandler {
	allowed := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		allowed[c] = struct{}{}
	}

	validate := newValidator()
	err := validate.RegisterValidation("delivery_city", func(fl validator.FieldLevel) bool {
		if len(allowed) == 0 {
			return true
		}
		_, ok := allowed[fl.Field().String()]
		return ok
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register delivery_city validation")
	}

	return &CheckoutHandler{
		orders:   orders,
		validate: validate,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router chi.Router) {
	router.Post("/checkout", h.handleCheckout)
}

// POST /checkout
func (h *CheckoutHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var requestPayload CheckoutRequest
	if !decodeJSON(w, r, &requestPayload) {
		return
	}

	// whitespace-only fields count as missing
	requestPayload.Name = strings.TrimSpace(requestPayload.Name)
	requestPayload.City = strings.TrimSpace(requestPayload.City)
	requestPayload.Phone = strings.TrimSpace(requestPayload.Phone)

	if !validateRequest(w, h.validate, &requestPayload) {
		return
	}

	customer := order.Customer{
		Name:  requestPayload.Name,
		City:  requestPayload.City,
		Phone: requestPayload.Phone,
	}

	placed, err := h.orders.PlaceOrder(r.Context(), customer)
	if err != nil {
		log.Error().Err(err).Msg("Failed to place order via service")

		var clientMessage string
		if errors.Is(err, order.ErrEmptyCart) {
			clientMessage = "Cart is empty"
		} else {
			clientMessage = "Failed to place order"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, CheckoutResponse{OrderID: placed.ID, Order: *placed})
}
