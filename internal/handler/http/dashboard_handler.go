package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/order"
	"github.com/vasiliy-maslov/storefront/internal/settings"
	"github.com/vasiliy-maslov/storefront/internal/storefront"
)

type CreateProductRequest struct {
	// Generated when empty.
	ID             string          `json:"id" validate:"omitempty,max=64"`
	Name           string          `json:"name" validate:"required,max=200"`
	Description    string          `json:"description" validate:"max=2000"`
	Price          decimal.Decimal `json:"price" validate:"decimal_gte=0"`
	Category       string          `json:"category" validate:"required,oneof=electronics home cars"`
	Image          string          `json:"image" validate:"omitempty,url"`
	Specifications []string        `json:"specifications" validate:"omitempty,dive,required"`
}

type OrdersResponse struct {
	Orders []order.Order `json:"orders"`
}

type TrackingRequest struct {
	FacebookPixel   string `json:"facebook_pixel" validate:"max=64"`
	GoogleAnalytics string `json:"google_analytics" validate:"max=64"`
	TikTokPixel     string `json:"tiktok_pixel" validate:"max=64"`
}

type IntegrationRequest struct {
	WebhookURL string `json:"google_sheets_webhook" validate:"omitempty,http_url"`
}

type DomainRequest struct {
	Name        string   `json:"domain_name" validate:"required,fqdn"`
	NameServers []string `json:"name_servers" validate:"omitempty,dive,fqdn"`
}

type ScriptsRequest struct {
	Custom string `json:"custom_scripts" validate:"max=65536"`
}

type SettingsPatchRequest struct {
	FacebookPixel   *string   `json:"facebook_pixel,omitempty" validate:"omitempty,max=64"`
	GoogleAnalytics *string   `json:"google_analytics,omitempty" validate:"omitempty,max=64"`
	TikTokPixel     *string   `json:"tiktok_pixel,omitempty" validate:"omitempty,max=64"`
	WebhookURL      *string   `json:"google_sheets_webhook,omitempty" validate:"omitempty,http_url"`
	DomainName      *string   `json:"domain_name,omitempty" validate:"omitempty,fqdn"`
	NameServers     *[]string `json:"name_servers,omitempty" validate:"omitempty,dive,fqdn"`
	CustomScripts   *string   `json:"custom_scripts,omitempty" validate:"omitempty,max=65536"`
}

type DashboardHandler struct {
	store              *storefront.Storefront
	exporter           *order.CSVExporter
	allowCustomScripts bool
	validate           *validator.Validate
}

func NewDashboardHandler(store *storefront.Storefront, exporter *order.CSVExporter, allowCustomScripts bool) *DashboardHandler {
	if exporter == nil {
		exporter = order.NewCSVExporter(language.English, "MAD")
	}
	return &DashboardHandler{
		store:              store,
		exporter:           exporter,
		allowCustomScripts: allowCustomScripts,
		validate:           newValidator(),
	}
}

func (h *DashboardHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Post("/products", h.handleCreateProduct)
	router.Delete("/products/{id}", h.handleDeleteProduct)

	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/export", h.handleExportOrders)
	router.Get("/orders/{id}", h.handleGetOrder)

	router.Get("/settings", h.handleGetSettings)
	router.Patch("/settings", h.handlePatchSettings)
	router.Put("/settings/tracking", h.handleUpdateTracking)
	router.Put("/settings/integration", h.handleUpdateIntegration)
	router.Put("/settings/domain", h.handleUpdateDomain)
	router.Put("/settings/scripts", h.handleUpdateScripts)
}

func (h *DashboardHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ProductsResponse{Products: h.store.Catalog.List()})
}

func (h *DashboardHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateProductRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	id := requestPayload.ID
	if id == "" {
		generated, err := uuid.NewV4()
		if err != nil {
			log.Error().Err(err).Msg("Failed to generate product id")
			respondWithError(w, http.StatusInternalServerError, "Failed to create product")
			return
		}
		id = generated.String()
	}

	specifications := requestPayload.Specifications
	if specifications == nil {
		specifications = []string{}
	}

	p := catalog.Product{
		ID:             id,
		Name:           requestPayload.Name,
		Description:    requestPayload.Description,
		Price:          requestPayload.Price,
		Category:       catalog.Category(requestPayload.Category),
		Image:          requestPayload.Image,
		Specifications: specifications,
	}

	if err := h.store.Catalog.AddUnique(p); err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("Failed to add product")

		var clientMessage string
		if errors.Is(err, catalog.ErrDuplicateProductID) {
			clientMessage = "Product with this id already exists"
		} else {
			clientMessage = "Failed to create product"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	log.Info().Str("product_id", id).Msg("Product added to catalog")
	respondWithJSON(w, http.StatusCreated, p)
}

func (h *DashboardHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.store.Catalog.Remove(id)

	log.Info().Str("product_id", id).Msg("Product removed from catalog")
	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, OrdersResponse{Orders: h.store.Orders.ListOrders(r.Context())})
}

func (h *DashboardHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.store.Orders.GetOrderByID(r.Context(), id)
	if err != nil {
		var clientMessage string
		if errors.Is(err, order.ErrOrderNotFound) {
			clientMessage = "Order not found"
		} else {
			log.Error().Err(err).Str("order_id", id).Msg("Failed to get order by id via service")
			clientMessage = "Failed to get order"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *DashboardHandler) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, h.store.Orders.ListOrders(r.Context())); err != nil {
		log.Error().Err(err).Msg("Failed to export orders")
		respondWithError(w, http.StatusInternalServerError, "Failed to export orders")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("Failed to write orders export")
	}
}

func (h *DashboardHandler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.store.Settings.Get())
}

func (h *DashboardHandler) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var requestPayload SettingsPatchRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	if requestPayload.CustomScripts != nil && !h.allowCustomScripts {
		h.rejectScripts(w)
		return
	}

	updated := h.store.Settings.Update(settings.Patch{
		FacebookPixel:   requestPayload.FacebookPixel,
		GoogleAnalytics: requestPayload.GoogleAnalytics,
		TikTokPixel:     requestPayload.TikTokPixel,
		WebhookURL:      requestPayload.WebhookURL,
		DomainName:      requestPayload.DomainName,
		NameServers:     requestPayload.NameServers,
		CustomScripts:   requestPayload.CustomScripts,
	})

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *DashboardHandler) handleUpdateTracking(w http.ResponseWriter, r *http.Request) {
	var requestPayload TrackingRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated := h.store.Settings.UpdateTracking(settings.Tracking{
		FacebookPixel:   requestPayload.FacebookPixel,
		GoogleAnalytics: requestPayload.GoogleAnalytics,
		TikTokPixel:     requestPayload.TikTokPixel,
	})
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *DashboardHandler) handleUpdateIntegration(w http.ResponseWriter, r *http.Request) {
	var requestPayload IntegrationRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated := h.store.Settings.UpdateIntegration(settings.Integration{WebhookURL: requestPayload.WebhookURL})
	log.Info().Bool("webhook_enabled", requestPayload.WebhookURL != "").Msg("Order webhook updated")
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *DashboardHandler) handleUpdateDomain(w http.ResponseWriter, r *http.Request) {
	var requestPayload DomainRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated := h.store.Settings.UpdateDomain(settings.Domain{
		Name:        requestPayload.Name,
		NameServers: requestPayload.NameServers,
	})
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *DashboardHandler) handleUpdateScripts(w http.ResponseWriter, r *http.Request) {
	if !h.allowCustomScripts {
		h.rejectScripts(w)
		return
	}

	var requestPayload ScriptsRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated := h.store.Settings.UpdateScripts(settings.Scripts{Custom: requestPayload.Custom})
	log.Warn().Int("script_bytes", len(requestPayload.Custom)).Msg("Custom storefront scripts replaced")
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *DashboardHandler) rejectScripts(w http.ResponseWriter) {
	log.Warn().Msg("Rejected custom script update: feature disabled")
	respondWithError(w, mapErrorToStatusCode(errScriptsDisabled), "Custom scripts are disabled")
}
