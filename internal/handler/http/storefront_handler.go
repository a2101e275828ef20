package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/settings"
)

// StorefrontConfigResponse is what page templates need to render the shell:
// tracking pixels, the domain and, when enabled, the admin's custom scripts.
type StorefrontConfigResponse struct {
	Tracking      settings.Tracking  `json:"tracking"`
	DomainName    string             `json:"domain_name"`
	Categories    []catalog.Category `json:"categories"`
	CustomScripts string             `json:"custom_scripts,omitempty"`
}

type StorefrontHandler struct {
	settings           *settings.Store
	allowCustomScripts bool
}

func NewStorefrontHandler(store *settings.Store, allowCustomScripts bool) *StorefrontHandler {
	return &StorefrontHandler{settings: store, allowCustomScripts: allowCustomScripts}
}

func (h *StorefrontHandler) RegisterRoutes(router chi.Router) {
	router.Get("/storefront", h.handleGetConfig)
}

func (h *StorefrontHandler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s := h.settings.Get()

	response := StorefrontConfigResponse{
		Tracking:   s.Tracking,
		DomainName: s.Domain.Name,
		Categories: catalog.Categories,
	}
	// scripts are served unsanitised, so only when the operator opted in
	if h.allowCustomScripts {
		response.CustomScripts = s.Scripts.Custom
	}

	respondWithJSON(w, http.StatusOK, response)
}
