package http_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
	storeHttp "github.com/vasiliy-maslov/storefront/internal/handler/http"
	"github.com/vasiliy-maslov/storefront/internal/order"
	"github.com/vasiliy-maslov/storefront/internal/settings"
)

const testAdminToken = "s3cret"

func adminHeaders() []string {
	return []string{storeHttp.AdminTokenHeader, testAdminToken}
}

func TestDashboard_RequiresAdminToken(t *testing.T) {
	router := newTestRouter(t, newTestStorefront(t), storeHttp.RouterConfig{AdminToken: testAdminToken})

	rr := doRequest(t, router, http.MethodGet, "/api/v1/dashboard/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Admin token required"}`, rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, "/api/v1/dashboard/orders", nil, storeHttp.AdminTokenHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/dashboard/orders", nil, adminHeaders()...)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, rr.Code, "public routes stay open")
}

func TestDashboard_OpenWithoutConfiguredToken(t *testing.T) {
	router := newTestRouter(t, newTestStorefront(t), storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodGet, "/api/v1/dashboard/settings", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDashboard_CreateProduct(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{AdminToken: testAdminToken})

	body := `{"id":"5","name":"Vacuum","price":"999.50","category":"home","specifications":["cordless"]}`
	rr := doRequest(t, router, http.MethodPost, "/api/v1/dashboard/products", body, adminHeaders()...)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	created := decodeBody[catalog.Product](t, rr)
	assert.Equal(t, "5", created.ID)
	assert.Equal(t, catalog.CategoryHome, created.Category)
	assert.Equal(t, "999.5", created.Price.String())

	assert.Equal(t, 5, sf.Catalog.Len())
	home := sf.Catalog.FilterByCategory(catalog.CategoryHome)
	require.Len(t, home, 2)
	assert.Equal(t, "5", home[1].ID, "new products are appended")

	rr = doRequest(t, router, http.MethodPost, "/api/v1/dashboard/products", body, adminHeaders()...)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, 5, sf.Catalog.Len())
}

func TestDashboard_CreateProductGeneratesID(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodPost, "/api/v1/dashboard/products", `{"name":"Kia","price":90000,"category":"cars"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	created := decodeBody[catalog.Product](t, rr)
	assert.NotEmpty(t, created.ID)
	assert.NotNil(t, created.Specifications)
	assert.True(t, sf.Catalog.Exists(created.ID))
}

func TestDashboard_CreateProductValidation(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodPost, "/api/v1/dashboard/products", `{"price":"-1","category":"boats","image":"not a url"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeBody[storeHttp.ValidationErrorResponse](t, rr)
	assert.Equal(t, "is required", resp.Details["name"])
	assert.Equal(t, "must be greater than or equal to 0", resp.Details["price"])
	assert.Equal(t, "must be one of: electronics home cars", resp.Details["category"])
	assert.Equal(t, "must be a valid URL", resp.Details["image"])
	assert.Equal(t, 4, sf.Catalog.Len())
}

func TestDashboard_DeleteProduct(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodDelete, "/api/v1/dashboard/products/3", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.False(t, sf.Catalog.Exists("3"))
	assert.Empty(t, sf.Catalog.FilterByCategory(catalog.CategoryCars))

	rr = doRequest(t, router, http.MethodDelete, "/api/v1/dashboard/products/3", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code, "deleting twice is harmless")
	assert.Equal(t, 3, sf.Catalog.Len())
}

func TestDashboard_Orders(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	var ids []string
	for _, productID := range []string{"1", "2"} {
		_, err := sf.AddToCart(productID)
		require.NoError(t, err)
		placed, err := sf.Orders.PlaceOrder(context.Background(), order.Customer{Name: "Sara", City: "طنجة", Phone: "0700"})
		require.NoError(t, err)
		ids = append(ids, placed.ID)
	}

	rr := doRequest(t, router, http.MethodGet, "/api/v1/dashboard/orders", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[storeHttp.OrdersResponse](t, rr)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, ids[1], resp.Orders[0].ID, "most recent first")
	assert.Equal(t, ids[0], resp.Orders[1].ID)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/dashboard/orders/"+ids[0], nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[order.Order](t, rr)
	assert.Equal(t, "14500", got.Total.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, "1", got.Items[0].ID)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/dashboard/orders/NOPE00000", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Order not found"}`, rr.Body.String())
}

func TestDashboard_ExportOrders(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	_, err := sf.AddToCart("2")
	require.NoError(t, err)
	placed, err := sf.Orders.PlaceOrder(context.Background(), order.Customer{Name: "Sara", City: "فاس", Phone: "0700"})
	require.NoError(t, err)

	rr := doRequest(t, router, http.MethodGet, "/api/v1/dashboard/orders/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "orders.csv")

	records, err := csv.NewReader(strings.NewReader(rr.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "customer_name", "city", "phone", "items", "total", "date", "status"}, records[0])
	assert.Equal(t, placed.ID, records[1][0])
	assert.Equal(t, "1", records[1][4])
	assert.Equal(t, "MAD 1,800", records[1][5])
	assert.Equal(t, "pending", records[1][7])
}

func TestDashboard_SettingsGroups(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodGet, "/api/v1/dashboard/settings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, settings.Defaults(), decodeBody[settings.Settings](t, rr))

	rr = doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/tracking", storeHttp.TrackingRequest{FacebookPixel: "FB-1", TikTokPixel: "TT-9"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, settings.Tracking{FacebookPixel: "FB-1", TikTokPixel: "TT-9"}, sf.Settings.Get().Tracking)

	rr = doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/integration", storeHttp.IntegrationRequest{WebhookURL: "https://script.google.com/macros/s/abc/exec"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", sf.Settings.WebhookURL())

	rr = doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/integration", storeHttp.IntegrationRequest{})
	require.Equal(t, http.StatusOK, rr.Code, "clearing the webhook is allowed")
	assert.Empty(t, sf.Settings.WebhookURL())

	rr = doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/domain", storeHttp.DomainRequest{Name: "shop.example.ma", NameServers: []string{"ns1.example.ma"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, settings.Domain{Name: "shop.example.ma", NameServers: []string{"ns1.example.ma"}}, sf.Settings.Get().Domain)
	assert.Equal(t, "FB-1", sf.Settings.Get().Tracking.FacebookPixel, "other groups untouched")
}

func TestDashboard_SettingsValidation(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/integration", storeHttp.IntegrationRequest{WebhookURL: "sheets"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "must be a valid URL", decodeBody[storeHttp.ValidationErrorResponse](t, rr).Details["google_sheets_webhook"])

	rr = doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/domain", storeHttp.DomainRequest{Name: "not a host"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "must be a valid host name", decodeBody[storeHttp.ValidationErrorResponse](t, rr).Details["domain_name"])

	assert.Equal(t, settings.Defaults(), sf.Settings.Get())
}

func TestDashboard_PatchSettings(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodPatch, "/api/v1/dashboard/settings", `{"google_analytics":"G-123","domain_name":"souk.ma"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeBody[settings.Settings](t, rr)
	assert.Equal(t, "G-123", got.Tracking.GoogleAnalytics)
	assert.Equal(t, "souk.ma", got.Domain.Name)
	assert.Equal(t, []string{"ns1.hosting.com", "ns2.hosting.com"}, got.Domain.NameServers)
	assert.Equal(t, got, sf.Settings.Get())
}

func TestDashboard_ScriptsDisabled(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/scripts", storeHttp.ScriptsRequest{Custom: "<script>x()</script>"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error":"Custom scripts are disabled"}`, rr.Body.String())

	rr = doRequest(t, router, http.MethodPatch, "/api/v1/dashboard/settings", `{"custom_scripts":"<script>x()</script>","tiktok_pixel":"TT"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	assert.Equal(t, settings.Defaults(), sf.Settings.Get(), "rejected patch applies nothing")
}

func TestDashboard_ScriptsEnabled(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{AllowCustomScripts: true})

	rr := doRequest(t, router, http.MethodPut, "/api/v1/dashboard/settings/scripts", storeHttp.ScriptsRequest{Custom: "<script>x()</script>"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<script>x()</script>", sf.Settings.Get().Scripts.Custom)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/storefront", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<script>x()</script>", decodeBody[storeHttp.StorefrontConfigResponse](t, rr).CustomScripts)
}

func TestDashboard_CreateProductRejectsTinyNegativePrice(t *testing.T) {
	sf := newTestStorefront(t)
	router := newTestRouter(t, sf, storeHttp.RouterConfig{})

	// rounds to -0 as a float64
	price := "-0." + strings.Repeat("0", 400) + "1"
	rr := doRequest(t, router, http.MethodPost, "/api/v1/dashboard/products", `{"name":"Lamp","price":"`+price+`","category":"home"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Equal(t, "must be greater than or equal to 0", decodeBody[storeHttp.ValidationErrorResponse](t, rr).Details["price"])
	assert.Equal(t, 4, sf.Catalog.Len())
}

func TestDashboard_SettingsWireFormat(t *testing.T) {
	router := newTestRouter(t, newTestStorefront(t), storeHttp.RouterConfig{})

	rr := doRequest(t, router, http.MethodGet, "/api/v1/dashboard/settings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"tracking": {"facebook_pixel": "", "google_analytics": "", "tiktok_pixel": ""},
		"integration": {"google_sheets_webhook": ""},
		"domain": {"domain_name": "www.my-morocco-store.com", "name_servers": ["ns1.hosting.com", "ns2.hosting.com"]},
		"scripts": {"custom_scripts": ""}
	}`, rr.Body.String())
}
