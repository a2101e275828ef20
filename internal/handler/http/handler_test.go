package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
	storeHttp "github.com/vasiliy-maslov/storefront/internal/handler/http"
	"github.com/vasiliy-maslov/storefront/internal/settings"
	"github.com/vasiliy-maslov/storefront/internal/storefront"
)

func newTestStorefront(t *testing.T) *storefront.Storefront {
	t.Helper()
	seed, err := catalog.LoadSeed("")
	require.NoError(t, err)
	return storefront.New(seed, settings.Defaults(), nil)
}

func newTestRouter(t *testing.T, sf *storefront.Storefront, cfg storeHttp.RouterConfig) chi.Router {
	t.Helper()
	return storeHttp.NewRouter(sf, cfg)
}

func doRequest(t *testing.T, router http.Handler, method, target string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reader = bytes.NewBuffer(nil)
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "Failed to decode response body: %s", rr.Body.String())
	return v
}
