package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceHistory/internal/config"
	"PriceHistory/internal/model"
)

func TestParseAllowedOrigins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"mixed", "http://a.com, ,bad header\nvalue,http://b.com", []string{"http://a.com", "http://b.com"}},
		{"empty", "", nil},
		{"only separators", " , ,, ", nil},
		{"trimmed", "  https://dca.btc.sv  ", []string{"https://dca.btc.sv"}},
		{"duplicates", "http://a.com,http://a.com", []string{"http://a.com"}},
		{"control char", "http://a.com\x00", nil},
		{"defaults", config.DefaultAllowedOrigins,
			[]string{"http://localhost:3000", "http://127.0.0.1:3000", "https://dca.btc.sv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAllowedOrigins(tt.raw))
		})
	}
}

func corsRequest(t *testing.T, h http.Handler, method, origin string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/history/BTC", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS_AllowedOrigin(t *testing.T) {
	h := newTestServer(&fakeFetcher{records: []model.PriceRecord{{Date: "2024-01-01", Close: 1}}})

	rec := corsRequest(t, h, http.MethodGet, "http://a.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://a.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	h := newTestServer(&fakeFetcher{records: []model.PriceRecord{{Date: "2024-01-01", Close: 1}}})

	rec := corsRequest(t, h, http.MethodGet, "http://evil.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "the browser, not the server, blocks the response")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	h := newTestServer(&fakeFetcher{records: []model.PriceRecord{{Date: "2024-01-01", Close: 1}}})

	rec := corsRequest(t, h, http.MethodGet, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	f := &fakeFetcher{}
	h := newTestServer(f)

	rec := corsRequest(t, h, http.MethodOptions, "http://a.com", map[string]string{
		"Access-Control-Request-Method":  "GET",
		"Access-Control-Request-Headers": "Content-Type",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://a.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, f.calls, "preflight never reaches the handler")

	rec = corsRequest(t, h, http.MethodOptions, "http://a.com", map[string]string{
		"Access-Control-Request-Method": "DELETE",
	})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = corsRequest(t, h, http.MethodOptions, "http://a.com", map[string]string{
		"Access-Control-Request-Method":  "GET",
		"Access-Control-Request-Headers": "Authorization",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.calls)
}

// The effective header set is Accept and Content-Type plus the CORS-safelisted
// request headers the library always accepts.
func TestCORS_PreflightHeaderSet(t *testing.T) {
	h := newTestServer(&fakeFetcher{})

	for _, hdr := range []string{"Accept", "Content-Type", "Accept-Language", "Content-Language", "Origin"} {
		rec := corsRequest(t, h, http.MethodOptions, "http://a.com", map[string]string{
			"Access-Control-Request-Method":  "GET",
			"Access-Control-Request-Headers": hdr,
		})
		assert.Equal(t, http.StatusOK, rec.Code, hdr)
	}

	for _, hdr := range []string{"Authorization", "X-Custom", "Content-Type, X-Requested-With"} {
		rec := corsRequest(t, h, http.MethodOptions, "http://a.com", map[string]string{
			"Access-Control-Request-Method":  "GET",
			"Access-Control-Request-Headers": hdr,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code, hdr)
	}
}

func TestCORS_EmptyListAllowsNobody(t *testing.T) {
	h := NewCORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, origin := range []string{"http://a.com", "http://localhost:3000", "*"} {
		rec := corsRequest(t, h, http.MethodGet, origin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), origin)
	}
}
