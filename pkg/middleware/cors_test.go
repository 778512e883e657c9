package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveCORS(cfg CORSConfig, method, origin string, preflight bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/reviews", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	}
	rr := httptest.NewRecorder()
	CORS(cfg)(okHandler()).ServeHTTP(rr, req)
	return rr
}

func TestCORS_WildcardByDefault(t *testing.T) {
	rr := serveCORS(CORSConfig{}, http.MethodGet, "https://app.schedula.test", false)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), PatientIDHeader)
	assert.Equal(t, "3600", rr.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"https://app.schedula.test"}}

	rr := serveCORS(cfg, http.MethodGet, "https://app.schedula.test", false)
	assert.Equal(t, "https://app.schedula.test", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rr.Header().Get("Vary"))

	rr = serveCORS(cfg, http.MethodGet, "https://evil.test", false)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_CredentialsEchoOrigin(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}

	rr := serveCORS(cfg, http.MethodGet, "https://app.schedula.test", false)
	assert.Equal(t, "https://app.schedula.test", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight(t *testing.T) {
	rr := serveCORS(CORSConfig{}, http.MethodOptions, "https://app.schedula.test", true)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	assert.Equal(t, CorrelationIDHeader, rr.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORS_PlainOptionsPassesThrough(t *testing.T) {
	rr := serveCORS(CORSConfig{}, http.MethodOptions, "", false)
	assert.Equal(t, http.StatusOK, rr.Code)
}
