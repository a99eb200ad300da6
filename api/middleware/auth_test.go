package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authRouter(apiKeys []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(apiKeys))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func getWithHeaders(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_NoKeysConfiguredIsOpen(t *testing.T) {
	r := authRouter(nil)
	if w := getWithHeaders(r, nil); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with auth disabled", w.Code)
	}
}

func TestAuth_XAPIKeyHeader(t *testing.T) {
	r := authRouter([]string{"secret-key"})

	if w := getWithHeaders(r, map[string]string{"X-API-Key": "secret-key"}); w.Code != http.StatusOK {
		t.Errorf("valid key rejected: %d", w.Code)
	}
	if w := getWithHeaders(r, map[string]string{"X-API-Key": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("invalid key accepted: %d", w.Code)
	}
}

func TestAuth_BearerHeader(t *testing.T) {
	r := authRouter([]string{"secret-key"})
	w := getWithHeaders(r, map[string]string{"Authorization": "Bearer secret-key"})
	if w.Code != http.StatusOK {
		t.Errorf("bearer key rejected: %d", w.Code)
	}
}

func TestAuth_MissingKey(t *testing.T) {
	r := authRouter([]string{"secret-key"})
	if w := getWithHeaders(r, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing key accepted: %d", w.Code)
	}
}
