package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/stitchdesk/backend/internal/infrastructure/auth"
	"github.com/stitchdesk/backend/internal/infrastructure/config"
	"github.com/stitchdesk/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testHandlers() Handlers {
	return Handlers{
		Health:     handler.NewHealthHandler(nil),
		Auth:       handler.NewAuthHandler(nil),
		Customer:   handler.NewCustomerHandler(nil),
		Jobber:     handler.NewJobberHandler(nil),
		Outfit:     handler.NewOutfitHandler(nil),
		Attachment: handler.NewAttachmentHandler(nil),
		Draft:      handler.NewDraftHandler(nil),
		Order:      handler.NewOrderHandler(nil),
		Payment:    handler.NewPaymentHandler(nil),
	}
}

func TestNew_HealthEndpoints(t *testing.T) {
	engine := New(Config{Handlers: testHandlers()})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	// No database configured means the service is not ready
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNew_UnknownRoute(t *testing.T) {
	engine := New(Config{Handlers: testHandlers()})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNew_RequestIDHeader(t *testing.T) {
	engine := New(Config{Handlers: testHandlers()})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNew_CORSPreflight(t *testing.T) {
	engine := New(Config{
		Handlers:    testHandlers(),
		CORSOrigins: []string{"https://app.example.com"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/customers", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNew_JWTGuardsAPIRoutes(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-0123456789abcdef",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "stitchdesk-test",
	})

	engine := New(Config{
		Logger:     zaptest.NewLogger(t),
		JWTService: jwtService,
		Handlers:   testHandlers(),
	})

	// Protected route without a token
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login stays reachable without a token; it fails on the empty
	// body, not on authentication
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	require.NotEqual(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNew_BodyLimit(t *testing.T) {
	engine := New(Config{
		Handlers:     testHandlers(),
		MaxBodyBytes: 64,
	})

	body := strings.NewReader(`{"padding":"` + strings.Repeat("x", 256) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
