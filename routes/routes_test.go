package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	orderControllers "github.com/junaidrashid-git/revista-gateway/controllers/order"
	"github.com/junaidrashid-git/revista-gateway/events"
	"github.com/junaidrashid-git/revista-gateway/kv"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T) (*gin.Engine, *events.Recorder) {
	t.Helper()
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(remote.Close)

	publisher := &events.Recorder{}
	r := gin.New()
	SetupRoutes(r, Deps{
		Registry:    session.NewRegistry(kv.NewMemory(), time.Hour, time.Second),
		Client:      api.NewClient(remote.URL, 5*time.Second),
		Publisher:   publisher,
		Hub:         orderControllers.NewHub(),
		JWTSecret:   "secret",
		AdminAPIKey: "admin-key",
	})
	return r, publisher
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newEngine(t)
	w := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r, _ := newEngine(t)
	for _, path := range []string{"/user/cart", "/orders", "/session"} {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, path, "", nil).Code, path)
	}
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/admin/sessions", "", nil).Code)
}

func TestGuestCheckoutFlow(t *testing.T) {
	r, publisher := newEngine(t)

	w := do(r, http.MethodPost, "/auth/guest", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var guest struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &guest))

	item := models.CartItem{ID: "1", Name: "Mug", Price: 10, Quantity: 2, Discount: 10, DiscountType: models.DiscountPercent}
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/user/cart", guest.Token, item).Code)

	w = do(r, http.MethodPost, "/checkout/summary", guest.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":"18.00"`)

	w = do(r, http.MethodPost, "/checkout/place", guest.Token, map[string]string{"payment_method": "cod"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, publisher.Events(), 1)

	w = do(r, http.MethodGet, "/orders", guest.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders.Orders, 1)
	assert.Equal(t, 18.0, orders.Orders[0].Total)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/auth/logout", guest.Token, nil).Code)
	w = do(r, http.MethodGet, "/orders", guest.Token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders.Orders, 1)

	req := httptest.NewRequest(http.MethodGet, "/admin/sessions", nil)
	req.Header.Set("X-API-KEY", "admin-key")
	aw := httptest.NewRecorder()
	r.ServeHTTP(aw, req)
	assert.Equal(t, http.StatusOK, aw.Code)
	assert.Contains(t, aw.Body.String(), `"count":1`)
}
