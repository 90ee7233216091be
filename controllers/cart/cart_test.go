package cartControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/kv"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, remote http.HandlerFunc, signedIn bool) (*gin.Engine, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, 5*time.Second)

	registry := session.NewRegistry(kv.NewMemory(), time.Hour, time.Second)
	s := registry.Create(context.Background(), !signedIn)
	if signedIn {
		require.NoError(t, s.Auth.Login(context.Background(), "tok"))
	}

	r := gin.New()
	g := r.Group("/user/cart", func(c *gin.Context) { middleware.SetSession(c, s) })
	g.GET("", GetCart(client))
	g.POST("", AddCartItem(client))
	g.PUT("/:id", UpdateCartItem())
	g.DELETE("/:id", DeleteCartItem(client))
	g.DELETE("", ClearCart(client))
	return r, s
}

func call(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cartBody struct {
	Items   []models.CartItem `json:"items"`
	Totals  models.Totals     `json:"totals"`
	Summary struct {
		Total string `json:"total"`
	} `json:"summary"`
	Message string `json:"message"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var out cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func unreachable(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected remote call %s", r.URL.Path)
	}
}

func TestGuestCartFlow(t *testing.T) {
	r, _ := newRouter(t, unreachable(t), false)

	item := models.CartItem{ID: "1", Name: "Mug", Price: 10, Quantity: 2, Discount: 1, DiscountType: models.DiscountFlat, Tax: 10, ShippingCost: 5}
	w := call(r, http.MethodPost, "/user/cart", item)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 25.0, body.Totals.Total)
	assert.Equal(t, "25.00", body.Summary.Total)

	w = call(r, http.MethodPost, "/user/cart", item)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item already in cart", decode(t, w).Message)

	w = call(r, http.MethodPut, "/user/cart/1", QuantityInput{Action: "increment"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode(t, w).Items[0].Quantity)

	w = call(r, http.MethodPut, "/user/cart/1", QuantityInput{Quantity: 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode(t, w).Items[0].Quantity)

	w = call(r, http.MethodPut, "/user/cart/1", QuantityInput{Action: "decrement"})
	assert.Equal(t, 1, decode(t, w).Items[0].Quantity)

	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPut, "/user/cart/1", QuantityInput{Action: "double"}).Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodPut, "/user/cart/9", QuantityInput{Quantity: 2}).Code)

	w = call(r, http.MethodDelete, "/user/cart/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Items)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodDelete, "/user/cart/1", nil).Code)
}

func TestAddCartItemRequiresID(t *testing.T) {
	r, _ := newRouter(t, unreachable(t), false)
	w := call(r, http.MethodPost, "/user/cart", map[string]any{"name": "Mug"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignedInCartLoadsRemote(t *testing.T) {
	r, s := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, api.PathCart, req.URL.Path)
		assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"product_id":42,"name":"Mug","price":12.5,"quantity":2,"shipping_cost":3}]`))
	}, true)

	w := call(r, http.MethodGet, "/user/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "42", body.Items[0].ID)
	assert.Equal(t, 28.0, body.Totals.Total)

	item, ok := s.Store.CartItem("42")
	require.True(t, ok)
	assert.Equal(t, "7", item.Key)
}

func TestSignedInAddAndRemoveSyncRemote(t *testing.T) {
	var removed atomic.Value
	r, _ := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch req.URL.Path {
		case api.PathCartAdd:
			_, _ = w.Write([]byte(`{"message":"Successfully added!"}`))
		case api.PathCart:
			_, _ = w.Write([]byte(`[{"id":7,"product_id":42,"quantity":1}]`))
		case api.PathCartRemove:
			_ = req.ParseMultipartForm(1 << 20)
			removed.Store(req.FormValue("key"))
			_, _ = w.Write([]byte(`{"message":"Successfully removed!"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, true)

	w := call(r, http.MethodPost, "/user/cart", models.CartItem{ID: "42", Quantity: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Successfully added!", decode(t, w).Message)

	w = call(r, http.MethodDelete, "/user/cart/42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", removed.Load())
}

func TestSignedInRemoteFailure(t *testing.T) {
	r, s := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"down"}`))
	}, true)

	w := call(r, http.MethodPost, "/user/cart", models.CartItem{ID: "42", Quantity: 1})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, s.Store.Cart())

	assert.Equal(t, http.StatusBadGateway, call(r, http.MethodGet, "/user/cart", nil).Code)
	assert.Equal(t, http.StatusBadGateway, call(r, http.MethodDelete, "/user/cart", nil).Code)
}

func TestClearCart(t *testing.T) {
	r, s := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, api.PathCartClear, req.URL.Path)
		_, _ = w.Write([]byte("Successfully removed"))
	}, true)
	s.Store.AddCartItem(models.CartItem{ID: "1", Quantity: 1})
	s.Views.Cart.Set(s.Store.Cart())

	w := call(r, http.MethodDelete, "/user/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Items)
	assert.Empty(t, s.Store.Cart())
	assert.Empty(t, s.Views.Cart.Snapshot().Data)
}
