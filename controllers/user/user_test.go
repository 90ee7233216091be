package userControllers

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
	"github.com/junaidrashid-git/revista-gateway/store"
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
	g := r.Group("", func(c *gin.Context) { middleware.SetSession(c, s) })
	g.GET("/session", GetSession())

	addr := g.Group("/user/addresses")
	addr.GET("", GetAddresses())
	addr.POST("", AddAddress(client))
	addr.PUT("/:id", UpdateAddress())
	addr.DELETE("/:id", DeleteAddress())
	addr.PUT("/:id/select", SelectAddress())
	addr.POST("/refresh", RefreshAddresses(client))

	wish := g.Group("/user/wishlist")
	wish.GET("", GetWishlist(client))
	wish.POST("", AddToWishlist(client))
	wish.DELETE("/:id", RemoveFromWishlist(client))
	wish.DELETE("", ClearWishlist(client))
	wish.POST("/:id/move-to-cart", MoveToCart(client))

	g.POST("/user/reviews", SubmitReview(client))
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

func noRemote(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected remote call %s", r.URL.Path)
	}
}

func addressInput(name string) models.AddressInput {
	return models.AddressInput{
		Name: name, Phone: "0501234567", BillingType: "home", Country: "SA",
		City: "Riyadh", Postcode: "12211", Address: "King Fahd Rd", Latitude: "24.7", Longitude: "46.6",
	}
}

func decodeBook(t *testing.T, w *httptest.ResponseRecorder) store.AddressBook {
	t.Helper()
	var b store.AddressBook
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestGuestAddressBook(t *testing.T) {
	r, s := newRouter(t, noRemote(t), false)

	w := call(r, http.MethodPost, "/user/addresses", addressInput("Sara"))
	require.Equal(t, http.StatusCreated, w.Code)
	first := decodeBook(t, w)
	require.Len(t, first.Addresses, 1)
	firstID := first.Addresses[0].ID
	assert.NotEmpty(t, firstID)
	assert.Equal(t, firstID, first.SelectedID)

	w = call(r, http.MethodPost, "/user/addresses", addressInput("Omar"))
	require.Equal(t, http.StatusCreated, w.Code)
	book := decodeBook(t, w)
	require.Len(t, book.Addresses, 2)
	secondID := book.Addresses[1].ID
	assert.Equal(t, firstID, book.SelectedID)

	w = call(r, http.MethodPut, "/user/addresses/"+secondID+"/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, secondID, decodeBook(t, w).SelectedID)

	assert.Equal(t, http.StatusNotFound, call(r, http.MethodPut, "/user/addresses/ghost/select", nil).Code)
	assert.Equal(t, secondID, s.Store.Addresses().SelectedID)

	updated := addressInput("Omar")
	updated.City = "Jeddah"
	w = call(r, http.MethodPut, "/user/addresses/"+secondID, updated)
	require.Equal(t, http.StatusOK, w.Code)
	a, _ := s.Store.Addresses().Find(secondID)
	assert.Equal(t, "Jeddah", a.City)

	w = call(r, http.MethodDelete, "/user/addresses/"+secondID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, firstID, decodeBook(t, w).SelectedID)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodDelete, "/user/addresses/"+secondID, nil).Code)

	w = call(r, http.MethodGet, "/user/addresses", nil)
	assert.Len(t, decodeBook(t, w).Addresses, 1)
}

func TestAddAddressValidation(t *testing.T) {
	r, _ := newRouter(t, noRemote(t), false)
	w := call(r, http.MethodPost, "/user/addresses", models.AddressInput{Name: "Sara"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "City is required")
}

func TestAddAddressUsesRemoteID(t *testing.T) {
	r, _ := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, api.PathAddressAdd, req.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Successfully added!","id":77}`))
	}, true)

	w := call(r, http.MethodPost, "/user/addresses", addressInput("Sara"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "77", decodeBook(t, w).SelectedID)
	assert.Contains(t, w.Body.String(), "Successfully added!")
}

func TestRefreshAddresses(t *testing.T) {
	r, s := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"contact_person_name":"Sara","city":"Riyadh"},{"id":2,"contact_person_name":"Omar","city":"Jeddah"}]`))
	}, true)
	s.Store.AddAddress(models.Address{ID: "2"})
	s.Store.AddAddress(models.Address{ID: "stale"})

	w := call(r, http.MethodPost, "/user/addresses/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	book := decodeBook(t, w)
	require.Len(t, book.Addresses, 2)
	assert.Equal(t, "2", book.SelectedID)
	assert.Equal(t, "Omar", book.Addresses[1].Name)
}

func TestRefreshAddressesNeedsLogin(t *testing.T) {
	r, _ := newRouter(t, noRemote(t), false)
	w := call(r, http.MethodPost, "/user/addresses/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Please login again")
}

func TestGuestWishlist(t *testing.T) {
	r, s := newRouter(t, noRemote(t), false)

	w := call(r, http.MethodPost, "/user/wishlist", models.FavouriteItem{ID: "9", Name: "Magazine", Price: 30, Image: "m.png"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = call(r, http.MethodPost, "/user/wishlist", models.FavouriteItem{ID: "9"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s.Store.Favourites(), 1)

	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/user/wishlist", map[string]string{"name": "x"}).Code)

	w = call(r, http.MethodPost, "/user/wishlist/9/move-to-cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.Store.Favourites())
	item, ok := s.Store.CartItem("9")
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, []string{"m.png"}, item.Images)

	assert.Equal(t, http.StatusNotFound, call(r, http.MethodPost, "/user/wishlist/9/move-to-cart", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodDelete, "/user/wishlist/9", nil).Code)

	s.Store.AddFavourite(models.FavouriteItem{ID: "1"})
	w = call(r, http.MethodDelete, "/user/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.Store.Favourites())
}

func TestSignedInWishlist(t *testing.T) {
	var removed int32
	r, s := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch req.URL.Path {
		case api.PathWishlist:
			_, _ = w.Write([]byte(`[{"id":1,"product_id":9,"product_full_info":{"id":9,"name":"Magazine","unit_price":30,"thumbnail":"m.png"}}]`))
		case api.PathWishlistRemove:
			atomic.AddInt32(&removed, 1)
			_, _ = w.Write([]byte(`{"message":"Successfully removed!"}`))
		case api.PathCartAdd:
			_, _ = w.Write([]byte(`{"message":"Successfully added!"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, true)

	w := call(r, http.MethodGet, "/user/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Magazine")
	require.Len(t, s.Store.Favourites(), 1)

	require.Len(t, s.Views.Wishlist.Snapshot().Data, 1)

	w = call(r, http.MethodPost, "/user/wishlist/9/move-to-cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, atomic.LoadInt32(&removed))
	assert.Len(t, s.Store.Cart(), 1)

	assert.Empty(t, s.Views.Wishlist.Snapshot().Data)
	cartView := s.Views.Cart.Snapshot()
	require.Len(t, cartView.Data, 1)
	assert.Equal(t, "9", cartView.Data[0].ID)
	assert.False(t, cartView.LoadedAt.IsZero())
}

func TestSubmitReview(t *testing.T) {
	r, _ := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, api.PathSubmitReview, req.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Review submitted successfully"}`))
	}, true)

	w := call(r, http.MethodPost, "/user/reviews", models.ReviewInput{ProductID: "1", Comment: "Great", Rating: 5})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Review submitted successfully")

	w = call(r, http.MethodPost, "/user/reviews", models.ReviewInput{ProductID: "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubmitReviewNeedsLogin(t *testing.T) {
	r, _ := newRouter(t, noRemote(t), false)
	w := call(r, http.MethodPost, "/user/reviews", models.ReviewInput{ProductID: "1", Comment: "Great", Rating: 5})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSession(t *testing.T) {
	r, s := newRouter(t, noRemote(t), false)
	s.Store.AddCartItem(models.CartItem{ID: "1", Quantity: 1})

	w := call(r, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Session models.SessionInfo `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, s.ID, body.Session.ID)
	assert.Equal(t, 1, body.Session.CartItems)
	assert.True(t, body.Session.Guest)
}
