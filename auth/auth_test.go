package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/kv"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	registry *session.Registry
	router   *gin.Engine
}

func newFixture(t *testing.T, remote http.HandlerFunc) *fixture {
	t.Helper()
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	registry := session.NewRegistry(kv.NewMemory(), time.Hour, time.Second)
	client := api.NewClient(srv.URL, 5*time.Second)

	r := gin.New()
	r.POST("/auth/guest", CreateGuestSession(registry, testSecret))
	r.POST("/auth/login", Login(registry, client, testSecret))
	r.POST("/auth/register", Register(registry, client, testSecret))
	return &fixture{registry: registry, router: r}
}

func (f *fixture) post(path string, body any, header string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func remoteLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case api.PathLogin:
		_, _ = w.Write([]byte(`{"temporary_token":"remote-tok"}`))
	case api.PathSignup:
		_, _ = w.Write([]byte(`{"message":"Customer registered"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	now := time.Now()
	raw, err := IssueSessionToken(testSecret, "sid", true, now, now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := ParseSessionToken(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, "sid", claims.Subject)
	assert.True(t, claims.Guest)

	_, err = ParseSessionToken("wrong", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseSessionToken(testSecret, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGuestSession(t *testing.T) {
	f := newFixture(t, remoteLogin)

	w := f.post("/auth/guest", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["guest"])
	assert.NotEmpty(t, body["token"])
	assert.Len(t, f.registry.List(), 1)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, remoteLogin)

	w := f.post("/auth/login", map[string]string{"email": "sara@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, false, body["guest"])

	s, ok := f.registry.Resolve(context.Background(), body["session_id"].(string), false, time.Time{})
	require.True(t, ok)
	token, err := s.Auth.Token()
	require.NoError(t, err)
	assert.Equal(t, "remote-tok", token)
}

func TestLoginUpgradesGuestSession(t *testing.T) {
	f := newFixture(t, remoteLogin)

	guest := decode(t, f.post("/auth/guest", nil, ""))
	w := f.post("/auth/login", map[string]string{"email": "sara@example.com", "password": "secret1"}, "Bearer "+guest["token"].(string))
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, guest["session_id"], body["session_id"])
	assert.NotEqual(t, guest["token"], body["token"])
	assert.Len(t, f.registry.List(), 1)
}

func TestConcurrentLoginsWhileListingSessions(t *testing.T) {
	f := newFixture(t, remoteLogin)
	guest := decode(t, f.post("/auth/guest", nil, ""))
	bearer := "Bearer " + guest["token"].(string)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			w := f.post("/auth/login", map[string]string{"email": "sara@example.com", "password": "secret1"}, bearer)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
		go func() {
			defer wg.Done()
			_ = f.registry.List()
		}()
	}
	wg.Wait()

	infos := f.registry.List()
	require.Len(t, infos, 1)
	assert.False(t, infos[0].Guest)
	assert.True(t, infos[0].IsAuthenticated)
}

func TestSessionFromHeader(t *testing.T) {
	registry := session.NewRegistry(kv.NewMemory(), time.Hour, time.Second)
	ctx := context.Background()
	s := registry.Create(ctx, true)
	token, err := IssueSessionToken(testSecret, s.ID, true, time.Now(), s.ExpiresAt)
	require.NoError(t, err)

	got, err := SessionFromHeader(ctx, "bearer "+token, testSecret, registry)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = SessionFromHeader(ctx, "  ", testSecret, registry)
	assert.ErrorIs(t, err, ErrMissingBearer)
	_, err = SessionFromHeader(ctx, "Bearer junk", testSecret, registry)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := IssueSessionToken(testSecret, "gone", true, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = SessionFromHeader(ctx, "Bearer "+expired, testSecret, registry)
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.Equal(t, "abc", BearerToken("Bearer  abc "))
	assert.Equal(t, "abc", BearerToken("abc"))
}

func TestLoginValidation(t *testing.T) {
	f := newFixture(t, remoteLogin)

	w := f.post("/auth/login", map[string]string{"email": "nope"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Enter a valid email")
	assert.Contains(t, w.Body.String(), "Password is required")
}

func TestLoginRemoteRejects(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"code":"auth-001","message":"Invalid credentials"}]}`))
	})

	w := f.post("/auth/login", map[string]string{"email": "sara@example.com", "password": "bad"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, f.registry.List())
}

func TestRegister(t *testing.T) {
	f := newFixture(t, remoteLogin)

	w := f.post("/auth/register", map[string]string{
		"first_name":   "Sara",
		"last_name":    "Ali",
		"email":        "sara@example.com",
		"password":     "secret1",
		"phone_number": "0501234567",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer registered", decode(t, w)["message"])
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, remoteLogin)

	w := f.post("/auth/register", map[string]string{"first_name": "S"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "First name must be at least 2 characters")
}

func TestLogout(t *testing.T) {
	registry := session.NewRegistry(kv.NewMemory(), time.Hour, time.Second)
	s := registry.Create(context.Background(), false)
	require.NoError(t, s.Auth.Login(context.Background(), "tok"))

	r := gin.New()
	r.POST("/auth/logout", Logout(func(*gin.Context) *session.Session { return s }))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.Auth.IsAuthenticated())
}
