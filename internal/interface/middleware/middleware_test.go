package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
)

func init() { gin.SetMode(gin.TestMode) }

type stubAuth struct {
	users map[string]*entity.User
	err   error
}

func (s stubAuth) Authenticate(_ context.Context, key string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[key]; ok {
		return u, nil
	}
	return nil, application.ErrUnauthenticated
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Token abc123", want: "abc123"},
		{header: "token abc123", want: "abc123"},
		{header: "Bearer abc123", want: "abc123"},
		{header: "  Token   abc123  ", want: "abc123"},
		{header: "Basic abc123", want: ""},
		{header: "abc123", want: ""},
		{header: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenFromHeader(tt.header), "header %q", tt.header)
	}
}

func newAuthRouter(auth Authenticator, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(auth, nil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Email)
	})
	r.GET("/private", handlers...)
	return r
}

func doGet(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	auth := stubAuth{users: map[string]*entity.User{"good": {ID: 1, Email: "test@gmail.com"}}}
	r := newAuthRouter(auth)

	w := doGet(r, "Token good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test@gmail.com", w.Body.String())

	w = doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token", w.Header().Get("WWW-Authenticate"))

	w = doGet(r, "Token bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_BackendError(t *testing.T) {
	r := newAuthRouter(stubAuth{err: errors.New("db down")})

	w := doGet(r, "Token good")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireStaff(t *testing.T) {
	auth := stubAuth{users: map[string]*entity.User{
		"staff": {ID: 1, Email: "admin@gmail.com", IsStaff: true},
		"plain": {ID: 2, Email: "test@gmail.com"},
	}}
	r := newAuthRouter(auth, RequireStaff())

	assert.Equal(t, http.StatusOK, doGet(r, "Token staff").Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "Token plain").Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "0b5d6c4e-8f7e-4c1a-9f3e-2a4b6c8d0e1f")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "0b5d6c4e-8f7e-4c1a-9f3e-2a4b6c8d0e1f", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP()), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func hit(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_FixedWindow(t *testing.T) {
	rdb, mr := newRedis(t)
	r := gin.New()
	r.GET("/", RateLimit(rdb, 2, time.Minute, KeyByIP()), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i, remaining := range []string{"1", "0"} {
		w := hit(r, "10.0.0.1:1234")
		require.Equal(t, http.StatusNoContent, w.Code, "request %d", i+1)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, remaining, w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", w.Header().Get("X-RateLimit-Reset"))
	}

	w := hit(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// other clients have their own window
	assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.2:1234").Code)

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusNoContent, hit(r, "10.0.0.1:1234").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rdb, mr := newRedis(t)
	r := gin.New()
	r.GET("/", RateLimit(rdb, 1, time.Minute, KeyByIP()), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	mr.Close()

	for i := 0; i < 3; i++ {
		w := hit(r, "10.0.0.1:1234")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimit_KeyByUserID(t *testing.T) {
	rdb, _ := newRedis(t)
	users := map[string]*entity.User{
		"alice": {ID: 1, IsActive: true},
		"bob":   {ID: 2, IsActive: true},
	}
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		if u, ok := users[c.GetHeader("X-User")]; ok {
			c.Set(CtxUserKey, u)
		}
		c.Next()
	}, RateLimit(rdb, 1, time.Minute, KeyByUserID()), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	as := func(name string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", name)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, as("alice"))
	assert.Equal(t, http.StatusTooManyRequests, as("alice"))
	// same IP, different user
	assert.Equal(t, http.StatusNoContent, as("bob"))
	// anonymous callers fall back to the IP key
	assert.Equal(t, http.StatusNoContent, as(""))
	assert.Equal(t, http.StatusTooManyRequests, as(""))
}
