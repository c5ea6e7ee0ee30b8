package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlabs/weft/core/handler"
	"github.com/weftlabs/weft/core/router"
	"github.com/weftlabs/weft/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	r.Use(middleware.RequestID[*router.Context]())

	var seen string
	require.NoError(t, r.Get("/", func(ctx *router.Context) handler.Response {
		id, ok := middleware.GetRequestID(ctx)
		require.True(t, ok)
		seen = id
		return func(w http.ResponseWriter, req *http.Request) error { return nil }
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequestIDCustomConfig(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		HeaderName: "X-Trace-ID",
		Generator:  func() string { return "fixed-id" },
	}))

	require.NoError(t, r.Get("/", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, req *http.Request) error { return nil }
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "fixed-id", w.Header().Get("X-Trace-ID"))
}

func TestRequestIDUseExisting(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		UseExisting: true,
	}))

	require.NoError(t, r.Get("/", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, req *http.Request) error { return nil }
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

func TestGetRequestIDMissing(t *testing.T) {
	t.Parallel()

	ctx := router.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), handler.RouteInfo{})
	_, ok := middleware.GetRequestID(ctx)
	assert.False(t, ok)
}
