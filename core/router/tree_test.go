package router_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlabs/weft/core/handler"
	"github.com/weftlabs/weft/core/router"
)

func noopHandler(ctx *router.Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error { return nil }
}

func TestRouterStaticBeatsParam(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/users/:id", noopHandler))
	require.NoError(t, r.Get("/users/me", noopHandler))

	mt, ok := r.Lookup(http.MethodGet, "/users/me")
	require.True(t, ok)
	assert.Equal(t, "/users/me", mt.Pattern)
	assert.Empty(t, mt.Params)

	mt, ok = r.Lookup(http.MethodGet, "/users/42")
	require.True(t, ok)
	assert.Equal(t, "/users/:id", mt.Pattern)
	assert.Equal(t, map[string]string{"id": "42"}, mt.Params)
}

func TestRouterParamConflicts(t *testing.T) {
	t.Parallel()

	t.Run("same pattern registered twice", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/users/:id", noopHandler))
		err := r.Get("/users/:id", noopHandler)
		require.ErrorIs(t, err, router.ErrRouteConflict)
		assert.Contains(t, err.Error(), "/users/:id")
	})

	t.Run("different param names at same position", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/users/:id", noopHandler))
		err := r.Get("/users/:name", noopHandler)
		require.ErrorIs(t, err, router.ErrRouteConflict)
		assert.Contains(t, err.Error(), "/users/:id")
		assert.Contains(t, err.Error(), "/users/:name")
	})

	t.Run("same param name may branch further", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/users/:id", noopHandler))
		require.NoError(t, r.Get("/users/:id/posts", noopHandler))
	})

	t.Run("duplicate wildcard", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/files/*", noopHandler))
		require.ErrorIs(t, r.Get("/files/*", noopHandler), router.ErrRouteConflict)
	})

	t.Run("different methods never conflict", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/users/:id", noopHandler))
		require.NoError(t, r.Post("/users/:id", noopHandler))
	})
}

func TestRouterNilHandler(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.ErrorIs(t, r.Get("/users", nil), router.ErrNilHandler)
}

func TestRouterWildcard(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/files/*", noopHandler))
	require.NoError(t, r.Get("/files/special", noopHandler))

	t.Run("captures remainder joined by slash", func(t *testing.T) {
		t.Parallel()
		mt, ok := r.Lookup(http.MethodGet, "/files/a/b/c")
		require.True(t, ok)
		assert.Equal(t, "/files/*", mt.Pattern)
		assert.Equal(t, "a/b/c", mt.Wildcard)
	})

	t.Run("single segment remainder", func(t *testing.T) {
		t.Parallel()
		mt, ok := r.Lookup(http.MethodGet, "/files/readme.txt")
		require.True(t, ok)
		assert.Equal(t, "/files/*", mt.Pattern)
		assert.Equal(t, "readme.txt", mt.Wildcard)
	})

	t.Run("static sibling wins", func(t *testing.T) {
		t.Parallel()
		mt, ok := r.Lookup(http.MethodGet, "/files/special")
		require.True(t, ok)
		assert.Equal(t, "/files/special", mt.Pattern)
		assert.Empty(t, mt.Wildcard)
	})

	t.Run("requires at least one remaining segment", func(t *testing.T) {
		t.Parallel()
		_, ok := r.Lookup(http.MethodGet, "/files")
		assert.False(t, ok)
	})

	t.Run("deeper static path falls back to wildcard", func(t *testing.T) {
		t.Parallel()
		mt, ok := r.Lookup(http.MethodGet, "/files/special/extra")
		require.True(t, ok)
		assert.Equal(t, "/files/*", mt.Pattern)
		assert.Equal(t, "special/extra", mt.Wildcard)
	})
}

func TestRouterRootWildcardMatchesRoot(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/*", noopHandler))

	mt, ok := r.Lookup(http.MethodGet, "/")
	require.True(t, ok)
	assert.Equal(t, "/*", mt.Pattern)
	assert.Empty(t, mt.Wildcard)

	mt, ok = r.Lookup(http.MethodGet, "/anything/else")
	require.True(t, ok)
	assert.Equal(t, "anything/else", mt.Wildcard)
}

func TestRouterParamsAndQuery(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/users/:id", noopHandler))

	mt, ok := r.Lookup(http.MethodGet, "/users/42?x=1&y=2")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "42"}, mt.Params)
	assert.Equal(t, map[string]string{"x": "1", "y": "2"}, mt.Query)
}

func TestRouterDecoding(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/users/:name", noopHandler))

	t.Run("param values are percent decoded", func(t *testing.T) {
		t.Parallel()
		mt, ok := r.Lookup(http.MethodGet, "/users/jane%20doe")
		require.True(t, ok)
		assert.Equal(t, "jane doe", mt.Params["name"])
	})

	t.Run("invalid escapes kept raw", func(t *testing.T) {
		t.Parallel()
		mt, ok := r.Lookup(http.MethodGet, "/users/bad%zz")
		require.True(t, ok)
		assert.Equal(t, "bad%zz", mt.Params["name"])
	})

	t.Run("query values decoded with last value winning", func(t *testing.T) {
		t.Parallel()
		mt, ok := r.Lookup(http.MethodGet, "/users/42?q=a%20b&q=c")
		require.True(t, ok)
		assert.Equal(t, "c", mt.Query["q"])
	})
}

func TestRouterTrailingSlashEquivalence(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/users/list", noopHandler))

	for _, path := range []string{"/users/list", "/users/list/", "//users//list"} {
		_, ok := r.Lookup(http.MethodGet, path)
		assert.True(t, ok, "path %q should match", path)
	}
}

func TestRouterLookupMiss(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/users", noopHandler))

	_, ok := r.Lookup(http.MethodGet, "/posts")
	assert.False(t, ok)

	// Registered prefix without a handler is not a match.
	require.NoError(t, r.Get("/a/b/c", noopHandler))
	_, ok = r.Lookup(http.MethodGet, "/a/b")
	assert.False(t, ok)

	// Same path under a different method.
	_, ok = r.Lookup(http.MethodPost, "/users")
	assert.False(t, ok)
}

func TestRouterRemove(t *testing.T) {
	t.Parallel()

	t.Run("removed route stops matching", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/users/:id", noopHandler))
		require.True(t, r.Remove(http.MethodGet, "/users/:id"))

		_, ok := r.Lookup(http.MethodGet, "/users/42")
		assert.False(t, ok)
	})

	t.Run("removing missing route reports false", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		assert.False(t, r.Remove(http.MethodGet, "/users"))

		require.NoError(t, r.Get("/users", noopHandler))
		assert.False(t, r.Remove(http.MethodPost, "/users"))
		assert.False(t, r.Remove(http.MethodGet, "/users/extra"))
	})

	t.Run("prune leaves siblings intact", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/api/users/list", noopHandler))
		require.NoError(t, r.Get("/api/posts", noopHandler))

		require.True(t, r.Remove(http.MethodGet, "/api/users/list"))

		_, ok := r.Lookup(http.MethodGet, "/api/posts")
		assert.True(t, ok)
		_, ok = r.Lookup(http.MethodGet, "/api/users/list")
		assert.False(t, ok)
	})

	t.Run("removing intermediate keeps descendants", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/a", noopHandler))
		require.NoError(t, r.Get("/a/b", noopHandler))

		require.True(t, r.Remove(http.MethodGet, "/a"))

		_, ok := r.Lookup(http.MethodGet, "/a")
		assert.False(t, ok)
		_, ok = r.Lookup(http.MethodGet, "/a/b")
		assert.True(t, ok)
	})

	t.Run("pattern can be re-registered after removal", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/users/:id", noopHandler))
		require.True(t, r.Remove(http.MethodGet, "/users/:id"))
		require.NoError(t, r.Get("/users/:id", noopHandler))
	})

	t.Run("root wildcard removal clears root match", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/*", noopHandler))
		require.True(t, r.Remove(http.MethodGet, "/*"))

		_, ok := r.Lookup(http.MethodGet, "/")
		assert.False(t, ok)
		_, ok = r.Lookup(http.MethodGet, "/anything")
		assert.False(t, ok)
	})
}

func TestRouterRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.NoError(t, r.Get("/users/:id", noopHandler))
	require.NoError(t, r.Get("/files/*", noopHandler))
	require.NoError(t, r.Post("/users", noopHandler))
	require.NoError(t, r.WebSocket("/ws/chat", noopHandler))

	assert.Equal(t, []router.Route{
		{Method: http.MethodGet, Pattern: "/files/*"},
		{Method: http.MethodGet, Pattern: "/users/:id"},
		{Method: http.MethodPost, Pattern: "/users"},
		{Method: router.MethodWebSocket, Pattern: "/ws/chat"},
	}, r.Routes())
}

func TestRouterHandle(t *testing.T) {
	t.Parallel()

	t.Run("registers every http method", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Handle("/any", noopHandler))

		for _, method := range []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
			http.MethodPatch, http.MethodHead, http.MethodOptions,
		} {
			_, ok := r.Lookup(method, "/any")
			assert.True(t, ok, "method %s should match", method)
		}

		_, ok := r.Lookup(router.MethodWebSocket, "/any")
		assert.False(t, ok, "the websocket tree is not covered by Handle")
	})

	t.Run("conflict aborts before registering any method", func(t *testing.T) {
		t.Parallel()
		r := router.New[*router.Context]()
		defer r.Close()

		require.NoError(t, r.Get("/busy", noopHandler))
		require.ErrorIs(t, r.Handle("/busy", noopHandler), router.ErrRouteConflict)

		// GET is first in registration order, so the conflict fires before
		// any other method lands.
		for _, method := range []string{
			http.MethodPost, http.MethodPut, http.MethodDelete,
			http.MethodPatch, http.MethodHead, http.MethodOptions,
		} {
			_, ok := r.Lookup(method, "/busy")
			assert.False(t, ok, "method %s must not be registered", method)
		}
	})
}

func TestRouterMethodValidation(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	defer r.Close()

	require.ErrorIs(t, r.Method("/x", noopHandler), router.ErrInvalidMethod)
	require.ErrorIs(t, r.Method("/x", noopHandler, "SNIFF"), router.ErrInvalidMethod)

	// Lowercase method names are normalized.
	require.NoError(t, r.Method("/x", noopHandler, "get", "post"))
	_, ok := r.Lookup("GET", "/x")
	assert.True(t, ok)
	_, ok = r.Lookup("POST", "/x")
	assert.True(t, ok)
}
