package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	router := NewRouter()
	assert.NotNil(t, router)
	assert.NotNil(t, router.mux)
	assert.NotNil(t, router.routes)
	assert.NotNil(t, router.registeredRoutes)
}

func TestRouterHTTPMethods(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		setup   func(*Router, http.HandlerFunc) *Route
	}{
		{
			name:    "GET route",
			method:  http.MethodGet,
			pattern: "/cite",
			setup:   func(r *Router, h http.HandlerFunc) *Route { return r.Get("/cite", h) },
		},
		{
			name:    "POST route",
			method:  http.MethodPost,
			pattern: "/list-cites",
			setup:   func(r *Router, h http.HandlerFunc) *Route { return r.Post("/list-cites", h) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter()
			called := false
			handler := func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("success"))
			}

			route := tt.setup(router, handler)

			assert.NotNil(t, route)
			assert.Equal(t, tt.pattern, route.Pattern)
			assert.Equal(t, tt.method, route.Method)

			req := httptest.NewRequest(tt.method, tt.pattern, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.True(t, called, "handler should have been called")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "success", w.Body.String())
		})
	}
}

func TestRouterGetRoutes(t *testing.T) {
	router := NewRouter()

	router.Get("/cite", func(w http.ResponseWriter, r *http.Request) {})
	router.Post("/list-cites", func(w http.ResponseWriter, r *http.Request) {})
	router.Get("/templates", func(w http.ResponseWriter, r *http.Request) {})

	routes := router.GetRoutes()
	assert.Len(t, routes, 3)

	for _, route := range routes {
		assert.NotEmpty(t, route.Pattern)
		assert.NotEmpty(t, route.Method)
	}
}

func TestRouterNotFound(t *testing.T) {
	router := NewRouter()

	customNotFound := false
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		customNotFound = true
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("custom not found"))
	})

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.True(t, customNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "custom not found", w.Body.String())
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := NewRouter()

	customMethodNotAllowed := false
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		customMethodNotAllowed = true
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte("method not allowed"))
	})

	router.Get("/cite", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/cite", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.True(t, customMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterServeHTTP(t *testing.T) {
	router := NewRouter()

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "healthy", string(body))
}
