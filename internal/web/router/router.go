package router

import (
	"net/http"

	"github.com/citeurl-go/citeurl/internal/web/middleware"
	"github.com/go-chi/chi/v5"
)

// Router wraps chi with the subset of routing the lookup API needs: GET/POST
// registration, a middleware chain, and introspection for /templates-style
// debugging. citeurl's routes take no path parameters, so there's no
// resource/CRUD metadata or URL-generation layer here.
type Router struct {
	mux    chi.Router
	routes map[string]*Route

	chain *middleware.Chain

	registeredRoutes []*RouteInfo
}

// Route represents a single registered route.
type Route struct {
	Pattern string
	Method  string
	Handler http.HandlerFunc
}

// RouteInfo describes a registered route for introspection.
type RouteInfo struct {
	Pattern string
	Method  string
}

// NewRouter creates a new Router instance
func NewRouter() *Router {
	return &Router{
		mux:              chi.NewRouter(),
		routes:           make(map[string]*Route),
		chain:            middleware.NewChain(),
		registeredRoutes: make([]*RouteInfo, 0),
	}
}

// ServeHTTP implements http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Use adds middleware to the router's middleware chain
func (r *Router) Use(middlewares ...middleware.Middleware) {
	for _, m := range middlewares {
		r.chain.Use(m)
		r.mux.Use(func(next http.Handler) http.Handler {
			return m(next)
		})
	}
}

// Get registers a GET route
func (r *Router) Get(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodGet, pattern, handler)
}

// Post registers a POST route
func (r *Router) Post(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodPost, pattern, handler)
}

func (r *Router) addRoute(method, pattern string, handler http.HandlerFunc) *Route {
	route := &Route{Pattern: pattern, Method: method, Handler: handler}

	switch method {
	case http.MethodGet:
		r.mux.Get(pattern, handler)
	case http.MethodPost:
		r.mux.Post(pattern, handler)
	}

	routeKey := method + ":" + pattern
	r.routes[routeKey] = route
	r.registeredRoutes = append(r.registeredRoutes, &RouteInfo{Pattern: pattern, Method: method})

	return route
}

// GetRoutes returns all registered routes for introspection
func (r *Router) GetRoutes() []*RouteInfo {
	return r.registeredRoutes
}

// NotFound sets the handler for 404 Not Found
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.NotFound(handler)
}

// MethodNotAllowed sets the handler for 405 Method Not Allowed
func (r *Router) MethodNotAllowed(handler http.HandlerFunc) {
	r.mux.MethodNotAllowed(handler)
}
