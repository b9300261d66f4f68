// Package httpserver is the HTTP lookup server named in SPEC_FULL.md §10.2:
// a chi-routed citation lookup/link/authority API in front of a Citator,
// grounded on internal/web/server, internal/web/router, internal/web/auth,
// internal/web/cache, and internal/web/websocket.
package httpserver

import (
	"context"
	"net/http"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/citeurl-go/citeurl/citator"
	"github.com/citeurl-go/citeurl/internal/web/auth"
	"github.com/citeurl-go/citeurl/internal/web/cache"
	"github.com/citeurl-go/citeurl/internal/web/middleware"
	"github.com/citeurl-go/citeurl/internal/web/router"
	wsocket "github.com/citeurl-go/citeurl/internal/web/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Config configures a Server.
type Config struct {
	Addr           string
	JWTSecret      string
	AdminTokenHash string // bcrypt hash of the admin reload token
	IDBreak        *regexp.Regexp
	Logger         *zap.Logger

	// RequestTimeout bounds how long a single lookup request may run
	// before the server abandons it with a 504. Zero uses
	// middleware.DefaultTimeoutConfig's 30s.
	RequestTimeout time.Duration
	// CORSOrigins lists origins allowed to call the lookup endpoints
	// from a browser. Empty uses middleware.DefaultCORSConfig's "*".
	CORSOrigins []string
}

// Server serves the citation lookup HTTP API. The active Citator is held
// behind an atomic.Pointer so /admin/reload can swap in a freshly-loaded
// Citator without readers ever taking a lock.
type Server struct {
	cfg     Config
	current atomic.Pointer[citator.Citator]
	cache   cache.Cache
	auth    *auth.AuthService
	ws      *wsocket.Server
	mux     http.Handler
}

// New builds a Server serving c, caching responses in respCache (pass a
// cache.Cache backed by internal/web/cache.NewMemoryCache or
// NewRedisCacheWithConfig).
func New(c *citator.Citator, respCache cache.Cache, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.IDBreak == nil {
		cfg.IDBreak = citator.DefaultIDBreak
	}

	s := &Server{
		cfg:   cfg,
		cache: respCache,
		auth:  auth.NewAuthService(cfg.JWTSecret, 24*time.Hour),
		ws:    wsocket.NewServer(context.Background(), nil),
	}
	s.current.Store(c)
	s.ws.Start()

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.CORSOrigins
	}
	timeoutCfg := middleware.DefaultTimeoutConfig()
	if cfg.RequestTimeout > 0 {
		timeoutCfg.Timeout = cfg.RequestTimeout
	}

	r := router.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logging(),
		middleware.CORSWithConfig(corsCfg),
		middleware.TimeoutWithConfig(timeoutCfg),
	)
	r.Get("/cite", s.handleCite)
	r.Post("/list-cites", s.handleListCites)
	r.Post("/insert-links", s.handleInsertLinks)
	r.Get("/authorities", s.handleAuthorities)
	r.Get("/templates", s.handleTemplates)
	r.Post("/admin/reload", s.requireAdmin(s.handleReload))
	router.SetupDefaultErrorHandlers(r, false)

	mux := chi.NewRouter()
	mux.Mount("/", r)
	mux.Get("/ws/reload", s.ws.Handler())
	s.mux = mux

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.mux.ServeHTTP(w, req)
}

// Citator returns the currently active Citator.
func (s *Server) Citator() *citator.Citator {
	return s.current.Load()
}

// Reload atomically swaps in a new Citator and notifies every connected
// /ws/reload client.
func (s *Server) Reload(c *citator.Citator) {
	s.current.Store(c)
	s.ws.Hub.Broadcast(&wsocket.Message{Type: "reload"})
}
