package websocket

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Config holds WebSocket configuration
type Config struct {
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin governs which browser origins may open /ws/reload.
	CheckOrigin func(r *http.Request) bool

	EnableCompression bool
}

// DefaultConfig returns default WebSocket configuration
func DefaultConfig() *Config {
	return &Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
		EnableCompression: false,
	}
}

// Upgrader upgrades HTTP connections to WebSocket
type Upgrader struct {
	config   *Config
	upgrader *websocket.Upgrader
	hub      *Hub
}

// NewUpgrader creates a new Upgrader
func NewUpgrader(config *Config, hub *Hub) *Upgrader {
	if config == nil {
		config = DefaultConfig()
	}

	upgrader := &websocket.Upgrader{
		ReadBufferSize:    config.ReadBufferSize,
		WriteBufferSize:   config.WriteBufferSize,
		CheckOrigin:       config.CheckOrigin,
		EnableCompression: config.EnableCompression,
	}

	return &Upgrader{
		config:   config,
		upgrader: upgrader,
		hub:      hub,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (u *Upgrader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := u.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	clientID := uuid.New().String()
	client := NewClient(clientID, conn, u.hub)

	u.hub.register <- client

	go client.WritePump()
	go client.ReadPump()

	log.Printf("reload listener connected: %s", clientID)
}

// Handler returns an http.HandlerFunc for WebSocket upgrade
func (u *Upgrader) Handler() http.HandlerFunc {
	return u.ServeHTTP
}

// Server wraps Hub and Upgrader for convenient WebSocket server setup
type Server struct {
	Hub      *Hub
	Upgrader *Upgrader
	Config   *Config
}

// NewServer creates a new WebSocket server backing /ws/reload.
func NewServer(ctx context.Context, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	hub := NewHub(ctx)
	upgrader := NewUpgrader(config, hub)

	return &Server{
		Hub:      hub,
		Upgrader: upgrader,
		Config:   config,
	}
}

// Start starts the WebSocket server
func (s *Server) Start() {
	go s.Hub.Run()
}

// Shutdown gracefully shuts down the WebSocket server
func (s *Server) Shutdown() {
	s.Hub.Shutdown()
}

// Handler returns the HTTP handler for WebSocket upgrade
func (s *Server) Handler() http.HandlerFunc {
	return s.Upgrader.Handler()
}
