package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans a reload notification out to every browser connected to
// /ws/reload (SPEC_FULL.md §10.2/§10.3) after a successful /admin/reload
// or watch-mode template recompile. Clients never send anything the hub
// needs to act on, so there's no per-message routing or room concept here
// — just registration, broadcast, and a stale-connection sweep.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message

	shutdown chan struct{}
	wg       sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// Message is the JSON frame sent to connected clients, e.g.
// {"type":"reload"} after the citator is swapped.
type Message struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Payload interface{}     `json:"-"`
}

// NewHub creates a new Hub instance
func NewHub(ctx context.Context) *Hub {
	hubCtx, cancel := context.WithCancel(ctx)

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *Message, 1024),
		shutdown:   make(chan struct{}),
		ctx:        hubCtx,
		cancel:     cancel,
	}
}

// Run starts the hub's main event loop
func (h *Hub) Run() {
	h.wg.Add(1)
	defer h.wg.Done()

	cleanupTicker := time.NewTicker(30 * time.Second)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			h.cleanup()
			return

		case <-h.shutdown:
			h.cleanup()
			return

		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			log.Printf("reload listener connected: %s (total: %d)", client.ID, h.ClientCount())

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closed.Store(true)
				close(client.send)
			}
			h.clientsMu.Unlock()
			log.Printf("reload listener disconnected: %s (total: %d)", client.ID, h.ClientCount())

		case message := <-h.broadcast:
			h.broadcastToAll(message)

		case <-cleanupTicker.C:
			h.cleanupStaleConnections()
		}
	}
}

// broadcastToAll sends a message to all connected clients
func (h *Hub) broadcastToAll(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("error marshaling reload message: %v", err)
		return
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("skipping reload listener %s: send channel full", client.ID)
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(message *Message) {
	select {
	case h.broadcast <- message:
	case <-h.ctx.Done():
		log.Printf("hub context done, cannot broadcast")
	default:
		log.Printf("broadcast channel full, reload message dropped")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// cleanup closes all client connections and cleans up resources
func (h *Hub) cleanup() {
	log.Printf("hub shutting down, disconnecting %d reload listeners", h.ClientCount())

	h.clientsMu.Lock()
	for client := range h.clients {
		client.closed.Store(true)
		if client.conn != nil {
			client.conn.Close()
		}
	}
	h.clients = make(map[*Client]bool)
	h.clientsMu.Unlock()
}

// cleanupStaleConnections removes clients that haven't sent a heartbeat recently
func (h *Hub) cleanupStaleConnections() {
	h.clientsMu.RLock()
	staleClients := make([]*Client, 0)

	for client := range h.clients {
		if time.Since(client.lastHeartbeat) > 90*time.Second {
			staleClients = append(staleClients, client)
		}
	}
	h.clientsMu.RUnlock()

	for _, client := range staleClients {
		log.Printf("removing stale reload listener: %s", client.ID)
		h.unregister <- client
	}
}

// Shutdown gracefully shuts down the hub
func (h *Hub) Shutdown() {
	log.Printf("hub shutdown initiated")
	h.cancel()
	close(h.shutdown)
	h.wg.Wait()
	log.Printf("hub shutdown complete")
}
