package sse

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/tablekit/tablekit/internal/model"
)

// Broadcaster publishes change events to all connected clients.
// Services hold this narrow interface so tests can substitute a recorder.
type Broadcaster interface {
	Publish(event model.Event)
}

// Config holds tuning knobs for the hub
type Config struct {
	// HeartbeatInterval is how often keepalive comments are written to
	// each connection. Must be shorter than any proxy idle timeout.
	HeartbeatInterval time.Duration

	// SendBufferSize is the per-client outgoing frame buffer
	SendBufferSize int
}

// DefaultConfig returns default hub configuration
func DefaultConfig() Config {
	return Config{
		HeartbeatInterval: 30 * time.Second,
		SendBufferSize:    64,
	}
}

// Hub fans change events out to every connected client over a single
// shared stream. All screens (customer, kitchen, manager) subscribe to
// the same stream; authorization gates who can cause an event, not who
// can observe one.
type Hub struct {
	cfg     Config
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// Ensure Hub implements Broadcaster
var _ Broadcaster = (*Hub)(nil)

// NewHub creates a new Hub
func NewHub(cfg Config, logger *slog.Logger) *Hub {
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = DefaultConfig().HeartbeatInterval
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = DefaultConfig().SendBufferSize
	}
	return &Hub{
		cfg:        cfg,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "sse")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("conn_id", client.id),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				duration := time.Since(client.connectedAt)
				h.logger.Info("sse client unregistered",
					slog.String("conn_id", client.id),
					slog.Duration("connection_duration", duration),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			// A client whose buffer is full is stalled; it gets pruned
			// rather than holding up delivery to everyone else.
			var stalled []*Client
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					stalled = append(stalled, client)
				}
			}
			h.mu.RUnlock()

			if len(stalled) > 0 {
				h.mu.Lock()
				for _, client := range stalled {
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
						h.logger.Warn("sse client pruned - send buffer full",
							slog.String("conn_id", client.id))
					}
				}
				h.mu.Unlock()
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub. A client connecting after Close
// is turned away rather than blocking its handler goroutine.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub; idempotent
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish serializes the event and queues it for delivery to every
// connected client. Best effort: the mutation that caused the event has
// already committed, so failures are logged, never surfaced.
func (h *Hub) Publish(event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("sse failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	h.Broadcast(formatSSEMessage(string(event.Type), string(data)))
}

// Broadcast queues a pre-formatted frame for all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data
// Multi-line data is properly formatted with "data: " prefix on each line
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	// SSE requires each line of data to be prefixed with "data: "
	lines := splitLines(data)
	for _, line := range lines {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
