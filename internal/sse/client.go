package sse

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

var connSeq atomic.Int64

// Client represents a connected SSE client
type Client struct {
	hub         *Hub
	id          string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub) *Client {
	return &Client{
		hub:         hub,
		id:          "c" + strconv.FormatInt(connSeq.Add(1), 10),
		send:        make(chan []byte, hub.cfg.SendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE handles the SSE connection for a client. The client is
// registered on entry and always deregistered on the way out, whether the
// peer disconnects, a write fails, or the hub shuts down.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub) {
	// Check if SSE is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Create and register client
	client := NewClient(hub)
	hub.Register(client)

	// Ensure cleanup on disconnect
	defer func() {
		hub.Unregister(client)
	}()

	// Send an initial comment right away so intermediaries flush the
	// response headers and keep the connection open
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// Create ticker for keepalive
	ticker := time.NewTicker(hub.cfg.HeartbeatInterval)
	defer ticker.Stop()

	// Handle client connection
	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			_, err := w.Write(message)
			if err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// Send keepalive comment
			_, err := w.Write([]byte(": keepalive\n\n"))
			if err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}
