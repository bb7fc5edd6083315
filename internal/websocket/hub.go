package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"crickpulse/internal/config"
	"crickpulse/internal/infrastructure"
	"crickpulse/internal/services"
	"crickpulse/internal/stats"
)

// Message type constants for the dashboard channel
const (
	TypeConnection = "connection"
	TypeFilter     = "filter"
	TypeAggregates = "aggregates"
	TypeError      = "error"
)

// Envelope is the wire format for every dashboard message
type Envelope struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Aggregator computes filtered dashboard aggregates for connected clients
type Aggregator interface {
	Aggregates(ctx context.Context, f stats.Filter) (*services.AggregateSnapshot, error)
}

// Hub maintains the set of active clients. Each client drives its own
// refresh loop: it sends a filter message and the hub replies with the
// matching aggregate snapshot on that client's channel only. Broadcast
// is reserved for hub-wide notifications such as dataset availability.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	aggregator Aggregator
	metrics    *infrastructure.DashboardMetrics
	cfg        config.WebSocketConfig
	logger     *slog.Logger

	mu      sync.RWMutex
	quit    chan struct{}
	running bool
}

// NewHub creates a new Hub instance with dependency injection
func NewHub(aggregator Aggregator, metrics *infrastructure.DashboardMetrics, cfg config.WebSocketConfig, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "websocket.hub"))

	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		aggregator: aggregator,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Start starts the hub's main loop
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

// Stop shuts the hub down and closes every client connection
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.quit)
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			if h.metrics != nil {
				h.metrics.WebSocketClients.Add(context.Background(), 1)
			}

			h.logger.Info("client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			client.enqueue(Envelope{
				Type:      TypeConnection,
				Data:      map[string]interface{}{"client_id": client.id},
				Timestamp: time.Now().UTC(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()

			if h.metrics != nil {
				h.metrics.WebSocketClients.Add(context.Background(), -1)
			}

			h.logger.Info("client unregistered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id))

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop the connection
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an envelope to every connected client
func (h *Hub) Broadcast(envelope Envelope) {
	envelope.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast channel full, dropping message", slog.String("type", envelope.Type))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// handleFilter resolves a client's filter request into an aggregate
// snapshot and queues the reply on that client's channel.
func (h *Hub) handleFilter(ctx context.Context, client *Client, payload []byte) {
	var req struct {
		Type   string       `json:"type"`
		Filter stats.Filter `json:"filter"`
	}

	if err := json.Unmarshal(payload, &req); err != nil {
		client.enqueue(Envelope{
			Type:      TypeError,
			Error:     "invalid filter message",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	snap, err := h.aggregator.Aggregates(ctx, req.Filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "aggregate refresh failed",
			slog.String("client_id", client.id),
			slog.String("error", err.Error()))
		client.enqueue(Envelope{
			Type:      TypeError,
			Error:     "aggregates unavailable",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	client.enqueue(Envelope{
		Type:      TypeAggregates,
		Data:      snap,
		Timestamp: time.Now().UTC(),
	})
}

// ServeWS upgrades an HTTP request to a websocket connection and
// attaches it to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  h.cfg.ReadBufferSize,
		WriteBufferSize: h.cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			// Same-host dashboard page only
			return true
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("remote_addr", r.RemoteAddr))
		return
	}

	client := NewClient(h, conn, h.logger)
	h.register <- client

	go client.WritePump()
	go client.ReadPump()
}
