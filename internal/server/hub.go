// Package server broadcasts analysed frames to WebSocket viewers and exposes
// the process's health and Prometheus endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/martinblech/rtaudio/internal/observe"
	"github.com/martinblech/rtaudio/measure/features"
	"github.com/martinblech/rtaudio/stream"
)

// DefaultClientBuffer is the number of messages queued per client before
// further frames are dropped for it.
const DefaultClientBuffer = 8

// writeTimeout bounds a single WebSocket write.
const writeTimeout = 5 * time.Second

// Hub fans frame messages out to connected WebSocket clients. Publishing
// never blocks on a client: each client has a bounded queue and misses
// frames while it is full. Hub is safe for concurrent use.
type Hub struct {
	logger  *slog.Logger
	metrics *observe.Metrics
	buffer  int
	origins []string

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	send chan []byte
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithClientBuffer sets the per-client queue depth. Values below 1 are
// ignored.
func WithClientBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithLogger sets the hub logger.
func WithLogger(l *slog.Logger) HubOption {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMetrics records client and drop counts to m.
func WithMetrics(m *observe.Metrics) HubOption {
	return func(h *Hub) {
		if m != nil {
			h.metrics = m
		}
	}
}

// WithOriginPatterns allows cross-origin viewers whose host matches one of
// the patterns. See websocket.AcceptOptions.
func WithOriginPatterns(patterns ...string) HubOption {
	return func(h *Hub) {
		h.origins = append(h.origins, patterns...)
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		logger:  slog.Default(),
		buffer:  DefaultClientBuffer,
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.metrics == nil {
		m, err := observe.NewMetrics(noop.NewMeterProvider())
		if err != nil {
			panic("server: noop metrics: " + err.Error())
		}
		h.metrics = m
	}
	h.logger = h.logger.With("component", "hub")
	return h
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish snapshots f and offers it to every client. Its signature matches
// stream.Handler.
func (h *Hub) Publish(f *features.Frame, info stream.BlockInfo) {
	if h.Clients() == 0 {
		return
	}
	data, err := json.Marshal(stream.NewMessage(f, info))
	if err != nil {
		h.logger.Error("encode frame", "block", info.Index, "err", err)
		return
	}
	h.Broadcast(data)
}

// Broadcast offers one encoded message to every client without blocking.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.metrics.DroppedMessages.Add(context.Background(), 1)
		}
	}
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
		h.metrics.ActiveClients.Add(context.Background(), -1)
	}
}

var errHubClosed = errors.New("server: hub closed")

func (h *Hub) register() (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, errHubClosed
	}
	c := &client{send: make(chan []byte, h.buffer)}
	h.clients[c] = struct{}{}
	h.metrics.ActiveClients.Add(context.Background(), 1)
	return c, nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.ActiveClients.Add(context.Background(), -1)
}

// ServeWS upgrades the request and streams frame messages until the client
// goes away or the hub closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	c, err := h.register()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer h.unregister(c)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.logger.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.CloseNow()

	h.logger.Info("client connected", "remote", r.RemoteAddr)
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				h.logger.Debug("client write failed", "remote", r.RemoteAddr, "err", err)
				return
			}
		case <-ctx.Done():
			h.logger.Info("client disconnected", "remote", r.RemoteAddr)
			return
		}
	}
}

// Handler returns the HTTP surface: GET /ws, GET /metrics, GET /healthz and
// GET /readyz. Readiness passes when every checker does.
func (h *Hub) Handler(checkers ...Checker) http.Handler {
	hc := &health{checkers: append([]Checker(nil), checkers...)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.ServeWS)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", hc.healthz)
	mux.HandleFunc("GET /readyz", hc.readyz)

	return observe.Middleware(h.metrics, h.logger)(mux)
}
