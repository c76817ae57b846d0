// Package feed broadcasts finished rounds to WebSocket subscribers.
package feed

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

// Path is where the feed is served.
const Path = "/feed"

const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
)

// Event is one message on the feed.
type Event struct {
	Type    string    `json:"type"`
	Session string    `json:"session"`
	Time    time.Time `json:"time"`
	crossing.RoundReport
}

// subscriber is one connected client.
type subscriber struct {
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans round events out to every subscriber. Slow subscribers whose
// buffer fills up are dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewHub creates an empty hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			// The feed is read-only and public.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
		subs:   make(map[*subscriber]struct{}),
	}
}

// Handler returns a mux serving the hub at Path.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

// ServeHTTP upgrades the request and streams events until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("feed upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := &subscriber{ws: ws, send: make(chan []byte, sendBuffer)}
	h.register(sub)
	h.logger.Info("feed subscriber joined", "remote", r.RemoteAddr)

	go h.writePump(sub)
	h.readPump(sub)

	h.unregister(sub)
	h.logger.Info("feed subscriber left", "remote", r.RemoteAddr)
}

// Publish sends a round report from session to every subscriber.
func (h *Hub) Publish(session string, r crossing.RoundReport) {
	data, err := json.Marshal(Event{
		Type:        "round",
		Session:     session,
		Time:        time.Now().UTC(),
		RoundReport: r,
	})
	if err != nil {
		h.logger.Error("feed encode failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.send <- data:
		default:
			// Buffer full, the subscriber is not keeping up.
			h.drop(sub)
		}
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		h.drop(sub)
	}
}

func (h *Hub) register(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[sub] = struct{}{}
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(sub)
}

// drop removes sub and closes its queue. Callers hold h.mu.
func (h *Hub) drop(sub *subscriber) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.send)
}

// readPump discards client messages and returns when the connection ends.
func (h *Hub) readPump(sub *subscriber) {
	defer sub.ws.Close()
	for {
		if _, _, err := sub.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("feed read error", "error", err)
			}
			return
		}
	}
}

// writePump drains the subscriber's queue onto the socket.
func (h *Hub) writePump(sub *subscriber) {
	defer sub.ws.Close()
	for msg := range sub.send {
		_ = sub.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = sub.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = sub.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
