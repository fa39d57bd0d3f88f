package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/santhosh1815/hmi/internal/logger"
	"github.com/santhosh1815/hmi/internal/simulation"
)

// hub fans produced samples out to connected WebSocket clients. One
// goroutine owns the client set and is the only writer to registered
// connections; dead clients are dropped on write failure.
type hub struct {
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	register  chan *websocket.Conn
	remove    chan *websocket.Conn
	broadcast chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newHub() *hub {
	h := &hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]bool),
		register:  make(chan *websocket.Conn),
		remove:    make(chan *websocket.Conn),
		broadcast: make(chan []byte, 16),
		done:      make(chan struct{}),
	}
	go h.run()

	return h
}

func (h *hub) run() {
	for {
		select {
		case <-h.done:
			for conn := range h.clients {
				conn.Close()
			}
			return
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.remove:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
		case msg := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					logger.Warn().Err(err).Msg("Failed to send sample to WebSocket client")
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// Broadcast sends a sample to every connected client. Drops the sample when
// the broadcast channel is full rather than stalling the tick loop.
func (h *hub) Broadcast(sample simulation.Sample) {
	data, err := json.Marshal(sample)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal sample for broadcast")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Debug().Msg("WebSocket broadcast buffer full, dropping sample")
	}
}

// shutdown closes every registered connection and stops the hub goroutine.
// Safe to call more than once.
func (h *hub) shutdown() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *hub) handle(current simulation.Sample, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	// New clients receive the current sample before registration. Once a
	// connection is registered the hub goroutine is its only writer, so the
	// initial frame must never overlap with a broadcast.
	data, err := json.Marshal(current)
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, data)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to send initial sample to WebSocket client")
		conn.Close()
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.remove <- conn:
			case <-h.done:
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logger.Warn().Err(err).Msg("WebSocket read error")
				}
				break
			}
		}
	}()
}
