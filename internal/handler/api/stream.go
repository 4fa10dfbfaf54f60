package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"BtcPulse/internal/domain/models"
	xlogger "BtcPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// StreamHandler pushes dashboard snapshots to WebSocket clients. The app
// refresh loop calls Broadcast after each evaluation; clients receive the
// marshaled DashboardData as one text frame per refresh.
type StreamHandler struct {
	logger   *xlogger.Logger
	upgrader websocket.Upgrader

	// writeWait bounds every conn write so a stalled client cannot
	// block the refresh loop.
	writeWait time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    []byte
}

func NewStreamHandler(logger *xlogger.Logger) *StreamHandler {
	return &StreamHandler{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		writeWait: 5 * time.Second,
		clients:   make(map[*websocket.Conn]struct{}),
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve upgrades the connection and keeps it open until the client
// disconnects. The latest snapshot is sent immediately on connect.
func (h *StreamHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	// Send the cached snapshot before the conn joins the broadcast set.
	// Once registered, the refresh loop is the only writer on the conn;
	// writing here after registration would race with Broadcast.
	h.mu.Lock()
	last := h.last
	h.mu.Unlock()

	if last != nil {
		conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, last); err != nil {
			_ = conn.Close()
			return nil
		}
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("stream client connected", xlogger.Int("clients", h.ClientCount()))

	// Drain control frames; exit on client close.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

// Broadcast sends the snapshot to every connected client. Slow or dead
// clients are dropped instead of blocking the refresh loop.
func (h *StreamHandler) Broadcast(data *models.DashboardData) {
	b, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("stream marshal_error", xlogger.Error(err))
		return
	}

	h.mu.Lock()
	h.last = b
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			h.drop(conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *StreamHandler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *StreamHandler) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.clients = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

func (h *StreamHandler) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}
