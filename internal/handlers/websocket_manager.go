package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Manager tracks live dashboard connections and pushes a window summary
// whenever the orders window is refreshed.
type Manager struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	subscribers map[*websocket.Conn]bool
}

func NewWebSocketManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subscribers: make(map[*websocket.Conn]bool),
	}
}

func (m *Manager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return m.upgrader.Upgrade(w, r, nil)
}

func (m *Manager) AddSubscriber(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[conn] = true
}

func (m *Manager) RemoveSubscriber(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscribers, conn)
}

// NotifyRefresh broadcasts the refreshed window summary to every subscriber.
// Connections that fail to take the write are dropped.
func (m *Manager) NotifyRefresh(count int, fetchedAt time.Time) {
	message := map[string]any{
		"type":       "orders_refreshed",
		"count":      count,
		"fetched_at": fetchedAt,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for conn := range m.subscribers {
		if err := conn.WriteJSON(message); err != nil {
			m.logger.Error("Error writing to WebSocket subscriber", "error", err)
			conn.Close()
			delete(m.subscribers, conn)
		}
	}
}
