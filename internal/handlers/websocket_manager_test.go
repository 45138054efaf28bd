package handlers

import (
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestNotifyRefreshBroadcastsToSubscribers(t *testing.T) {
	manager := NewWebSocketManager(slog.Default())
	wsHandler := NewWebSocketHandler(slog.Default(), manager)

	router := mux.NewRouter()
	wsHandler.RegisterRoutes(router)

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/orders"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	fetchedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Give the server loop a moment to register the subscriber.
	require.Eventually(t, func() bool {
		manager.mu.RLock()
		defer manager.mu.RUnlock()
		return len(manager.subscribers) == 1
	}, time.Second, 10*time.Millisecond)

	manager.NotifyRefresh(42, fetchedAt)

	conn.SetReadDeadline(time.Now().Add(time.Second))

	var message map[string]any
	require.NoError(t, conn.ReadJSON(&message))
	require.Equal(t, "orders_refreshed", message["type"])
	require.Equal(t, float64(42), message["count"])
}
