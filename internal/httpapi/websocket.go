package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/laundrosim/backend/internal/bus"
	"github.com/laundrosim/backend/internal/event"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is not origin-restricted; auth sits in front of it.
	CheckOrigin: func(*http.Request) bool { return true },
}

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
	wsSendBuffer = 256
)

// handleWebSocket streams every committed event to the client as JSON.
// An optional ?agent_id= filters to one agent's stream. Slow clients are
// disconnected rather than allowed to block the bus.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.bus == nil {
		writeError(w, http.StatusServiceUnavailable, "event stream not configured")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	agentFilter := r.URL.Query().Get("agent_id")
	send := make(chan []byte, wsSendBuffer)

	unsubscribe := s.bus.Subscribe(bus.TopicAll, func(_ context.Context, ev *event.Event) error {
		if agentFilter != "" && ev.AgentID != agentFilter {
			return nil
		}
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		select {
		case send <- data:
		default:
			// Buffer full: the writer loop will notice the closed channel.
		}
		return nil
	})

	go func() {
		defer func() {
			unsubscribe()
			conn.Close()
		}()

		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case data := <-send:
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Reader loop: we ignore client messages but need to process control
	// frames and detect disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()
}
