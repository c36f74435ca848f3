package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/apicover/apicover/internal/render"
)

// webSocketHandler streams coverage reports to connected clients. The client
// drives refreshes: every text frame it sends triggers a pipeline run and a
// fresh report JSON push. A report is also pushed on connect.
type webSocketHandler struct {
	run      RunFunc
	upgrader websocket.Upgrader
}

func newWebSocketHandler(run RunFunc) *webSocketHandler {
	return &webSocketHandler{
		run: run,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP handles WebSocket upgrade and streaming.
func (h *webSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Reader goroutine: each incoming frame is a refresh request; a read
	// error means the client is gone. Pending refreshes coalesce into one.
	refresh := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			select {
			case refresh <- struct{}{}:
			default:
			}
		}
	}()

	if err := h.push(conn); err != nil {
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-refresh:
			if err := h.push(conn); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}

// push runs the pipeline and sends the rendered JSON report to the client.
func (h *webSocketHandler) push(conn *websocket.Conn) error {
	report, mapping, err := h.run()
	if err != nil {
		log.Printf("Failed to build report: %v", err)
		return conn.WriteJSON(map[string]string{"error": err.Error()})
	}

	out, err := (&render.JSON{}).Render(report, mapping)
	if err != nil {
		log.Printf("Failed to render report: %v", err)
		return err
	}

	return conn.WriteMessage(websocket.TextMessage, []byte(out))
}
