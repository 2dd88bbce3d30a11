package live

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
)

const writeTimeout = 3 * time.Second

// Handler upgrades the connection and streams board updates until the client
// disconnects. The stream is one-way; anything the client sends is drained
// and ignored.
func Handler(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Error("Websocket accept failed", "error", err)
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		id, updates := h.Subscribe()
		defer h.Unsubscribe(id)

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for status := range updates {
				payload, err := json.Marshal(status)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					writeCancel()
					return
				}
			}
		}()

		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}
		}
	}
}
