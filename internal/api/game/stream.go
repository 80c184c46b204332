package game

import (
	"net/http"
	"time"

	"mermaid_slot/internal/converter"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	streamPollInterval = 100 * time.Millisecond
	streamWriteTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream отдаёт события сессии по websocket по мере их появления.
// Делит журнал с Events: событие уходит либо сюда, либо в GET /game/events.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if sess.Events == nil {
		http.Error(w, "event stream unavailable", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	// клиент ничего не шлёт, читаем только чтобы заметить закрытие
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case <-ticker.C:
			events := converter.ToEventsResponse(sess.Events.Drain())
			if len(events.Events) == 0 {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(events); err != nil {
				h.logger.Debug("websocket write", zap.String("username", sess.Game.Username()), zap.Error(err))
				return
			}
		}
	}
}
