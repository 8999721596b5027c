package admin_feed

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type Handler struct {
	feed     Feed
	upgrader websocket.Upgrader
	logger   Logger
}

// NewHandler allowedOrigins пустой список разрешает любой Origin
func NewHandler(feed Feed, allowedOrigins []string, logger Logger) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Handler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: logger,
	}
}

// Handle GET /api/v1/admin/feed
// Поток событий бронирований для администратора через WebSocket
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("GET /admin/feed - Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	messages, cancel := h.feed.Subscribe()
	defer cancel()

	h.logger.Info("GET /admin/feed - Subscriber connected: remote=%s", r.RemoteAddr)

	closed := make(chan struct{})
	go h.readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("GET /admin/feed - Write failed: %v", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			h.logger.Info("GET /admin/feed - Subscriber disconnected: remote=%s", r.RemoteAddr)
			return

		case <-r.Context().Done():
			return
		}
	}
}

// readPump читает только управляющие кадры, чтобы заметить закрытие соединения
func (h *Handler) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
