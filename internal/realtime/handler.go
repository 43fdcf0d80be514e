package realtime

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/middleware"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type Handler struct {
	hub      *Hub
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, log *slog.Logger, allowedOrigins []string) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimRight(o, "/")] = true
	}

	return &Handler{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return origins[strings.TrimRight(origin, "/")]
			},
		},
	}
}

// Events upgrades the connection and streams change events until the
// client or server goes away. An optional ?collections=clients,services
// filter narrows what the client receives.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	wanted := collectionFilter(r.URL.Query().Get("collections"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("realtime events: upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	log.Info("realtime events: subscribed", slog.Int("subscribers", h.hub.SubscriberCount()))

	// The read loop only exists to notice the client closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Info("realtime events: client gone")
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if wanted != nil && !wanted[ev.Collection] {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Warn("realtime events: write failed", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func collectionFilter(raw string) map[string]bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	wanted := make(map[string]bool)
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			wanted[name] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}
	return wanted
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
