package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/bjaspel63/splitClass/internal/config"
	"github.com/bjaspel63/splitClass/internal/metrics"
	"github.com/bjaspel63/splitClass/internal/signaling"
)

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  64 * 1024, // 64 KB
		WriteBufferSize: 64 * 1024, // 64 KB

		// An empty allow-list permits every origin, for development.
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// ServeWs returns an http.HandlerFunc that upgrades the connection and
// hands it to the hub.
func ServeWs(hub *signaling.Hub, cfg config.Config, logger *slog.Logger) http.HandlerFunc {
	upgrader := newUpgrader(cfg.AllowedOrigins)

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", slog.Any("error", err))
			return
		}

		client := signaling.NewClient(hub, conn, cfg.SendQueueSize)

		// Register before the pumps start, so the hub knows the client by
		// the time its first frame arrives.
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}

// Routes assembles the HTTP surface: the websocket endpoint, a health
// check, and the metrics scrape endpoint.
func Routes(hub *signaling.Hub, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Signaling server is healthy."))
	})

	mux.Handle("/metrics", metrics.Handler(m))
	mux.HandleFunc("/ws", ServeWs(hub, cfg, logger))

	return mux
}
