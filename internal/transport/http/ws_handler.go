package http

import (
	"log"
	"net/http"

	"designer-quiz-service/internal/app"
	"github.com/gorilla/websocket"
)

// WSHandler streams live dashboard stats to admin clients over a websocket.
type WSHandler struct {
	analytics *app.AnalyticsService
	hub       *app.DashboardHub
	upgrader  websocket.Upgrader
}

func NewWSHandler(analytics *app.AnalyticsService, hub *app.DashboardHub) *WSHandler {
	return &WSHandler{
		analytics: analytics,
		hub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and pushes an overview snapshot immediately,
// then again whenever submission data changes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	signals, cancel := h.hub.Subscribe()
	defer cancel()

	// Reader goroutine only detects close; dashboard clients never send.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if !h.pushOverview(r, conn) {
		return
	}
	for {
		select {
		case _, ok := <-signals:
			if !ok {
				return
			}
			if !h.pushOverview(r, conn) {
				return
			}
		case <-readerDone:
			return
		}
	}
}

func (h *WSHandler) pushOverview(r *http.Request, conn *websocket.Conn) bool {
	stats, err := h.analytics.Overview(r.Context())
	if err != nil {
		log.Printf("dashboard overview failed: %v", err)
		_ = conn.WriteJSON(outboundMessage[string]{Type: "error", Payload: "stats unavailable"})
		return true
	}
	if err := conn.WriteJSON(outboundMessage[app.OverviewStats]{Type: "overview", Payload: stats}); err != nil {
		log.Printf("ws write error: %v", err)
		return false
	}
	return true
}
