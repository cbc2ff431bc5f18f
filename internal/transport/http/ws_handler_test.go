package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"designer-quiz-service/internal/app"
	"designer-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

func TestDashboardStream(t *testing.T) {
	submissions, analytics, hub := newServices(t)
	wsHandler := NewWSHandler(analytics, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/dashboard", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/dashboard"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// An overview snapshot arrives immediately on connect.
	stats := readOverview(conn, t)
	if stats.Total != 0 {
		t.Fatalf("expected empty overview, got %+v", stats)
	}

	// Any submission mutation pushes a fresh snapshot.
	if _, err := submissions.Start(context.Background(), domain.DeviceMobile); err != nil {
		t.Fatalf("start: %v", err)
	}
	stats = readOverview(conn, t)
	if stats.Total != 1 || stats.InProgress != 1 {
		t.Fatalf("expected one in-progress submission, got %+v", stats)
	}
}

func readOverview(conn *websocket.Conn, t *testing.T) app.OverviewStats {
	t.Helper()
	var msg struct {
		Type    string            `json:"type"`
		Payload app.OverviewStats `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != "overview" {
		t.Fatalf("expected overview, got %s", msg.Type)
	}
	return msg.Payload
}
