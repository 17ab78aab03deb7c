package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"nock-and-loose/server/internal/world"
)

func TestHubBroadcastReachesSubscribers(t *testing.T) {
	hub := newHub()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Subscribe(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	for hub.Count() == 0 {
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast(world.HitReport{
		Tick:       9,
		Shooter:    "player-1",
		Target:     "npc-bandit",
		Part:       "NPC Head [Head]",
		Matched:    true,
		Multiplier: 3,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var report world.HitReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("payload is not a hit report: %v", err)
	}
	if report.Part != "NPC Head [Head]" || report.Multiplier != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := newHub()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	ids := make(chan uint64, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		ids <- hub.Subscribe(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	id := <-ids
	hub.Unsubscribe(id)
	if hub.Count() != 0 {
		t.Fatalf("unsubscribe must remove the connection")
	}

	// A closed subscriber must not take Broadcast down.
	hub.Broadcast(world.HitReport{Tick: 1})
}
