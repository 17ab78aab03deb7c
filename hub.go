package main

import (
	"log"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"nock-and-loose/server/internal/world"
)

const writeWait = 10 * time.Second

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub fans hit reports out to every connected feed subscriber.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      uint64
}

func newHub() *Hub {
	return &Hub{subscribers: make(map[uint64]*subscriber)}
}

// Subscribe registers a connection and returns its id for Unsubscribe.
func (h *Hub) Subscribe(conn *websocket.Conn) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subscribers[id] = &subscriber{conn: conn}
	return id
}

func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// Broadcast sends the report to every subscriber, dropping connections whose
// writes fail or stall past the deadline.
func (h *Hub) Broadcast(report world.HitReport) {
	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("feed: failed to encode report: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("feed: dropping subscriber %d: %v", id, err)
			h.Unsubscribe(id)
		}
	}
}

// Count reports the current subscriber total.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
