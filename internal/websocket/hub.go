package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"admission-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries cross-instance fanout when more than one API
// instance is running.
const redisChannel = "assistant_ws_events"

// Notification is the payload pushed to connected clients.
type Notification struct {
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Hub tracks connected clients per user and fans notifications out to
// them, locally and via Redis to sibling instances.
type Hub struct {
	clients    map[uuid.UUID][]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	rdb *redis.Client
	log logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		log:        log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.consumeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.log.Info("ws_hub", "client registered", map[string]interface{}{"user_id": client.UserID.String()})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a notification to every connection a user holds.
func (h *Hub) Send(userID uuid.UUID, notification Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()
	for _, client := range clients {
		h.deliver(client, data)
	}

	h.publishToRedis(userID.String(), data)
}

// Broadcast pushes a notification to every connected client.
func (h *Hub) Broadcast(notification Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		return
	}

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.deliver(client, data)
		}
	}
	h.mu.RUnlock()

	h.publishToRedis("*", data)
}

func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		// Slow consumer, drop the connection rather than the hub.
		h.log.Warn("ws_hub", "send buffer full, dropping client", map[string]interface{}{"user_id": client.UserID.String()})
		close(client.Send)
		h.unregister <- client
	}
}

type redisEnvelope struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) publishToRedis(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(redisEnvelope{TargetUserID: target, Message: data})
	h.rdb.Publish(context.Background(), redisChannel, payload)
}

// consumeRedis relays notifications published by other instances to the
// clients connected here.
func (h *Hub) consumeRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope redisEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.log.Warn("ws_hub", "bad redis payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		if envelope.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					h.deliver(client, envelope.Message)
				}
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(envelope.TargetUserID)
		if err != nil {
			continue
		}
		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()
		for _, client := range clients {
			h.deliver(client, envelope.Message)
		}
	}
}
