package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ai-writing-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	clusterChannel = "session_events"

	clusterBuffer         = 256
	clusterPublishTimeout = 2 * time.Second
)

// Envelope is the frame sent to every editor.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	At   time.Time       `json:"at"`
}

type Hub struct {
	// Registered clients of the workspace.
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil runs single-instance.
	rdb        *redis.Client
	instanceId string
	// Frames waiting for the Redis publisher. Full means dropped.
	clusterOut chan []byte

	logger logger.ILogger
	done   chan struct{}
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		clusterOut: make(chan []byte, clusterBuffer),
		logger:     log,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
		go h.publishToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.Id, "clients": count})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.Id})

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to every local client and, with Redis, to the
// clients of other instances. It never waits on Redis.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := encode(eventType, payload)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
		return
	}

	h.deliver(data)

	if h.rdb != nil {
		msg, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceId,
			"message": json.RawMessage(data),
		})
		select {
		case h.clusterOut <- msg:
		default:
			h.logger.Warn("Hub", "Redis publish queue full, dropping event", map[string]interface{}{"type": eventType})
		}
	}
}

func (h *Hub) publishToRedis() {
	for {
		select {
		case msg := <-h.clusterOut:
			ctx, cancel := context.WithTimeout(context.Background(), clusterPublishTimeout)
			err := h.rdb.Publish(ctx, clusterChannel, msg).Err()
			cancel()
			if err != nil {
				h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
			}
		case <-h.done:
			return
		}
	}
}

func encode(eventType string, payload interface{}) ([]byte, error) {
	env := Envelope{Type: eventType, At: time.Now().UTC()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

// deliver queues data on every local client. A client whose buffer is full
// is dropped.
func (h *Hub) deliver(data []byte) {
	var slow []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"client_id": client.Id})
		go func(c *Client) {
			select {
			case h.unregister <- c:
			case <-h.done:
			}
		}(client)
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload struct {
				Origin  string          `json:"origin"`
				Message json.RawMessage `json:"message"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceId {
				continue
			}
			h.deliver(payload.Message)
		case <-h.done:
			return
		}
	}
}
