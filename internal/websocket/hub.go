package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"shopchat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chat_room_events"

type subscription struct {
	client *Client
	room   uuid.UUID
}

// Hub owns the room registry: room id -> set of live connections. Membership
// is mutated only through the subscribe/unregister operations tied to a
// connection's own lifecycle; no connection ever touches another's rooms.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]struct{}

	subscribe  chan subscription
	unregister chan *Client

	// Lock for safe map access. Send channels are only closed while the
	// write lock is held, so delivering under the read lock cannot race a
	// close.
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// instanceId keeps this hub from re-delivering its own cluster events
	instanceId string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		subscribe:  make(chan subscription),
		unregister: make(chan *Client),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case sub := <-h.subscribe:
			h.mu.Lock()
			set, ok := h.rooms[sub.room]
			if !ok {
				set = make(map[*Client]struct{})
				h.rooms[sub.room] = set
			}
			set[sub.client] = struct{}{}
			sub.client.rooms[sub.room] = struct{}{}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			for room := range client.rooms {
				if set, ok := h.rooms[room]; ok {
					delete(set, client)
					if len(set) == 0 {
						delete(h.rooms, room)
					}
				}
			}
			if !client.closed {
				client.closed = true
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.identity.Id})
		}
	}
}

// Subscribe adds a connection to a conversation room.
func (h *Hub) Subscribe(client *Client, room uuid.UUID) {
	h.subscribe <- subscription{client: client, room: room}
}

// Unregister drops a connection from every room it joined and closes its
// outbound queue. Safe to call more than once.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsSubscribed reports whether the connection already joined the room.
func (h *Hub) IsSubscribed(client *Client, room uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := client.rooms[room]
	return ok
}

// Broadcast sends a payload to every local subscriber of the room and
// publishes it for subscribers connected to other instances.
func (h *Hub) Broadcast(room uuid.UUID, payload []byte) {
	h.deliverLocal(room, payload)

	if h.rdb != nil {
		cluster, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceId,
			"room_id": room.String(),
			"message": json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), clusterChannel, cluster)
	}
}

func (h *Hub) deliverLocal(room uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		if client.closed {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Slow consumer: drop the connection rather than block the room
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
				"user_id": client.identity.Id,
			})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			Origin  string          `json:"origin"`
			RoomID  string          `json:"room_id"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Cluster event parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		// Our own publish already went to local subscribers
		if payload.Origin == h.instanceId {
			continue
		}

		room, err := uuid.Parse(payload.RoomID)
		if err != nil {
			continue
		}

		h.deliverLocal(room, payload.Message)
	}
}
