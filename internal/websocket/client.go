package websocket

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	// sendTimeout bounds the persist-then-broadcast path. It is detached
	// from the connection on purpose: a committed append must still reach
	// the room even if the sender drops mid-flight.
	sendTimeout = 10 * time.Second
)

// Conn is the subset of the websocket connection the gateway drives. Satisfied
// by *websocket.Conn.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// Client is the gateway-side session of one live connection: the transport
// handle, the verified identity, and the set of subscribed rooms.
type Client struct {
	hub  *Hub
	conn Conn

	identity *serverutils.Identity

	// Buffered channel of outbound frames
	send chan []byte

	// rooms is mutated only by the hub's run loop under its lock
	rooms  map[uuid.UUID]struct{}
	closed bool

	chat   service.IChatService
	logger logger.ILogger

	// ready flips once the session reaches Authenticated&Subscribed.
	// sendMessage frames arriving earlier are rejected.
	ready atomic.Bool
}

func NewClient(hub *Hub, conn Conn, identity *serverutils.Identity, chat service.IChatService, log logger.ILogger) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		identity: identity,
		send:     make(chan []byte, 256),
		rooms:    make(map[uuid.UUID]struct{}),
		chat:     chat,
		logger:   log,
	}
}

// readPump pumps frames from the websocket connection into the gateway.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("ChatGateway", "Unexpected close", map[string]interface{}{
					"user_id": c.identity.Id, "error": err.Error(),
				})
			}
			break
		}

		var envelope dto.Envelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			c.sendException(serverutils.NewValidationError("malformed frame"))
			continue
		}

		switch envelope.Event {
		case dto.EventSendMessage:
			c.handleSendMessage(envelope.Data)
		default:
			c.sendException(serverutils.NewValidationError("unknown event: " + envelope.Event))
		}
	}
}

func (c *Client) handleSendMessage(data json.RawMessage) {
	if !c.ready.Load() {
		c.sendException(serverutils.NewAuthorizationError("connection is not ready"))
		return
	}

	var payload dto.SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.sendException(serverutils.NewValidationError("malformed sendMessage payload"))
		return
	}
	if err := serverutils.ValidateRequest(payload); err != nil {
		c.sendException(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	// Sender is the session identity, never a payload field
	event, err := c.chat.SendMessage(ctx, c.identity.Id, &payload)
	if err != nil {
		c.sendException(err)
		return
	}

	// A conversation created after connect time has no subscription yet;
	// join its room before fanning out so the sender gets the echo too.
	if !c.hub.IsSubscribed(c, event.ChatRoomId) {
		c.hub.Subscribe(c, event.ChatRoomId)
	}

	frame, err := marshalEnvelope(dto.EventMessage, event)
	if err != nil {
		c.sendException(serverutils.NewInternalError("could not encode message"))
		return
	}

	c.hub.Broadcast(event.ChatRoomId, frame)
}

// sendException queues a structured exception frame on this connection only.
func (c *Client) sendException(err error) {
	frame, marshalErr := marshalEnvelope(dto.EventException, exceptionFromError(err))
	if marshalErr != nil {
		return
	}
	select {
	case c.send <- frame:
	default:
		// Buffer full; the connection is being dropped anyway
	}
}

// writePump pumps frames from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func marshalEnvelope(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.Envelope{Event: event, Data: data})
}

func exceptionFromError(err error) dto.ExceptionEvent {
	if appErr, ok := err.(*serverutils.AppError); ok {
		return dto.ExceptionEvent{StatusCode: appErr.StatusCode, Message: appErr.Message}
	}
	return dto.ExceptionEvent{StatusCode: 500, Message: "internal server error"}
}
