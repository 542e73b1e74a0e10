package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Gateway wire protocol: every frame is an envelope with an event name and a
// JSON payload.
const (
	EventMessage     = "message"     // server -> client, replay and live
	EventException   = "exception"   // server -> client, structured failure
	EventSendMessage = "sendMessage" // client -> server
)

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type SendMessagePayload struct {
	ChatRoomId string `json:"chatRoomId" validate:"required,uuid4"`
	Content    string `json:"content" validate:"required,max=4000"`
	ImageUrl   string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// MessageEvent is the payload of a "message" frame. Sender presentation is
// resolved by role before the frame leaves the gateway.
type MessageEvent struct {
	Id           uuid.UUID `json:"id"`
	ChatRoomId   uuid.UUID `json:"chatRoomId"`
	SenderId     uuid.UUID `json:"senderId"`
	SenderName   string    `json:"senderName"`
	SenderAvatar string    `json:"senderAvatar,omitempty"`
	Content      string    `json:"content"`
	ImageUrl     string    `json:"imageUrl,omitempty"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExceptionEvent mirrors the REST error body shape.
type ExceptionEvent struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
