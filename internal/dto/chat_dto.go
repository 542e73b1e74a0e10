package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	UserA string `json:"user_a" validate:"required,uuid4"`
	UserB string `json:"user_b" validate:"required,uuid4"`
}

type ConversationResponse struct {
	Id        uuid.UUID `json:"id"`
	UserAId   uuid.UUID `json:"user_a_id"`
	UserBId   uuid.UUID `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CounterpartProfile is the role-shaped public profile of the other side of a
// conversation: shops expose shop branding, customers their personal profile.
type CounterpartProfile struct {
	Id     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
	Role   string    `json:"role"`
}

type LastMessageSummary struct {
	Id        uuid.UUID `json:"id"`
	SenderId  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	ImageUrl  string    `json:"imageUrl,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationListItem struct {
	ConversationId uuid.UUID           `json:"conversationId"`
	Counterpart    CounterpartProfile  `json:"counterpart"`
	LastMessage    *LastMessageSummary `json:"lastMessage,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      *time.Time          `json:"updated_at,omitempty"`
}

type ConversationListResponse struct {
	Items      []ConversationListItem `json:"items"`
	TotalCount int64                  `json:"totalCount"`
	Page       int                    `json:"page"`
	Size       int                    `json:"size"`
}
