package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party messaging thread. The participant pair is stored
// normalized (UserAId < UserBId lexicographically) so the uniqueness invariant
// holds regardless of which side initiated the conversation.
type Conversation struct {
	Id        uuid.UUID
	UserAId   uuid.UUID
	UserBId   uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool

	// Eagerly loaded associations (nil unless the repository preloads them)
	UserA    *User
	UserB    *User
	Messages []*Message
}

// HasParticipant reports whether userId is one of the two participants.
func (c *Conversation) HasParticipant(userId uuid.UUID) bool {
	return c.UserAId == userId || c.UserBId == userId
}

// Counterpart returns the participant id on the other side of userId.
// Callers must check HasParticipant first.
func (c *Conversation) Counterpart(userId uuid.UUID) uuid.UUID {
	if c.UserAId == userId {
		return c.UserBId
	}
	return c.UserAId
}

// CounterpartUser returns the eagerly loaded counterpart profile, if present.
func (c *Conversation) CounterpartUser(userId uuid.UUID) *User {
	if c.UserAId == userId {
		return c.UserB
	}
	return c.UserA
}

// NormalizePair orders two user ids into the canonical (low, high) form used
// by the storage layer's unique index.
func NormalizePair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	for i := 0; i < len(x); i++ {
		if x[i] < y[i] {
			return x, y
		}
		if x[i] > y[i] {
			return y, x
		}
	}
	return x, y
}

// Message is an immutable entry in a conversation's log. Only the read flag
// may change after creation. Seq is assigned by the database and breaks
// created-at ties deterministically.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	SenderId       uuid.UUID
	Content        string
	ImageURLs      []string
	IsRead         bool
	Seq            int64
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool

	Sender *User
}
