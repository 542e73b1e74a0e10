package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation rows store the participant pair normalized (user_a_id < user_b_id).
// The composite unique index is partial (live rows only) so soft deletion never
// blocks reactivating a conversation for the same pair.
type Conversation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserAId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair,where:deleted_at IS NULL"`
	UserBId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair,where:deleted_at IS NULL"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserA    *User      `gorm:"foreignKey:UserAId"`
	UserB    *User      `gorm:"foreignKey:UserBId"`
	Messages []*Message `gorm:"foreignKey:ConversationId"`
}

func (Conversation) TableName() string {
	return "conversations"
}
