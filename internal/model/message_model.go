package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Message.Seq is a BIGSERIAL assigned on insert. Replay and history ordering is
// always (created_at, seq) so timestamp ties cannot reorder concurrent sends.
type Message struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index:idx_messages_conversation_order,priority:1"`
	SenderId       uuid.UUID      `gorm:"type:uuid;not null"`
	Content        string         `gorm:"type:text;not null"`
	ImageURLs      datatypes.JSON `gorm:"type:jsonb"`
	IsRead         bool           `gorm:"not null;default:false"`
	Seq            int64          `gorm:"autoIncrement;index:idx_messages_conversation_order,priority:3"`
	CreatedAt      time.Time      `gorm:"index:idx_messages_conversation_order,priority:2"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	Sender *User `gorm:"foreignKey:SenderId"`
}

func (Message) TableName() string {
	return "messages"
}
