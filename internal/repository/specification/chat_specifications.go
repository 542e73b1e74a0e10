package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByConversationID filters messages by their owning conversation.
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// ByParticipant filters conversations where the user sits on either side.
type ByParticipant struct {
	UserID uuid.UUID
}

func (s ByParticipant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_a_id = ? OR user_b_id = ?", s.UserID, s.UserID)
}

// ByPair filters conversations by the normalized participant pair.
// Callers must pass the pair already ordered (low, high).
type ByPair struct {
	UserAID uuid.UUID
	UserBID uuid.UUID
}

func (s ByPair) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_a_id = ? AND user_b_id = ?", s.UserAID, s.UserBID)
}
