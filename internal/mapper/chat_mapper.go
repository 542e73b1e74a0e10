package mapper

import (
	"encoding/json"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatMapper struct {
	userMapper *UserMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{userMapper: NewUserMapper()}
}

// Conversation Mappers

func (m *ChatMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var messages []*entity.Message
	if c.Messages != nil {
		messages = make([]*entity.Message, len(c.Messages))
		for i, msg := range c.Messages {
			messages[i] = m.MessageToEntity(msg)
		}
	}

	return &entity.Conversation{
		Id:        c.Id,
		UserAId:   c.UserAId,
		UserBId:   c.UserBId,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
		UserA:     m.userMapper.ToEntity(c.UserA),
		UserB:     m.userMapper.ToEntity(c.UserB),
		Messages:  messages,
	}
}

func (m *ChatMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:        c.Id,
		UserAId:   c.UserAId,
		UserBId:   c.UserBId,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var deletedAt *time.Time
	if msg.DeletedAt.Valid {
		t := msg.DeletedAt.Time
		deletedAt = &t
	}

	var imageURLs []string
	if len(msg.ImageURLs) > 0 {
		// Corrupt jsonb is treated as no attachments rather than failing reads
		_ = json.Unmarshal(msg.ImageURLs, &imageURLs)
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		SenderId:       msg.SenderId,
		Content:        msg.Content,
		ImageURLs:      imageURLs,
		IsRead:         msg.IsRead,
		Seq:            msg.Seq,
		CreatedAt:      msg.CreatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      msg.DeletedAt.Valid,
		Sender:         m.userMapper.ToEntity(msg.Sender),
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if msg.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *msg.DeletedAt, Valid: true}
	} else if msg.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var imageURLs datatypes.JSON
	if len(msg.ImageURLs) > 0 {
		raw, err := json.Marshal(msg.ImageURLs)
		if err == nil {
			imageURLs = datatypes.JSON(raw)
		}
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		SenderId:       msg.SenderId,
		Content:        msg.Content,
		ImageURLs:      imageURLs,
		IsRead:         msg.IsRead,
		Seq:            msg.Seq,
		CreatedAt:      msg.CreatedAt,
		DeletedAt:      deletedAt,
	}
}
