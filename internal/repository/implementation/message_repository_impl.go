package implementation

import (
	"context"
	"errors"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/mapper"
	"shopchat-be/internal/model"
	"shopchat-be/internal/repository/contract"
	"shopchat-be/internal/repository/scope"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	// Read back database-assigned fields (seq, created_at)
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	var m model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MessageToEntity(&m), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MessageToEntity(m)
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepositoryImpl) History(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(
		r.db.WithContext(ctx).Preload("Sender"),
		specification.ByConversationID{ConversationID: conversationId},
	)
	err := query.Scopes(scope.OrderByLogPosition).Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MessageToEntity(m)
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) LastPerConversation(ctx context.Context, conversationIds []uuid.UUID) (map[uuid.UUID]*entity.Message, error) {
	result := make(map[uuid.UUID]*entity.Message, len(conversationIds))
	if len(conversationIds) == 0 {
		return result, nil
	}

	// DISTINCT ON keeps only the newest row per conversation in one round trip
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (conversation_id) *
		     FROM messages
		     WHERE conversation_id IN ? AND deleted_at IS NULL
		     ORDER BY conversation_id, created_at DESC, seq DESC`, conversationIds).
		Scan(&models).Error
	if err != nil {
		return nil, err
	}

	for _, m := range models {
		result[m.ConversationId] = r.mapper.MessageToEntity(m)
	}
	return result, nil
}

func (r *MessageRepositoryImpl) MarkConversationRead(ctx context.Context, conversationId, readerId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = FALSE", conversationId, readerId).
		Update("is_read", true).Error
}

func (r *MessageRepositoryImpl) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Delete(&model.Message{}).Error
}
