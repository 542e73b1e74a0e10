package implementation

import (
	"context"
	"errors"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/mapper"
	"shopchat-be/internal/model"
	"shopchat-be/internal/repository/contract"
	"shopchat-be/internal/repository/scope"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) CreateIfNotExists(ctx context.Context, userA, userB uuid.UUID) (*entity.Conversation, error) {
	low, high := entity.NormalizePair(userA, userB)

	// Fast path: the pair usually already has a conversation
	existing, err := r.findPair(ctx, low, high)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	m := &model.Conversation{
		Id:      uuid.New(),
		UserAId: low,
		UserBId: high,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// A concurrent creator won the unique (user_a_id, user_b_id) index.
		// The loser re-reads the winner's row instead of erroring the caller.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := r.findPair(ctx, low, high)
			if findErr != nil {
				return nil, findErr
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, err
	}

	return r.mapper.ConversationToEntity(m), nil
}

func (r *ConversationRepositoryImpl) findPair(ctx context.Context, low, high uuid.UUID) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(
		r.db.WithContext(ctx).Preload("UserA").Preload("UserB"),
		specification.ByPair{UserAID: low, UserBID: high},
	)
	err := query.First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConversationToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("UserA").Preload("UserB"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConversationToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("UserA").Preload("UserB"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Conversation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ConversationToEntity(m)
	}
	return entities, nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ConversationRepositoryImpl) FindAllForUserEager(ctx context.Context, userId uuid.UUID) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	err := r.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(scope.OrderByLogPosition)
		}).
		Preload("Messages.Sender").
		Where("user_a_id = ? OR user_b_id = ?", userId, userId).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.Conversation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ConversationToEntity(m)
	}
	return entities, nil
}

func (r *ConversationRepositoryImpl) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (r *ConversationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Conversation{}, id).Error
}
