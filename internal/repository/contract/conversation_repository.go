package contract

import (
	"context"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	// CreateIfNotExists returns the existing conversation for the unordered
	// (userA, userB) pair, or creates one. A concurrent creator losing the
	// unique-index race falls back to re-reading the winner's row.
	CreateIfNotExists(ctx context.Context, userA, userB uuid.UUID) (*entity.Conversation, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindAllForUserEager loads every conversation the user participates in,
	// with both participant profiles and the full message log (ascending,
	// senders preloaded). Gateway connect path only.
	FindAllForUserEager(ctx context.Context, userId uuid.UUID) ([]*entity.Conversation, error)

	// Touch bumps updated_at so listing sort order follows activity.
	Touch(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}
