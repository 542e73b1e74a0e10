package contract

import (
	"context"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	// Create persists a new message. Seq and CreatedAt are assigned by the
	// database and written back into the entity.
	Create(ctx context.Context, message *entity.Message) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// History returns the full log of a conversation ascending by
	// (created_at, seq), senders preloaded.
	History(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error)

	// LastPerConversation returns the most recent message of each given
	// conversation, keyed by conversation id.
	LastPerConversation(ctx context.Context, conversationIds []uuid.UUID) (map[uuid.UUID]*entity.Message, error)

	// MarkConversationRead flips the read flag on every unread message the
	// reader's counterpart sent in the conversation.
	MarkConversationRead(ctx context.Context, conversationId, readerId uuid.UUID) error

	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
}
