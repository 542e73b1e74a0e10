package contract

import (
	"context"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// UserRepository is read-mostly: accounts are owned by the platform's user
// subsystem, this service only resolves public profiles. Create exists for
// migrations and tests.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
