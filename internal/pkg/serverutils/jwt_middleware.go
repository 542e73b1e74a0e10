package serverutils

import (
	"context"

	"shopchat-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Identity is the verified caller attached to a request or gateway session.
type Identity struct {
	Id       uuid.UUID
	Username string
	Role     entity.UserRole
}

// TokenAuthenticator is the black-box token validation capability: revocation
// lookup first, then signature/claims verification.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

// JwtMiddleware authenticates REST calls. The verified identity lands in
// Locals("identity"); handlers must never trust client-supplied user ids.
func JwtMiddleware(tokens TokenAuthenticator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return NewUnauthenticated("missing token")
		}
		tokenStr := authHeader[7:]

		identity, err := tokens.Authenticate(ctx.Context(), tokenStr)
		if err != nil {
			return err
		}

		ctx.Locals("identity", identity)
		ctx.Locals("user_id", identity.Id.String())
		return ctx.Next()
	}
}

// IdentityFromCtx reads the identity set by JwtMiddleware.
func IdentityFromCtx(ctx *fiber.Ctx) (*Identity, error) {
	identity, ok := ctx.Locals("identity").(*Identity)
	if !ok || identity == nil {
		return nil, NewUnauthenticated("missing authenticated identity")
	}
	return identity, nil
}
