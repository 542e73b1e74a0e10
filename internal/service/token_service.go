package service

import (
	"context"
	"os"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/pkg/revocation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ITokenService is the identity-verification boundary. Token issuance lives in
// the platform's auth subsystem; this service only validates.
type ITokenService interface {
	Authenticate(ctx context.Context, token string) (*serverutils.Identity, error)
}

type tokenService struct {
	revocations revocation.Store
	logger      logger.ILogger
}

func NewTokenService(revocations revocation.Store, log logger.ILogger) ITokenService {
	return &tokenService{
		revocations: revocations,
		logger:      log,
	}
}

// Authenticate checks revocation first, then signature and claims. Order
// matters: a blacklisted token must fail as TokenRevoked even when it would
// also fail verification later.
func (s *tokenService) Authenticate(ctx context.Context, tokenStr string) (*serverutils.Identity, error) {
	if tokenStr == "" {
		return nil, serverutils.NewUnauthenticated("missing token")
	}

	revoked, err := s.revocations.IsRevoked(ctx, tokenStr)
	if err != nil {
		s.logger.Error("TokenService", "Revocation lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewInternalError("token validation unavailable")
	}
	if revoked {
		return nil, serverutils.NewTokenRevoked("token has been revoked")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serverutils.NewInvalidToken("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, serverutils.NewInvalidToken("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, serverutils.NewInvalidToken("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, serverutils.NewInvalidToken("token missing user_id")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, serverutils.NewInvalidToken("invalid user id in token")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &serverutils.Identity{
		Id:       userID,
		Username: username,
		Role:     entity.UserRole(role),
	}, nil
}
