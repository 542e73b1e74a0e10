package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevocationStore struct {
	revoked map[string]bool
	err     error
}

func (s *fakeRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[token], nil
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userId := uuid.New()
	tokenStr := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id":  userId.String(),
		"username": "budi",
		"role":     "shop",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	svc := NewTokenService(&fakeRevocationStore{}, noopLogger{})
	identity, err := svc.Authenticate(context.Background(), tokenStr)
	require.NoError(t, err)

	assert.Equal(t, userId, identity.Id)
	assert.Equal(t, "budi", identity.Username)
	assert.Equal(t, entity.UserRoleShop, identity.Role)
}

func TestAuthenticateEmptyToken(t *testing.T) {
	svc := NewTokenService(&fakeRevocationStore{}, noopLogger{})
	_, err := svc.Authenticate(context.Background(), "")
	assertKind(t, err, serverutils.KindUnauthenticated)
}

func TestAuthenticateRevokedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userId := uuid.New()
	tokenStr := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	// Revocation wins even for an otherwise valid token
	store := &fakeRevocationStore{revoked: map[string]bool{tokenStr: true}}
	svc := NewTokenService(store, noopLogger{})
	_, err := svc.Authenticate(context.Background(), tokenStr)
	assertKind(t, err, serverutils.KindTokenRevoked)
}

func TestAuthenticateRevocationStoreDown(t *testing.T) {
	svc := NewTokenService(&fakeRevocationStore{err: errors.New("redis down")}, noopLogger{})
	_, err := svc.Authenticate(context.Background(), "whatever")
	assertKind(t, err, serverutils.KindInternal)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewTokenService(&fakeRevocationStore{}, noopLogger{})
	_, err := svc.Authenticate(context.Background(), "not.a.jwt")
	assertKind(t, err, serverutils.KindInvalidToken)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "right-secret")
	tokenStr := signTestToken(t, "wrong-secret", jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	svc := NewTokenService(&fakeRevocationStore{}, noopLogger{})
	_, err := svc.Authenticate(context.Background(), tokenStr)
	assertKind(t, err, serverutils.KindInvalidToken)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tokenStr := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	svc := NewTokenService(&fakeRevocationStore{}, noopLogger{})
	_, err := svc.Authenticate(context.Background(), tokenStr)
	assertKind(t, err, serverutils.KindInvalidToken)
}

func TestAuthenticateMissingUserId(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tokenStr := signTestToken(t, "test-secret", jwt.MapClaims{
		"username": "no-id",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	svc := NewTokenService(&fakeRevocationStore{}, noopLogger{})
	_, err := svc.Authenticate(context.Background(), tokenStr)
	assertKind(t, err, serverutils.KindInvalidToken)
}
