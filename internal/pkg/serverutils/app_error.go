package serverutils

import "github.com/gofiber/fiber/v2"

// ErrorKind is the failure taxonomy shared by REST responses and gateway
// exception events.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindTokenRevoked    ErrorKind = "TOKEN_REVOKED"
	KindInvalidToken    ErrorKind = "INVALID_TOKEN"
	KindValidation      ErrorKind = "VALIDATION_ERROR"
	KindAuthorization   ErrorKind = "AUTHORIZATION_ERROR"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindInternal        ErrorKind = "INTERNAL_ERROR"
)

type AppError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewUnauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, StatusCode: fiber.StatusUnauthorized, Message: message}
}

func NewTokenRevoked(message string) *AppError {
	return &AppError{Kind: KindTokenRevoked, StatusCode: fiber.StatusUnauthorized, Message: message}
}

func NewInvalidToken(message string) *AppError {
	return &AppError{Kind: KindInvalidToken, StatusCode: fiber.StatusUnauthorized, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, StatusCode: fiber.StatusBadRequest, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, StatusCode: fiber.StatusForbidden, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, StatusCode: fiber.StatusNotFound, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{Kind: KindInternal, StatusCode: fiber.StatusInternalServerError, Message: message}
}
