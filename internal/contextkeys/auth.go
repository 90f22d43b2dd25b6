package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

type bearerTokenKeyType struct{}
type userIDKeyType struct{}

var (
	bearerTokenKey = bearerTokenKeyType{}
	userIDKey      = userIDKeyType{}
)

// ContextWithBearerToken сохраняет токен клиента для пересылки бэкенду.
func ContextWithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

func BearerTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(bearerTokenKey).(string); ok {
		return token
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext возвращает ID пользователя, проставленный AuthMiddleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
