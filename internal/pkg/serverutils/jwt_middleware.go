package serverutils

import (
	"fmt"
	"strings"

	"learnpath-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const LocalsUserId = "user_id"

// NewJwtMiddleware validates the bearer token and stores the user id in locals.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return apperror.Unauthenticated("missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			return apperror.Unauthenticated("invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperror.Unauthenticated("invalid claims")
		}

		userId, ok := claims["user_id"].(string)
		if !ok || userId == "" {
			return apperror.Unauthenticated("invalid claims")
		}

		ctx.Locals(LocalsUserId, userId)
		return ctx.Next()
	}
}

// UserIdFromCtx reads the caller id placed by the JWT middleware.
func UserIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals(LocalsUserId).(string)
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthenticated("invalid user identity")
	}
	return userId, nil
}
