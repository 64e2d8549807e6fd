package serverutils

import (
	"ai-notes-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware guards protected routes. It requires a Bearer token signed
// with the configured secret and stores the embedded user id in locals for
// downstream handlers. Account status is not checked here; services re-fetch
// the user where the operation demands it.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return apperror.Unauthorized("No token provided")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			return apperror.Unauthorized("Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperror.Unauthorized("Invalid token")
		}

		userId, ok := claims["user_id"].(string)
		if !ok || userId == "" {
			return apperror.Unauthorized("Invalid token")
		}

		ctx.Locals("user_id", userId)
		return ctx.Next()
	}
}
