package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware validates HS256 bearer tokens and stores user_id and groups
// in the request locals. With optional set, requests without a token pass
// through as guests; a token that is present must still be valid.
func NewJwtMiddleware(secret string, optional bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" && optional {
			return ctx.Next()
		}
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return unauthorized(ctx, "Missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return unauthorized(ctx, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(ctx, "Invalid claims")
		}

		userId, _ := claims["user_id"].(string)
		if userId == "" {
			userId, _ = claims["sub"].(string)
		}
		if userId == "" {
			return unauthorized(ctx, "Invalid claims")
		}

		ctx.Locals(LocalUserId, userId)
		ctx.Locals(LocalGroups, groupsClaim(claims["groups"]))
		return ctx.Next()
	}
}

func groupsClaim(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	groups := make([]string, 0, len(items))
	for _, item := range items {
		if g, ok := item.(string); ok && g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "UNAUTHORIZED", message))
}
