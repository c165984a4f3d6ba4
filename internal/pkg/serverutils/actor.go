package serverutils

import (
	"collabnote-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserId = "user_id"
	LocalGroups = "groups"
)

// ActorFromCtx builds the acting identity from what the JWT middleware stored.
// Requests without a user id are guests.
func ActorFromCtx(ctx *fiber.Ctx) entity.Actor {
	actor := entity.Actor{ClientIP: ctx.IP()}
	if userId, ok := ctx.Locals(LocalUserId).(string); ok {
		actor.UserId = userId
	}
	if groups, ok := ctx.Locals(LocalGroups).([]string); ok {
		actor.Groups = groups
	}
	return actor
}
