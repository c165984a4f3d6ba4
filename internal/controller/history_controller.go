package controller

import (
	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	SetPinned(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IHistoryService
	auth           fiber.Handler
}

// NewHistoryController takes the mandatory auth middleware; guests have no history.
func NewHistoryController(historyService service.IHistoryService, auth fiber.Handler) IHistoryController {
	return &historyController{
		historyService: historyService,
		auth:           auth,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/me/v1/history")
	h.Use(c.auth)
	h.Get("", c.List)
	h.Delete("", c.Clear)
	h.Put(":note", c.SetPinned)
	h.Delete(":note", c.Remove)
}

func (c *historyController) List(ctx *fiber.Ctx) error {
	actor := serverutils.ActorFromCtx(ctx)

	res, err := c.historyService.ListForUser(ctx.UserContext(), actor.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list history", res))
}

func (c *historyController) SetPinned(ctx *fiber.Ctx) error {
	actor := serverutils.ActorFromCtx(ctx)

	var req dto.UpdateHistoryEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("body", "must be a history entry object")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.SetPinned(ctx.UserContext(), actor.UserId, ctx.Params("note"), *req.Pinned)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update history entry", res))
}

func (c *historyController) Remove(ctx *fiber.Ctx) error {
	actor := serverutils.ActorFromCtx(ctx)

	if err := c.historyService.Remove(ctx.UserContext(), actor.UserId, ctx.Params("note")); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *historyController) Clear(ctx *fiber.Ctx) error {
	actor := serverutils.ActorFromCtx(ctx)

	if err := c.historyService.Clear(ctx.UserContext(), actor.UserId); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
