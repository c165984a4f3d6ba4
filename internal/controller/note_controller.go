package controller

import (
	"strconv"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	CreateNamed(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Content(ctx *fiber.Ctx) error
	Metadata(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	UpdatePermissions(ctx *fiber.Ctx) error
	ListRevisions(ctx *fiber.Ctx) error
	ShowRevision(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	auth        fiber.Handler
}

// NewNoteController takes the optional auth middleware: every note route is
// open to guests and the permission rules decide the rest.
func NewNoteController(noteService service.INoteService, auth fiber.Handler) INoteController {
	return &noteController{
		noteService: noteService,
		auth:        auth,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(c.auth)
	h.Post("", c.Create)
	h.Post(":alias", c.CreateNamed)
	h.Get(":note", c.Show)
	h.Get(":note/content", c.Content)
	h.Get(":note/metadata", c.Metadata)
	h.Put(":note/content", c.Update)
	h.Delete(":note", c.Delete)
	h.Put(":note/metadata/permissions", c.UpdatePermissions)
	h.Get(":note/revisions", c.ListRevisions)
	h.Get(":note/revisions/:revisionId", c.ShowRevision)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	res, err := c.noteService.CreateNote(ctx.UserContext(), serverutils.ActorFromCtx(ctx), string(ctx.Body()))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) CreateNamed(ctx *fiber.Ctx) error {
	res, err := c.noteService.CreateNamedNote(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("alias"), string(ctx.Body()))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	res, err := c.noteService.GetNote(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

// Content answers with the raw markdown rather than the JSON envelope.
func (c *noteController) Content(ctx *fiber.Ctx) error {
	content, err := c.noteService.GetNoteContent(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note"))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return ctx.SendString(content)
}

func (c *noteController) Metadata(ctx *fiber.Ctx) error {
	res, err := c.noteService.GetNoteMetadata(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note metadata", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	res, err := c.noteService.UpdateNote(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note"), string(ctx.Body()))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	if err := c.noteService.DeleteNote(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note")); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *noteController) UpdatePermissions(ctx *fiber.Ctx) error {
	var req dto.UpdatePermissionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("body", "must be a permissions object")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.UpdatePermissions(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update permissions", res))
}

func (c *noteController) ListRevisions(ctx *fiber.Ctx) error {
	res, err := c.noteService.ListRevisions(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list revisions", res))
}

func (c *noteController) ShowRevision(ctx *fiber.Ctx) error {
	revisionId, err := strconv.ParseInt(ctx.Params("revisionId"), 10, 64)
	if err != nil || revisionId <= 0 {
		return apperror.Validation("revision_id", "must be a positive integer")
	}

	res, err := c.noteService.GetRevision(ctx.UserContext(), serverutils.ActorFromCtx(ctx), ctx.Params("note"), revisionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show revision", res))
}
