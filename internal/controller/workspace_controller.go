package controller

import (
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/pkg/serverutils"
	"ai-writing-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Workspace(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
}

type workspaceController struct {
	session *session.Session
}

func NewWorkspaceController(s *session.Session) IWorkspaceController {
	return &workspaceController{session: s}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	r.Get("/workspace", c.Workspace)

	h := r.Group("/documents")
	h.Post("", c.Create)
	h.Post(":id/activate", c.Activate)
	h.Delete(":id", c.Delete)
	h.Put(":id/title", c.Rename)
}

func (c *workspaceController) Workspace(ctx *fiber.Ctx) error {
	res, err := c.session.Workspace(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get workspace", res))
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.session.CreateDocument(ctx.UserContext(), req.Content)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create document", res))
}

func (c *workspaceController) Activate(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	res, err := c.session.SwitchDocument(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success activate document", res))
}

func (c *workspaceController) Delete(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	if err := c.session.DeleteDocument(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *workspaceController) Rename(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	var req dto.RenameDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	if err := c.session.RenameDocument(ctx.UserContext(), req.Id, req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename document", nil))
}
