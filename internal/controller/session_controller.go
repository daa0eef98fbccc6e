package controller

import (
	"fmt"

	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/pkg/serverutils"
	"ai-writing-be/internal/session"
	"ai-writing-be/pkg/export"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	State(ctx *fiber.Ctx) error
	UpdateContent(ctx *fiber.Ctx) error
	SetSelection(ctx *fiber.Ctx) error
	SetWritingContext(ctx *fiber.Ctx) error
	SetProactive(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type sessionController struct {
	session *session.Session
}

func NewSessionController(s *session.Session) ISessionController {
	return &sessionController{session: s}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Get("", c.State)
	h.Put("content", c.UpdateContent)
	h.Put("selection", c.SetSelection)
	h.Put("context", c.SetWritingContext)
	h.Put("proactive", c.SetProactive)
	h.Get("stats", c.Stats)
	h.Get("export/:format", c.Export)
}

func (c *sessionController) State(ctx *fiber.Ctx) error {
	res, err := c.session.State(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) UpdateContent(ctx *fiber.Ctx) error {
	var req dto.UpdateContentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.session.UpdateContent(ctx.UserContext(), req.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update content", res))
}

func (c *sessionController) SetSelection(ctx *fiber.Ctx) error {
	var req dto.SetSelectionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if req.Selection == nil {
		if err := c.session.SetSelection(ctx.UserContext(), nil); err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse[any]("Success clear selection", nil))
	}

	if err := c.session.SetSelection(ctx.UserContext(), req.Selection.ToEntity()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set selection", nil))
}

func (c *sessionController) SetWritingContext(ctx *fiber.Ctx) error {
	var req dto.WritingContextRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := c.session.SetWritingContext(ctx.UserContext(), req.ToEntity()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update writing context", nil))
}

func (c *sessionController) SetProactive(ctx *fiber.Ctx) error {
	var req dto.SetProactiveRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := c.session.SetProactive(ctx.UserContext(), req.Enabled); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update proactive mode", nil))
}

func (c *sessionController) Stats(ctx *fiber.Ctx) error {
	res, err := c.session.Stats(ctx.UserContext())
	if err != nil {
		return err
	}
	var out dto.StatsResponse = *res
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", out))
}

func (c *sessionController) Export(ctx *fiber.Ctx) error {
	format, err := export.ParseFormat(ctx.Params("format"))
	if err != nil {
		return err
	}

	res, err := c.session.Export(ctx.UserContext(), format)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, res.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
	return ctx.Send(res.Data)
}
