package controller

import (
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/pkg/serverutils"
	"ai-writing-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

type ISuggestionController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	Dismiss(ctx *fiber.Ctx) error
	Refine(ctx *fiber.Ctx) error
	Draft(ctx *fiber.Ctx) error
}

type suggestionController struct {
	session *session.Session
}

func NewSuggestionController(s *session.Session) ISuggestionController {
	return &suggestionController{session: s}
}

func (c *suggestionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Post("suggestion/:id/apply", c.Apply)
	h.Delete("suggestion", c.Dismiss)
	h.Post("refine", c.Refine)
	h.Post("draft", c.Draft)
}

// Apply answers 200 even when the text moved on; Applied=false carries the notice.
func (c *suggestionController) Apply(ctx *fiber.Ctx) error {
	res, err := c.session.ApplySuggestion(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success apply suggestion", res))
}

func (c *suggestionController) Dismiss(ctx *fiber.Ctx) error {
	if err := c.session.DismissSuggestion(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success dismiss suggestion", nil))
}

func (c *suggestionController) Refine(ctx *fiber.Ctx) error {
	var req dto.RefineRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.session.Refine(ctx.UserContext(), req.Instruction)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success refine selection", res))
}

func (c *suggestionController) Draft(ctx *fiber.Ctx) error {
	var req dto.DraftRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.session.Draft(ctx.UserContext(), session.DraftInput{
		Prompt:      req.Prompt,
		Attachments: dto.ToAttachments(req.Attachments),
		Search:      req.Search,
		Maps:        req.Maps,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success draft", res))
}
