package controller

import (
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/pkg/serverutils"
	"ai-writing-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	RefineGoal(ctx *fiber.Ctx) error
}

type chatController struct {
	session *session.Session
}

func NewChatController(s *session.Session) IChatController {
	return &chatController{session: s}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Post("chat", c.Send)
	h.Delete("chat", c.Clear)
	h.Post("goal/refine", c.RefineGoal)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.session.SendChat(ctx.UserContext(), session.ChatInput{
		Message:     req.Message,
		Attachments: dto.ToAttachments(req.Attachments),
		Thinking:    req.Thinking,
	})
	if err != nil {
		// the apology is already in the chat history and was pushed to editors
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	if err := c.session.ClearChat(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear chat", nil))
}

func (c *chatController) RefineGoal(ctx *fiber.Ctx) error {
	var req dto.RefineGoalRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.session.RefineGoal(ctx.UserContext(), req.Goal)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success refine goal", res))
}
