package controller

import (
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/pkg/serverutils"
	"ai-writing-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

type IExpertController interface {
	RegisterRoutes(r fiber.Router)
	Catalog(ctx *fiber.Ctx) error
	SetExperts(ctx *fiber.Ctx) error
	SetActive(ctx *fiber.Ctx) error
}

type expertController struct {
	session *session.Session
}

func NewExpertController(s *session.Session) IExpertController {
	return &expertController{session: s}
}

func (c *expertController) RegisterRoutes(r fiber.Router) {
	r.Get("/experts/catalog", c.Catalog)
	r.Put("/session/experts", c.SetExperts)
	r.Put("/session/expert", c.SetActive)
}

func (c *expertController) Catalog(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get expert catalog", session.ExpertCatalog()))
}

func (c *expertController) SetExperts(ctx *fiber.Ctx) error {
	var req dto.SetExpertsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	experts := make([]entity.ExpertPrompt, len(req.Experts))
	for i, e := range req.Experts {
		experts[i] = entity.ExpertPrompt{Id: e.Id, Name: e.Name, Prompt: e.Prompt}
	}

	res, err := c.session.SetExperts(ctx.UserContext(), experts)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update experts", res))
}

func (c *expertController) SetActive(ctx *fiber.Ctx) error {
	var req dto.SetActiveExpertRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.session.SetActiveExpert(ctx.UserContext(), req.Id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set active expert", res))
}
