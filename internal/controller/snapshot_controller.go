package controller

import (
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/pkg/serverutils"
	"ai-writing-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

type ISnapshotController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Capture(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
}

type snapshotController struct {
	session *session.Session
}

func NewSnapshotController(s *session.Session) ISnapshotController {
	return &snapshotController{session: s}
}

func (c *snapshotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/snapshots")
	h.Get("", c.GetAll)
	h.Post("", c.Capture)
	h.Post(":id/restore", c.Restore)
}

func (c *snapshotController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.session.Snapshots(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get snapshots", dto.NewSnapshotResponses(res)))
}

func (c *snapshotController) Capture(ctx *fiber.Ctx) error {
	var req dto.CaptureSnapshotRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	snap, stored, err := c.session.CaptureSnapshot(ctx.UserContext(), req.Label)
	if err != nil {
		return err
	}

	res := dto.CaptureSnapshotResponse{Stored: stored}
	if snap != nil {
		out := dto.NewSnapshotResponse(*snap)
		res.Snapshot = &out
	}
	return ctx.JSON(serverutils.SuccessResponse("Success capture snapshot", res))
}

func (c *snapshotController) Restore(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}

	snap, err := c.session.RestoreSnapshot(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success restore snapshot", dto.NewSnapshotResponse(*snap)))
}
