package handler

import (
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/pkg/serverutils"
	internalWS "ai-writing-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type SessionWsHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewSessionWsHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *SessionWsHandler {
	return &SessionWsHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *SessionWsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", serverutils.JwtMiddleware(h.jwtSecret), h.ServeWs)
}

// ServeWs upgrades the request and streams session events until the peer leaves.
func (h *SessionWsHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	remote := c.IP()
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("SessionWsHandler", "Editor connected", map[string]interface{}{"remote": remote})
		internalWS.ServeWs(h.hub, conn)
		h.logger.Info("SessionWsHandler", "Editor disconnected", map[string]interface{}{"remote": remote})
	})(c)
}
