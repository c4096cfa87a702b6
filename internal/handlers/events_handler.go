package handlers

import (
	"errors"
	"strings"

	eventws "github.com/elif-d/StudioFitBack/internal/websocket"
	"github.com/elif-d/StudioFitBack/pkg/utils"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type EventsHandler struct {
	hub       *eventws.Hub
	jwtSecret string
}

func NewEventsHandler(hub *eventws.Hub, jwtSecret string) *EventsHandler {
	return &EventsHandler{hub: hub, jwtSecret: jwtSecret}
}

func (h *EventsHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("member_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *EventsHandler) HandleWebSocket(conn *websocket.Conn) {
	memberID, _ := conn.Locals("member_id").(string)
	client := eventws.NewClient(h.hub, conn, memberID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *EventsHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
