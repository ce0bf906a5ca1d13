package handler

import (
	"os"

	"admission-assistant-be/internal/pkg/logger"
	internalWS "admission-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NotificationHandler upgrades authenticated clients onto the websocket
// hub for real-time pushes.
type NotificationHandler struct {
	hub *internalWS.Hub
	log logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{hub: hub, log: log}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/notifications", h.ServeWs)
}

// ServeWs validates the token and hands the connection to the hub.
// Browsers cannot set headers on websocket handshakes, so the token may
// arrive as a query parameter instead.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.log.Warn("notification_handler", "invalid token in ws handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user id in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.log.Info("notification_handler", "websocket session started", map[string]interface{}{"user_id": userID.String()})
			internalWS.ServeWs(h.hub, conn, userID)
			h.log.Info("notification_handler", "websocket session ended", map[string]interface{}{"user_id": userID.String()})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
