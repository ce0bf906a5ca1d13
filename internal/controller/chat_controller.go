package controller

import (
	"errors"

	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/pkg/serverutils"
	"admission-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

// Chat serves both anonymous visitors and logged-in applicants, so every
// route uses the optional token check.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("/session", c.CreateSession)
	h.Get("/sessions", c.GetSessions)
	h.Get("/session/:id/history", c.GetHistory)
	h.Post("", c.SendChat)
	h.Delete("/session", c.DeleteSession)
}

// currentUserId reads the optional authenticated user from locals.
func currentUserId(ctx *fiber.Ctx) *uuid.UUID {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	if userId == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "login required"))
	}

	res, err := c.chatService.GetSessions(ctx.Context(), *userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.GetHistory(ctx.Context(), currentUserId(ctx), sessionId)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.chatService.SendChat(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	var req dto.DeleteSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.chatService.DeleteSession(ctx.Context(), currentUserId(ctx), req.ChatSessionId); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session deleted", nil))
}
