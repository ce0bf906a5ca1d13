package controller

import (
	"errors"

	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/pkg/serverutils"
	"admission-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{authService: authService}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/refresh", c.Refresh)
	h.Post("/logout", c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.authService.Register(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Registration successful", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.authService.Login(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrInvalidCredentials) {
			status = fiber.StatusUnauthorized
		}
		return ctx.Status(status).JSON(serverutils.ErrorResponse(status, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Refresh(ctx *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.authService.Refresh(ctx.Context(), req.RefreshToken)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Token refreshed", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.authService.Logout(ctx.Context(), req.RefreshToken); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Logged out", nil))
}
