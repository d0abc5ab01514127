package controller

import (
	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/serverutils"
	"asha-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	// All methods so the 405 guard stays inside the handler
	r.All("/user-login", c.Login)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	if ctx.Method() != fiber.MethodPost {
		return ctx.Status(fiber.StatusMethodNotAllowed).JSON(dto.LoginResponse{
			Success: false,
			Message: "Method not allowed",
		})
	}

	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.LoginResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.LoginResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	status, res := c.service.Login(ctx.Context(), &req, ctx.Get("User-Agent"))
	return ctx.Status(status).JSON(res)
}
