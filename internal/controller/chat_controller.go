package controller

import (
	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/serverutils"
	"asha-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	// All methods so the envelope stays chat-shaped even on a 405
	r.All("/chat", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	if ctx.Method() != fiber.MethodPost {
		return ctx.Status(fiber.StatusMethodNotAllowed).JSON(dto.ChatEnvelope{
			StatusCode: fiber.StatusMethodNotAllowed,
			Message:    "Method not allowed",
		})
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatEnvelope{
			StatusCode: fiber.StatusBadRequest,
			Message:    "Invalid request body",
		})
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatEnvelope{
			StatusCode: fiber.StatusBadRequest,
			Message:    err.Error(),
		})
	}

	status, env := c.service.Ask(ctx.Context(), &req)
	return ctx.Status(status).JSON(env)
}
