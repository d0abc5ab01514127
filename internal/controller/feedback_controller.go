package controller

import (
	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/serverutils"
	"asha-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Record(ctx *fiber.Ctx) error
}

type feedbackController struct {
	service service.IFeedbackService
}

func NewFeedbackController(service service.IFeedbackService) IFeedbackController {
	return &feedbackController{service: service}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	// All methods so the 405 guard stays inside the handler
	r.All("/feedback", c.Record)
}

func (c *feedbackController) Record(ctx *fiber.Ctx) error {
	if ctx.Method() != fiber.MethodPost {
		return ctx.Status(fiber.StatusMethodNotAllowed).JSON(dto.DataResponse{
			Success: false,
			Message: "Method not allowed",
		})
	}

	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DataResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DataResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	status, res := c.service.Record(ctx.Context(), &req, ctx.Get("User-Agent"))
	return ctx.Status(status).JSON(res)
}
