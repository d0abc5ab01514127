package controller

import (
	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/serverutils"
	"asha-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	CreateProfile(ctx *fiber.Ctx) error
	SaveProfile(ctx *fiber.Ctx) error
}

type profileController struct {
	service service.IProfileService
}

func NewProfileController(service service.IProfileService) IProfileController {
	return &profileController{service: service}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	// All methods so the 405 guard stays inside the handler
	r.All("/create-profile", c.CreateProfile)
	r.All("/user-profile", c.SaveProfile)
}

func (c *profileController) CreateProfile(ctx *fiber.Ctx) error {
	if ctx.Method() != fiber.MethodPost {
		return ctx.Status(fiber.StatusMethodNotAllowed).JSON(dto.CreateProfileResponse{
			Success: false,
			Message: "Method not allowed",
		})
	}

	var req dto.CreateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.CreateProfileResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.CreateProfileResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	status, res := c.service.Create(ctx.Context(), &req, ctx.Get("User-Agent"))
	return ctx.Status(status).JSON(res)
}

func (c *profileController) SaveProfile(ctx *fiber.Ctx) error {
	if ctx.Method() != fiber.MethodPost {
		return ctx.Status(fiber.StatusMethodNotAllowed).JSON(dto.DataResponse{
			Success: false,
			Message: "Method not allowed",
		})
	}

	var req dto.UpsertProfileRequest
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

	status, res := c.service.Save(ctx.Context(), &req, ctx.Get("User-Agent"))
	return ctx.Status(status).JSON(res)
}
