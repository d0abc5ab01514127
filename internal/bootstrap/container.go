package bootstrap

import (
	"time"

	"asha-assistant-be/internal/config"
	"asha-assistant-be/internal/controller"
	"asha-assistant-be/internal/pkg/logger"
	"asha-assistant-be/internal/service"
	"asha-assistant-be/pkg/gateway"
)

type Container struct {
	ChatController     controller.IChatController
	ProfileController  controller.IProfileController
	FeedbackController controller.IFeedbackController
	AuthController     controller.IAuthController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	backend := gateway.New(
		cfg.Backend.BaseURL,
		cfg.Backend.ServiceEmail,
		cfg.Backend.ServicePassword,
		cfg.Backend.APIKey,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		sysLogger,
	)

	// 2. Relay Services
	chatService := service.NewChatService(backend, sysLogger)
	profileService := service.NewProfileService(backend, sysLogger)
	feedbackService := service.NewFeedbackService(backend, sysLogger)
	authService := service.NewAuthService(backend, sysLogger)

	// 3. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		ProfileController:  controller.NewProfileController(profileService),
		FeedbackController: controller.NewFeedbackController(feedbackService),
		AuthController:     controller.NewAuthController(authService),
		Logger:             sysLogger,
	}
}
