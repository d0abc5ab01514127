package main

import (
	"log"

	"asha-assistant-be/internal/bootstrap"
	"asha-assistant-be/internal/config"
	"asha-assistant-be/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	if cfg.Backend.BaseURL == "" {
		container.Logger.Warn("main", "BACKEND_URL is not set; chat relay will answer 500", nil)
	}

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
