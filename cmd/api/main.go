package main

import (
	"os"

	"github.com/joho/godotenv"

	"chartscout/app"
	"chartscout/internal"
	"chartscout/internal/config"
	"chartscout/ui"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load configuration: %v", err)
		os.Exit(1)
	}

	service := app.NewAnalysisService(cfg, logger)
	server := ui.NewServer(service, logger)

	if err := server.ListenAndServe(cfg.Server.Port); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
