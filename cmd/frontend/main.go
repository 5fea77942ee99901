package main

import (
	"log"

	"crm-backend/internal/config"
	"crm-backend/internal/frontend/apiclient"
	"crm-backend/internal/frontend/server"
	"crm-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadFrontend()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Setup(cfg.LogLevel, nil)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	api, err := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	if err != nil {
		logrus.Fatal("Failed to create record API client:", err)
	}

	router, err := server.NewRouter(cfg, api)
	if err != nil {
		logrus.Fatal("Failed to set up routes:", err)
	}

	logrus.WithField("api", cfg.APIBaseURL).Infof("Starting frontend on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatal("Failed to start frontend:", err)
	}
}
