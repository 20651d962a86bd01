package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/modal-gateway/backend/internal/client"
	"github.com/modal-gateway/backend/internal/config"
	"github.com/modal-gateway/backend/internal/extract"
	"github.com/modal-gateway/backend/internal/handler"
	"github.com/modal-gateway/backend/internal/service"
	"github.com/modal-gateway/backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	mem := store.NewMemory()

	authService, err := service.NewAuthService(mem, cfg.Auth)
	if err != nil {
		slog.Error("failed to initialize auth service", "error", err)
		os.Exit(1)
	}

	historyService := service.NewHistoryService(mem)
	inferenceClient := client.NewInferenceClient(cfg.Inference)
	analyzeService := service.NewAnalyzeService(inferenceClient, historyService)
	summarizeService := service.NewSummarizeService(inferenceClient, extract.NewURLScraper(), historyService)

	authHandler := handler.NewAuthHandler(authService)
	imageHandler := handler.NewImageHandler(analyzeService)
	documentHandler := handler.NewDocumentHandler(summarizeService)
	historyHandler := handler.NewHistoryHandler(historyService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware())

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	protected := router.Group("", handler.AuthMiddleware(authService))
	{
		protected.POST("/image/analyze", imageHandler.Analyze)
		protected.POST("/doc/summarize", documentHandler.Summarize)
		protected.GET("/history", historyHandler.List)
	}

	slog.Info("starting server", "addr", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
