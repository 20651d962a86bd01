package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modal-gateway/backend/internal/client"
	"github.com/modal-gateway/backend/internal/model"
)

// Ping is the health check endpoint.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// Root serves the unauthenticated service description.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Message:  "Multi-Modal AI API is running",
		Version:  "2.0.0",
		Features: []string{"image_analysis", "document_summarization", "url_scraping"},
		Models: map[string]string{
			"vision": client.VisionModelFullName,
			"text":   client.TextModelName,
		},
	})
}
