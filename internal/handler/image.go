package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modal-gateway/backend/internal/extract"
	"github.com/modal-gateway/backend/internal/model"
	"github.com/modal-gateway/backend/internal/service"
)

type ImageHandler struct {
	svc *service.AnalyzeService
}

func NewImageHandler(svc *service.AnalyzeService) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// Analyze godoc
// @Summary Analyze an uploaded image
// @Tags image
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "JPEG, PNG or WebP image"
// @Param prompt formData string false "Custom analysis prompt"
// @Success 200 {object} model.AnalyzeImageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /image/analyze [post]
func (h *ImageHandler) Analyze(c *gin.Context) {
	username := AuthUsername(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "failed to read upload"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	userPrompt := c.PostForm("prompt")

	resp, err := h.svc.AnalyzeImage(c.Request.Context(), username, fileHeader.Filename, data, contentType, userPrompt)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "only JPG, PNG, and WebP images are supported"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "failed to analyze image"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
