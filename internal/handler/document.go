package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modal-gateway/backend/internal/extract"
	"github.com/modal-gateway/backend/internal/model"
	"github.com/modal-gateway/backend/internal/service"
)

type DocumentHandler struct {
	svc *service.SummarizeService
}

func NewDocumentHandler(svc *service.SummarizeService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Summarize godoc
// @Summary Summarize a document or URL
// @Description Accepts exactly one of a file upload (PDF, DOCX, TXT) or a URL.
// @Tags doc
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file false "PDF, DOCX or TXT document"
// @Param url formData string false "Page to scrape and summarize"
// @Param max_length formData int false "Maximum summary length in tokens"
// @Success 200 {object} model.SummarizeResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /doc/summarize [post]
func (h *DocumentHandler) Summarize(c *gin.Context) {
	username := AuthUsername(c)

	in := service.SummarizeInput{
		URL:       c.PostForm("url"),
		MaxLength: service.DefaultSummaryLength,
	}

	if raw := c.PostForm("max_length"); raw != "" {
		maxLength, err := strconv.Atoi(raw)
		if err != nil || maxLength <= 0 {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid max_length"})
			return
		}
		in.MaxLength = maxLength
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
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

		in.Filename = fileHeader.Filename
		in.FileData = data
		in.ContentType = fileHeader.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// No file attached; the url field may still carry the input.
	default:
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid file upload"})
		return
	}

	resp, err := h.svc.Summarize(c.Request.Context(), username, in)
	if err != nil {
		writeSummarizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeSummarizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAmbiguousInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "provide either file or URL, not both"})
	case errors.Is(err, service.ErrMissingInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "either file or URL must be provided"})
	case errors.Is(err, service.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "no text content found"})
	case errors.Is(err, extract.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "only PDF, DOCX, and TXT files are supported"})
	case errors.Is(err, extract.ErrFetch):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "failed to scrape URL"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "failed to summarize"})
	}
}
