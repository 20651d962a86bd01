package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modal-gateway/backend/internal/model"
	"github.com/modal-gateway/backend/internal/service"
)

type HistoryHandler struct {
	svc *service.HistoryService
}

func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// List godoc
// @Summary List the caller's recent activity
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries to return" default(20)
// @Param item_type query string false "Filter to one entry type" Enums(image_analysis, document_summary)
// @Success 200 {object} model.HistoryResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	username := AuthUsername(c)

	limit := service.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	entries := h.svc.List(username, limit, model.EntryType(c.Query("item_type")))

	c.JSON(http.StatusOK, model.HistoryResponse{
		History: entries,
		Total:   len(entries),
	})
}
