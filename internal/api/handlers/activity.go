package handlers

import (
	"net/http"

	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/tenant"

	"github.com/gin-gonic/gin"
)

// ActivityHandler handles HTTP requests for the activity log
type ActivityHandler struct {
	service service.ActivityServiceInterface
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service service.ActivityServiceInterface) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// ListActivity handles GET /api/v1/activity
// @Summary List activity log entries
// @Tags activity
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} map[string]interface{} "Paginated activity entries"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /activity [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	entries, total, err := h.service.List(tctx.Models, limit, offset)
	if err != nil {
		writeEntityError(c, err, "Failed to list activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
	})
}
