package handlers

import (
	"net/http"

	"branch-billing-backend/internal/auth"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler handles HTTP requests for support tickets
type TicketHandler struct {
	service service.TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(service service.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{service: service}
}

// OpenTicket handles POST /api/v1/tickets
// @Summary Open a support ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticket body service.OpenTicketRequest true "Ticket data"
// @Success 201 {object} models.SupportTicket "Successfully opened ticket"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Security BearerAuth
// @Router /tickets [post]
func (h *TicketHandler) OpenTicket(c *gin.Context) {
	var req service.OpenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	openedBy, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ticket, err := h.service.Open(tctx.Models, openedBy, &req)
	if err != nil {
		writeEntityError(c, err, "Failed to open ticket")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// ListTickets handles GET /api/v1/tickets
// @Summary List support tickets
// @Tags tickets
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} map[string]interface{} "Paginated tickets"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
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

	tickets, total, err := h.service.List(tctx.Models, limit, offset)
	if err != nil {
		writeEntityError(c, err, "Failed to list tickets")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"total":   total,
	})
}

// CloseTicket handles POST /api/v1/tickets/:id/close
// @Summary Close a support ticket
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID (UUID)"
// @Success 200 {object} models.SupportTicket "Closed ticket"
// @Failure 400 {object} ErrorResponse "Invalid ticket ID"
// @Failure 404 {object} ErrorResponse "Ticket not found"
// @Failure 409 {object} ErrorResponse "Ticket already closed"
// @Security BearerAuth
// @Router /tickets/{id}/close [post]
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID: invalid UUID format"})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	ticket, err := h.service.Close(tctx.Models, id)
	if err != nil {
		if err == apperrors.ErrTicketAlreadyClosed {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		writeEntityError(c, err, "Failed to close ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}
