package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"branch-billing-backend/internal/auth"
	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	service  service.InvoiceServiceInterface
	activity service.ActivityServiceInterface
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service service.InvoiceServiceInterface, activity service.ActivityServiceInterface) *InvoiceHandler {
	return &InvoiceHandler{service: service, activity: activity}
}

// CreateInvoice handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Create a draft invoice in the resolved branch
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body service.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} models.Invoice "Successfully created invoice"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	invoice, err := h.service.Create(tctx.Models, &req)
	if err != nil {
		writeEntityError(c, err, "Failed to create invoice")
		return
	}

	h.recordActivity(c, tctx, "create", invoice.ID.String())
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoice handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} models.Invoice "Successfully retrieved invoice"
// @Failure 400 {object} ErrorResponse "Invalid invoice ID"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID: invalid UUID format"})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	invoice, err := h.service.GetByID(tctx.Models, id)
	if err != nil {
		writeEntityError(c, err, "Failed to get invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// ListInvoices handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} map[string]interface{} "Paginated invoices"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
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

	invoices, total, err := h.service.List(tctx.Models, limit, offset)
	if err != nil {
		writeEntityError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices": invoices,
		"total":    total,
	})
}

// UpdateInvoiceStatus handles PATCH /api/v1/invoices/:id
// @Summary Change invoice status
// @Description Transition an invoice between draft, issued, paid and void
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param status body object{status=string} true "New status"
// @Success 200 {object} models.Invoice "Updated invoice"
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [patch]
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID: invalid UUID format"})
		return
	}

	var req struct {
		Status models.InvoiceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	invoice, err := h.service.ChangeStatus(tctx.Models, id, req.Status)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvoiceNotVoidable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		writeEntityError(c, err, "Failed to update invoice")
		return
	}

	h.recordActivity(c, tctx, "status:"+string(req.Status), invoice.ID.String())
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) recordActivity(c *gin.Context, tctx *tenant.Context, action, entityID string) {
	var actor *uuid.UUID
	if id, ok := auth.GetUserID(c); ok {
		actor = &id
	}
	h.activity.Record(tctx.Models, actor, action, "invoice", entityID)
}

func writeEntityError(c *gin.Context, err error, fallback string) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidPaginationParams):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}

func pagination(c *gin.Context) (limit, offset int, err error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, apperrors.ErrInvalidPaginationParams
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		return 0, 0, apperrors.ErrInvalidPaginationParams
	}
	return pageSize, (page - 1) * pageSize, nil
}
