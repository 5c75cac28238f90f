package handlers

import (
	"net/http"

	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles HTTP requests for customers
type CustomerHandler struct {
	service service.CustomerServiceInterface
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service service.CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// CreateCustomer handles POST /api/v1/customers
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body service.CreateCustomerRequest true "Customer data"
// @Success 201 {object} models.Customer "Successfully created customer"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Customer already exists"
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	customer, err := h.service.Create(tctx.Models, &req)
	if err != nil {
		writeEntityError(c, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles GET /api/v1/customers/:id
// @Summary Get customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} models.Customer "Successfully retrieved customer"
// @Failure 400 {object} ErrorResponse "Invalid customer ID"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID: invalid UUID format"})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	customer, err := h.service.GetByID(tctx.Models, id)
	if err != nil {
		writeEntityError(c, err, "Failed to get customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ListCustomers handles GET /api/v1/customers
// @Summary List customers
// @Tags customers
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} map[string]interface{} "Paginated customers"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
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

	customers, total, err := h.service.List(tctx.Models, limit, offset)
	if err != nil {
		writeEntityError(c, err, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"total":     total,
	})
}

// UpdateCustomer handles PUT /api/v1/customers/:id
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param customer body service.UpdateCustomerRequest true "Customer data"
// @Success 200 {object} models.Customer "Updated customer"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID: invalid UUID format"})
		return
	}

	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	customer, err := h.service.Update(tctx.Models, id, &req)
	if err != nil {
		writeEntityError(c, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
// @Summary Delete a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 204 "Customer deleted"
// @Failure 400 {object} ErrorResponse "Invalid customer ID"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID: invalid UUID format"})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	if err := h.service.Delete(tctx.Models, id); err != nil {
		writeEntityError(c, err, "Failed to delete customer")
		return
	}

	c.Status(http.StatusNoContent)
}
