package handlers

import (
	"errors"
	"net/http"

	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles catalog administration: organizations and branches
type AdminHandler struct {
	service service.ProvisioningServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service service.ProvisioningServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// CreateOrganization handles POST /api/admin/organizations
// @Summary Create an organization
// @Description Create a new organization account in the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param organization body service.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} service.OrganizationResponse "Successfully created organization"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Organization already exists"
// @Router /admin/organizations [post]
func (h *AdminHandler) CreateOrganization(c *gin.Context) {
	var req service.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	org, err := h.service.CreateOrganization(&req)
	if err != nil {
		writeAdminError(c, err, "Failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, org)
}

// RegisterBranch handles POST /api/admin/branches
// @Summary Register a branch
// @Description Register a new branch with its slug and connection descriptor
// @Tags admin
// @Accept json
// @Produce json
// @Param branch body service.RegisterBranchRequest true "Branch data"
// @Success 201 {object} service.BranchResponse "Successfully registered branch"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Failure 409 {object} ErrorResponse "Branch already exists"
// @Router /admin/branches [post]
func (h *AdminHandler) RegisterBranch(c *gin.Context) {
	var req service.RegisterBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	branch, err := h.service.RegisterBranch(&req)
	if err != nil {
		writeAdminError(c, err, "Failed to register branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// ListBranches handles GET /api/admin/organizations/:id/branches
// @Summary List an organization's branches
// @Tags admin
// @Produce json
// @Param id path string true "Organization ID (UUID)"
// @Success 200 {array} service.BranchResponse "Branches of the organization"
// @Failure 400 {object} ErrorResponse "Invalid organization ID"
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Router /admin/organizations/{id}/branches [get]
func (h *AdminHandler) ListBranches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID: invalid UUID format"})
		return
	}

	branches, err := h.service.ListBranches(id)
	if err != nil {
		writeAdminError(c, err, "Failed to list branches")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// ArchiveBranch handles DELETE /api/admin/branches/:slug
// @Summary Archive a branch
// @Description Archive a branch and soft-delete its catalog row
// @Tags admin
// @Produce json
// @Param slug path string true "Branch slug"
// @Success 204 "Branch archived"
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Router /admin/branches/{slug} [delete]
func (h *AdminHandler) ArchiveBranch(c *gin.Context) {
	if err := h.service.ArchiveBranch(c.Param("slug")); err != nil {
		writeAdminError(c, err, "Failed to archive branch")
		return
	}

	c.Status(http.StatusNoContent)
}

func writeAdminError(c *gin.Context, err error, fallback string) {
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
