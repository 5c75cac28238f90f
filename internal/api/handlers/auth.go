package handlers

import (
	"net/http"

	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/tenant"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/auth/login
// @Summary Log in to a branch
// @Description Authenticate against the branch the request resolved to. The branch comes from the X-Branch-ID header, or is auto-resolved for a self-plan organization owner by email.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse "Successfully authenticated"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	resp, err := h.service.Login(tctx.Models, tctx.BranchID, &req)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Validate handles GET /api/auth/validate
// @Summary Validate the current token
// @Description Returns the authenticated user as seen by the resolved branch. Useful for clients checking whether a stored token is still good for this branch.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Token is valid"
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Security BearerAuth
// @Router /auth/validate [get]
func (h *AuthHandler) Validate(c *gin.Context) {
	tctx, _ := tenant.FromContext(c)

	branchID := ""
	if tctx != nil {
		branchID = tctx.BranchID
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"user_id":   c.GetString("user_id"),
		"email":     c.GetString("user_email"),
		"role":      c.GetString("user_role"),
		"branch_id": branchID,
	})
}

// RegisterUser handles POST /api/v1/users
// @Summary Register a branch user
// @Description Create a new user inside the resolved branch
// @Tags auth
// @Accept json
// @Produce json
// @Param user body service.RegisterUserRequest true "User data"
// @Success 201 {object} service.UserProfile "Successfully created user"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "User already exists"
// @Security BearerAuth
// @Router /users [post]
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req service.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tctx, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
		return
	}

	profile, err := h.service.RegisterUser(tctx.Models, &req)
	if err != nil {
		if apperrors.IsAlreadyExists(err) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, profile)
}
