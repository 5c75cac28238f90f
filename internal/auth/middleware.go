package auth

import (
	"net/http"
	"strings"

	"branch-billing-backend/internal/database/models"
	"branch-billing-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Middleware is the auth gate: it verifies the bearer credential and
// cross-checks the referenced user against the already-resolved branch's
// User accessor. A token valid for branch A can never authenticate against
// branch B's data, even if an identically-valued user ID exists there.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth validates the bearer token and loads the user from the
// branch-bound accessor set
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "details": err.Error()})
			c.Abort()
			return
		}

		tctx, ok := tenant.FromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch context is missing"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserKey())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user claim"})
			c.Abort()
			return
		}

		// The lookup goes through the branch-bound accessor, never a
		// global one.
		user, err := tctx.Models.Users.GetByID(userID)
		if err != nil || !user.Active {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User does not exist in this branch"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Set("user_role", string(user.Role))
		c.Set("auth_claims", claims)

		c.Next()
	}
}

// RequireRole restricts an operation to the given roles. It must run after
// RequireAuth.
func (m *Middleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		roleStr, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid role context"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if roleStr == string(allowed) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Role is not permitted for this operation"})
		c.Abort()
	}
}

// GetUserID extracts the authenticated user's ID from the request context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetUserEmail extracts the authenticated user's email from the request context
func GetUserEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_email")
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
