package tenant

import (
	"net/http"

	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Middleware resolves the branch for every request and attaches the branch
// context before any business logic runs. Resolution errors abort the
// request here.
func (r *Resolver) Middleware() gin.HandlerFunc {
	log := logger.New()
	return func(c *gin.Context) {
		tctx, err := r.Resolve(c)
		if err != nil {
			status, payload := resolutionErrorResponse(err)
			if status == http.StatusInternalServerError {
				log.WithError(err).Error("Branch resolution failed")
			}
			c.JSON(status, payload)
			c.Abort()
			return
		}

		setContext(c, tctx)
		c.Next()
	}
}

func resolutionErrorResponse(err error) (int, gin.H) {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, gin.H{"error": err.Error()}
	case apperrors.IsBranchUnavailable(err):
		return http.StatusServiceUnavailable, gin.H{"error": err.Error()}
	case apperrors.IsConnectionFailure(err):
		return http.StatusBadGateway, gin.H{"error": "branch database is unreachable"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "failed to resolve branch"}
	}
}
