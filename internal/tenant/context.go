package tenant

import (
	"branch-billing-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys for the resolved branch. Handlers read these instead of
// holding any global database reference.
const (
	ContextBranchID = "branch_id"
	ContextModels   = "branch_models"
)

// Context is the request-scoped association of a branch identifier with the
// accessor set bound to that branch's connection. A request resolved to the
// shared fallback carries an empty BranchID.
type Context struct {
	BranchID string
	Models   *repository.BranchSet
	DB       *gorm.DB
}

// IsFallback reports whether this context is the shared default rather than
// a concrete branch.
func (t *Context) IsFallback() bool {
	return t.BranchID == ""
}

// FromContext extracts the resolved branch context from a request
func FromContext(c *gin.Context) (*Context, bool) {
	v, exists := c.Get(ContextModels)
	if !exists {
		return nil, false
	}
	tctx, ok := v.(*Context)
	return tctx, ok
}

func setContext(c *gin.Context, tctx *Context) {
	c.Set(ContextModels, tctx)
	c.Set(ContextBranchID, tctx.BranchID)
}
