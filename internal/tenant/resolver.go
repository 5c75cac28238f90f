package tenant

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"branch-billing-backend/internal/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeaderBranchID is the explicit per-request branch signal. It takes
// precedence over every other signal.
const HeaderBranchID = "X-Branch-ID"

// Catalog provides the directory lookups the owner-email shortcut needs
type Catalog interface {
	OrganizationByOwnerEmail(email string) (*models.Organization, error)
	BranchesByOrganization(orgID uuid.UUID) ([]models.Branch, error)
}

// TokenDecoder extracts the branch claim from a bearer credential. The
// credential must verify, not merely parse; ok is false when it is
// unverifiable or carries no branch claim. Neither case is an error during
// resolution; credential validity is re-checked by the auth gate.
type TokenDecoder interface {
	BranchClaim(token string) (slug string, ok bool)
}

// ConnectionSource yields the shared connection for a branch slug
type ConnectionSource interface {
	Get(slug string) (*Connection, error)
}

// Strategy is one step of the resolution precedence: it inspects the request
// and either names a branch slug (ok=true), declares itself not applicable
// (ok=false), or fails resolution outright (err). A named slug that later
// turns out to be unusable is a hard failure at the connection step, never a
// silent fall-through: a named-but-unusable branch is a configuration error,
// not an anonymous request.
type Strategy interface {
	Name() string
	Resolve(c *gin.Context) (slug string, ok bool, err error)
}

// headerStrategy resolves the explicit branch header
type headerStrategy struct{}

func (headerStrategy) Name() string { return "header" }

func (headerStrategy) Resolve(c *gin.Context) (string, bool, error) {
	slug := c.GetHeader(HeaderBranchID)
	return slug, slug != "", nil
}

// loginPath is the only route the owner-email shortcut applies to. Email
// fields in other POST bodies (a customer's billing email, an owner email
// on an admin payload) are entity data, not a tenant signal.
const loginPath = "/api/auth/login"

// ownerEmailStrategy auto-resolves a bare login attempt by a self-plan
// organization owner: the account's single branch is the implicit tenant.
type ownerEmailStrategy struct {
	catalog Catalog
}

func (ownerEmailStrategy) Name() string { return "owner-email" }

func (s ownerEmailStrategy) Resolve(c *gin.Context) (string, bool, error) {
	if c.Request.Method != http.MethodPost || c.Request.URL.Path != loginPath {
		return "", false, nil
	}
	email := peekEmail(c)
	if email == "" {
		return "", false, nil
	}

	org, err := s.catalog.OrganizationByOwnerEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if org.PlanType != models.PlanSelf {
		return "", false, nil
	}

	branches, err := s.catalog.BranchesByOrganization(org.ID)
	if err != nil {
		return "", false, err
	}
	if len(branches) != 1 {
		// The shortcut only applies to a single-branch account
		return "", false, nil
	}
	return branches[0].Slug, true, nil
}

// tokenStrategy resolves the branch claim carried by a verified bearer token
type tokenStrategy struct {
	tokens TokenDecoder
}

func (tokenStrategy) Name() string { return "token" }

func (s tokenStrategy) Resolve(c *gin.Context) (string, bool, error) {
	token := bearerToken(c)
	if token == "" {
		return "", false, nil
	}
	slug, ok := s.tokens.BranchClaim(token)
	return slug, ok, nil
}

// Resolver determines which branch a request belongs to by evaluating an
// ordered list of strategies, then attaches the branch's accessor set. When
// no signal resolves, the request falls back to the shared default context;
// the fallback never fails merely because no branch was identified.
type Resolver struct {
	source     ConnectionSource
	fallback   *Connection
	strategies []Strategy
}

// NewResolver creates a resolver with the standard precedence:
// explicit header, owner-email shortcut, token branch claim, shared default.
func NewResolver(source ConnectionSource, fallback *Connection, catalog Catalog, tokens TokenDecoder) *Resolver {
	return &Resolver{
		source:   source,
		fallback: fallback,
		strategies: []Strategy{
			headerStrategy{},
			ownerEmailStrategy{catalog: catalog},
			tokenStrategy{tokens: tokens},
		},
	}
}

// Resolve evaluates the strategies in order. The first strategy that names a
// branch wins; its branch must then load or the request fails.
func (r *Resolver) Resolve(c *gin.Context) (*Context, error) {
	for _, s := range r.strategies {
		slug, ok, err := s.Resolve(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		conn, err := r.source.Get(slug)
		if err != nil {
			return nil, err
		}
		return &Context{BranchID: slug, Models: conn.Models, DB: conn.DB}, nil
	}

	return &Context{BranchID: "", Models: r.fallback.Models, DB: r.fallback.DB}, nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
		return ""
	}
	return authHeader[len(prefix):]
}

// peekEmail reads the email field out of a JSON request body and restores
// the body so the handler can still bind it.
func peekEmail(c *gin.Context) string {
	if c.Request.Body == nil || c.ContentType() != "application/json" {
		return ""
	}

	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Email
}
