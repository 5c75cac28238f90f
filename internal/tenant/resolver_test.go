package tenant_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/repository"
	"branch-billing-backend/internal/tenant"
	"branch-billing-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// fakeSource records which slugs were requested and hands out canned
// connections or errors.
type fakeSource struct {
	conns map[string]*tenant.Connection
	errs  map[string]error
	calls []string
}

func (f *fakeSource) Get(slug string) (*tenant.Connection, error) {
	f.calls = append(f.calls, slug)
	if err, ok := f.errs[slug]; ok {
		return nil, err
	}
	conn, ok := f.conns[slug]
	if !ok {
		return nil, apperrors.ErrBranchNotFound
	}
	return conn, nil
}

// fakeCatalog serves the owner-email shortcut lookups
type fakeCatalog struct {
	orgs     map[string]*models.Organization
	branches map[uuid.UUID][]models.Branch
}

func (f *fakeCatalog) OrganizationByOwnerEmail(email string) (*models.Organization, error) {
	org, ok := f.orgs[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return org, nil
}

func (f *fakeCatalog) BranchesByOrganization(orgID uuid.UUID) ([]models.Branch, error) {
	return f.branches[orgID], nil
}

// fakeDecoder maps raw token strings to branch claims
type fakeDecoder struct {
	claims map[string]string
}

func (f *fakeDecoder) BranchClaim(token string) (string, bool) {
	slug, ok := f.claims[token]
	return slug, ok
}

// ResolverTestSuite defines the test suite for branch resolution
type ResolverTestSuite struct {
	suite.Suite
	source   *fakeSource
	catalog  *fakeCatalog
	decoder  *fakeDecoder
	fallback *tenant.Connection
	resolver *tenant.Resolver
}

// SetupTest sets up the test suite
func (suite *ResolverTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.source = &fakeSource{
		conns: map[string]*tenant.Connection{
			"alpha": {Models: &repository.BranchSet{}},
			"beta":  {Models: &repository.BranchSet{}},
			"gamma": {Models: &repository.BranchSet{}},
		},
		errs: map[string]error{},
	}
	suite.catalog = &fakeCatalog{
		orgs:     map[string]*models.Organization{},
		branches: map[uuid.UUID][]models.Branch{},
	}
	suite.decoder = &fakeDecoder{claims: map[string]string{}}
	suite.fallback = &tenant.Connection{Models: &repository.BranchSet{}}
	suite.resolver = tenant.NewResolver(suite.source, suite.fallback, suite.catalog, suite.decoder)
}

func (suite *ResolverTestSuite) newContext(method, path string, body interface{}, headers map[string]string) *gin.Context {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func (suite *ResolverTestSuite) TestHeaderResolvesBranch() {
	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, map[string]string{
		"X-Branch-ID": "alpha",
	})

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.Equal("alpha", tctx.BranchID)
	suite.False(tctx.IsFallback())
	suite.Same(suite.source.conns["alpha"].Models, tctx.Models)
	suite.Equal([]string{"alpha"}, suite.source.calls)
}

func (suite *ResolverTestSuite) TestHeaderBeatsTokenClaim() {
	suite.decoder.claims["tok-beta"] = "beta"
	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, map[string]string{
		"X-Branch-ID":   "alpha",
		"Authorization": "Bearer tok-beta",
	})

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.Equal("alpha", tctx.BranchID)
	suite.Equal([]string{"alpha"}, suite.source.calls)
}

func (suite *ResolverTestSuite) TestTokenClaimResolvesBranch() {
	suite.decoder.claims["tok-beta"] = "beta"
	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, map[string]string{
		"Authorization": "Bearer tok-beta",
	})

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.Equal("beta", tctx.BranchID)
}

func (suite *ResolverTestSuite) TestMalformedTokenFallsThrough() {
	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, map[string]string{
		"Authorization": "Bearer not-a-real-token",
	})

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.True(tctx.IsFallback())
	suite.Empty(suite.source.calls)
}

func (suite *ResolverTestSuite) TestOwnerEmailShortcut() {
	org := testutils.NewOrganizationFactory().WithOwnerEmail("owner@shop.test")
	suite.catalog.orgs["owner@shop.test"] = org
	suite.catalog.branches[org.ID] = []models.Branch{
		*testutils.NewBranchFactory().WithSlug("gamma"),
	}

	c := suite.newContext(http.MethodPost, "/api/auth/login", gin.H{
		"email":    "owner@shop.test",
		"password": "secret",
	}, nil)

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.Equal("gamma", tctx.BranchID)

	// The body is restored so the login handler can still bind it.
	raw, err := io.ReadAll(c.Request.Body)
	suite.Require().NoError(err)
	suite.Contains(string(raw), "owner@shop.test")
}

func (suite *ResolverTestSuite) TestOwnerEmailSkipsOrganizationPlan() {
	org := testutils.NewOrganizationFactory().WithOwnerEmail("owner@multi.test")
	org.PlanType = models.PlanOrganization
	suite.catalog.orgs["owner@multi.test"] = org
	suite.catalog.branches[org.ID] = []models.Branch{
		*testutils.NewBranchFactory().WithSlug("gamma"),
	}

	c := suite.newContext(http.MethodPost, "/api/auth/login", gin.H{
		"email": "owner@multi.test",
	}, nil)

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.True(tctx.IsFallback())
}

func (suite *ResolverTestSuite) TestOwnerEmailSkipsMultiBranchAccount() {
	org := testutils.NewOrganizationFactory().WithOwnerEmail("owner@two.test")
	suite.catalog.orgs["owner@two.test"] = org
	suite.catalog.branches[org.ID] = []models.Branch{
		*testutils.NewBranchFactory().WithSlug("gamma"),
		*testutils.NewBranchFactory().WithSlug("delta"),
	}

	c := suite.newContext(http.MethodPost, "/api/auth/login", gin.H{
		"email": "owner@two.test",
	}, nil)

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.True(tctx.IsFallback())
}

func (suite *ResolverTestSuite) TestOwnerEmailIgnoredOnGet() {
	org := testutils.NewOrganizationFactory().WithOwnerEmail("owner@shop.test")
	suite.catalog.orgs["owner@shop.test"] = org
	suite.catalog.branches[org.ID] = []models.Branch{
		*testutils.NewBranchFactory().WithSlug("gamma"),
	}

	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, nil)

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.True(tctx.IsFallback())
}

func (suite *ResolverTestSuite) TestOwnerEmailIgnoredOffLoginRoute() {
	org := testutils.NewOrganizationFactory().WithOwnerEmail("owner@shop.test")
	suite.catalog.orgs["owner@shop.test"] = org
	suite.catalog.branches[org.ID] = []models.Branch{
		*testutils.NewBranchFactory().WithSlug("gamma"),
	}
	suite.decoder.claims["tok-beta"] = "beta"

	// A customer whose billing email coincides with a self-plan owner's
	// email must not reroute an authenticated write to the owner's branch.
	c := suite.newContext(http.MethodPost, "/api/v1/customers", gin.H{
		"name":  "Acme Ltd",
		"email": "owner@shop.test",
	}, map[string]string{
		"Authorization": "Bearer tok-beta",
	})

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.Equal("beta", tctx.BranchID)
	suite.Equal([]string{"beta"}, suite.source.calls)
}

func (suite *ResolverTestSuite) TestOwnerEmailOffLoginRouteWithoutTokenFallsBack() {
	org := testutils.NewOrganizationFactory().WithOwnerEmail("owner@shop.test")
	suite.catalog.orgs["owner@shop.test"] = org
	suite.catalog.branches[org.ID] = []models.Branch{
		*testutils.NewBranchFactory().WithSlug("gamma"),
	}

	c := suite.newContext(http.MethodPost, "/api/v1/customers", gin.H{
		"email": "owner@shop.test",
	}, nil)

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.True(tctx.IsFallback())
	suite.Empty(suite.source.calls)
}

func (suite *ResolverTestSuite) TestNoSignalUsesFallback() {
	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, nil)

	tctx, err := suite.resolver.Resolve(c)
	suite.Require().NoError(err)
	suite.True(tctx.IsFallback())
	suite.Equal("", tctx.BranchID)
	suite.Same(suite.fallback.Models, tctx.Models)
}

func (suite *ResolverTestSuite) TestNamedButUnknownBranchIsHardFailure() {
	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, map[string]string{
		"X-Branch-ID": "nonexistent",
	})

	tctx, err := suite.resolver.Resolve(c)
	suite.Nil(tctx)
	suite.ErrorIs(err, apperrors.ErrBranchNotFound)
}

func (suite *ResolverTestSuite) TestNamedButSuspendedBranchIsHardFailure() {
	suite.source.errs["alpha"] = apperrors.NewBranchUnavailableError("alpha", "suspended")
	c := suite.newContext(http.MethodGet, "/api/v1/invoices", nil, map[string]string{
		"X-Branch-ID": "alpha",
	})

	tctx, err := suite.resolver.Resolve(c)
	suite.Nil(tctx)
	suite.True(apperrors.IsBranchUnavailable(err))
}

// TestResolverTestSuite runs the test suite
func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

// MiddlewareTestSuite exercises the HTTP mapping of resolution failures
type MiddlewareTestSuite struct {
	suite.Suite
	source *fakeSource
	router *gin.Engine
}

func (suite *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.source = &fakeSource{
		conns: map[string]*tenant.Connection{
			"alpha": {Models: &repository.BranchSet{}},
		},
		errs: map[string]error{},
	}

	fallback := &tenant.Connection{Models: &repository.BranchSet{}}
	resolver := tenant.NewResolver(suite.source, fallback, &fakeCatalog{}, &fakeDecoder{})

	suite.router = gin.New()
	suite.router.Use(resolver.Middleware())
	suite.router.GET("/probe", func(c *gin.Context) {
		tctx, ok := tenant.FromContext(c)
		suite.Require().True(ok)
		c.JSON(http.StatusOK, gin.H{"branch": tctx.BranchID})
	})
}

func (suite *MiddlewareTestSuite) request(headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, req)
	return recorder
}

func (suite *MiddlewareTestSuite) TestAttachesBranchContext() {
	recorder := suite.request(map[string]string{"X-Branch-ID": "alpha"})
	suite.Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Body.String(), "alpha")
}

func (suite *MiddlewareTestSuite) TestUnknownBranchMapsTo404() {
	recorder := suite.request(map[string]string{"X-Branch-ID": "nope"})
	suite.Equal(http.StatusNotFound, recorder.Code)
}

func (suite *MiddlewareTestSuite) TestSuspendedBranchMapsTo503() {
	suite.source.errs["alpha"] = apperrors.NewBranchUnavailableError("alpha", "suspended")
	recorder := suite.request(map[string]string{"X-Branch-ID": "alpha"})
	suite.Equal(http.StatusServiceUnavailable, recorder.Code)
}

func (suite *MiddlewareTestSuite) TestConnectionFailureMapsTo502() {
	suite.source.errs["alpha"] = apperrors.NewConnectionError("alpha", io.ErrUnexpectedEOF)
	recorder := suite.request(map[string]string{"X-Branch-ID": "alpha"})
	suite.Equal(http.StatusBadGateway, recorder.Code)
	suite.Contains(recorder.Body.String(), "unreachable")
}

// TestMiddlewareTestSuite runs the test suite
func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
