package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"branch-billing-backend/internal/api/handlers"
	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/mocks"
	"branch-billing-backend/internal/repository"
	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/tenant"
	"branch-billing-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// InvoiceHandlerTestSuite defines the test suite for InvoiceHandler
type InvoiceHandlerTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockInvoices *mocks.MockInvoiceServiceInterface
	mockActivity *mocks.MockActivityServiceInterface
	handler      *handlers.InvoiceHandler
	router       *gin.Engine
	branchSet    *repository.BranchSet
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockInvoices = mocks.NewMockInvoiceServiceInterface(suite.ctrl)
	suite.mockActivity = mocks.NewMockActivityServiceInterface(suite.ctrl)
	suite.handler = handlers.NewInvoiceHandler(suite.mockInvoices, suite.mockActivity)

	suite.branchSet = &repository.BranchSet{}
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set(tenant.ContextModels, &tenant.Context{BranchID: "downtown", Models: suite.branchSet})
		c.Next()
	})
	suite.router.POST("/invoices", suite.handler.CreateInvoice)
	suite.router.GET("/invoices", suite.handler.ListInvoices)
	suite.router.GET("/invoices/:id", suite.handler.GetInvoice)
	suite.router.PATCH("/invoices/:id", suite.handler.UpdateInvoiceStatus)
}

func (suite *InvoiceHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	invoice := testutils.NewInvoiceFactory().Create()
	suite.mockInvoices.EXPECT().
		Create(suite.branchSet, gomock.Any()).
		DoAndReturn(func(_ *repository.BranchSet, req *service.CreateInvoiceRequest) (*models.Invoice, error) {
			assert.Equal(suite.T(), invoice.CustomerID, req.CustomerID)
			return invoice, nil
		})
	suite.mockActivity.EXPECT().Record(suite.branchSet, gomock.Any(), "create", "invoice", invoice.ID.String())

	body, _ := json.Marshal(gin.H{
		"customer_id":    invoice.CustomerID,
		"subtotal_cents": 10000,
		"tax_cents":      2000,
	})
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var got models.Invoice
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), invoice.ID, got.ID)
	assert.Equal(suite.T(), models.InvoiceDraft, got.Status)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_CustomerNotFound() {
	suite.mockInvoices.EXPECT().
		Create(suite.branchSet, gomock.Any()).
		Return(nil, apperrors.ErrCustomerNotFound)

	body, _ := json.Marshal(gin.H{"customer_id": uuid.New()})
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_Success() {
	invoice := testutils.NewInvoiceFactory().Create()
	suite.mockInvoices.EXPECT().GetByID(suite.branchSet, invoice.ID).Return(invoice, nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+invoice.ID.String(), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_InvalidID() {
	req := httptest.NewRequest(http.MethodGet, "/invoices/not-a-uuid", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "invalid UUID format")
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	id := uuid.New()
	suite.mockInvoices.EXPECT().GetByID(suite.branchSet, id).Return(nil, apperrors.ErrInvoiceNotFound)

	req := httptest.NewRequest(http.MethodGet, "/invoices/"+id.String(), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_DefaultPagination() {
	invoices := []models.Invoice{*testutils.NewInvoiceFactory().Create()}
	suite.mockInvoices.EXPECT().List(suite.branchSet, 20, 0).Return(invoices, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got struct {
		Invoices []models.Invoice `json:"invoices"`
		Total    int64            `json:"total"`
	}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), int64(1), got.Total)
	assert.Len(suite.T(), got.Invoices, 1)
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_CustomPagination() {
	suite.mockInvoices.EXPECT().List(suite.branchSet, 10, 10).Return([]models.Invoice{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices?page=2&page_size=10", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_BadPagination() {
	req := httptest.NewRequest(http.MethodGet, "/invoices?page_size=500", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoiceStatus_Issue() {
	invoice := testutils.NewInvoiceFactory().WithStatus(models.InvoiceIssued)
	suite.mockInvoices.EXPECT().
		ChangeStatus(suite.branchSet, invoice.ID, models.InvoiceIssued).
		Return(invoice, nil)
	suite.mockActivity.EXPECT().Record(suite.branchSet, gomock.Any(), "status:issued", "invoice", invoice.ID.String())

	body, _ := json.Marshal(gin.H{"status": "issued"})
	req := httptest.NewRequest(http.MethodPatch, "/invoices/"+invoice.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoiceStatus_NotVoidable() {
	id := uuid.New()
	suite.mockInvoices.EXPECT().
		ChangeStatus(suite.branchSet, id, models.InvoiceVoid).
		Return(nil, apperrors.ErrInvoiceNotVoidable)

	body, _ := json.Marshal(gin.H{"status": "void"})
	req := httptest.NewRequest(http.MethodPatch, "/invoices/"+id.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestInvoiceHandlerTestSuite runs the test suite
func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
