package service_test

import (
	"testing"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/mocks"
	"branch-billing-backend/internal/repository"
	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// InvoiceServiceTestSuite defines the test suite for InvoiceService
type InvoiceServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	invoices  *mocks.MockInvoiceRepositoryInterface
	customers *mocks.MockCustomerRepositoryInterface
	settings  *mocks.MockSettingsRepositoryInterface
	set       *repository.BranchSet
	service   *service.InvoiceService
}

// SetupTest sets up the test suite
func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.invoices = mocks.NewMockInvoiceRepositoryInterface(suite.ctrl)
	suite.customers = mocks.NewMockCustomerRepositoryInterface(suite.ctrl)
	suite.settings = mocks.NewMockSettingsRepositoryInterface(suite.ctrl)
	suite.set = &repository.BranchSet{
		Invoices:  suite.invoices,
		Customers: suite.customers,
		Settings:  suite.settings,
	}
	suite.service = service.NewInvoiceService(validator.New())
}

// TearDownTest cleans up after each test
func (suite *InvoiceServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice() {
	customer := testutils.NewCustomerFactory().Create()
	suite.customers.EXPECT().GetByID(customer.ID).Return(customer, nil)
	suite.settings.EXPECT().Get().Return(&models.Settings{InvoicePrefix: "ACME"}, nil)
	suite.invoices.EXPECT().Create(gomock.Any()).DoAndReturn(func(invoice *models.Invoice) error {
		suite.Equal(models.InvoiceDraft, invoice.Status)
		suite.Equal(int64(12000), invoice.TotalCents)
		suite.Contains(invoice.Number, "ACME-")
		return nil
	})

	invoice, err := suite.service.Create(suite.set, &service.CreateInvoiceRequest{
		CustomerID:    customer.ID,
		SubtotalCents: 10000,
		TaxCents:      2000,
	})
	suite.Require().NoError(err)
	suite.Equal(customer.ID, invoice.CustomerID)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceDefaultPrefix() {
	customer := testutils.NewCustomerFactory().Create()
	suite.customers.EXPECT().GetByID(customer.ID).Return(customer, nil)
	suite.settings.EXPECT().Get().Return(nil, gorm.ErrRecordNotFound)
	suite.invoices.EXPECT().Create(gomock.Any()).DoAndReturn(func(invoice *models.Invoice) error {
		suite.Contains(invoice.Number, "INV-")
		return nil
	})

	_, err := suite.service.Create(suite.set, &service.CreateInvoiceRequest{
		CustomerID: customer.ID,
	})
	suite.NoError(err)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceUnknownCustomer() {
	customerID := uuid.New()
	suite.customers.EXPECT().GetByID(customerID).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Create(suite.set, &service.CreateInvoiceRequest{
		CustomerID: customerID,
	})
	suite.ErrorIs(err, apperrors.ErrCustomerNotFound)
}

func (suite *InvoiceServiceTestSuite) TestGetByIDNotFound() {
	id := uuid.New()
	suite.invoices.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.GetByID(suite.set, id)
	suite.ErrorIs(err, apperrors.ErrInvoiceNotFound)
}

func (suite *InvoiceServiceTestSuite) TestListRejectsBadPagination() {
	_, _, err := suite.service.List(suite.set, 0, 0)
	suite.ErrorIs(err, apperrors.ErrInvalidPaginationParams)

	_, _, err = suite.service.List(suite.set, 500, 0)
	suite.ErrorIs(err, apperrors.ErrInvalidPaginationParams)
}

func (suite *InvoiceServiceTestSuite) TestIssueStampsIssuedAt() {
	invoice := testutils.NewInvoiceFactory().Create()
	suite.invoices.EXPECT().GetByID(invoice.ID).Return(invoice, nil)
	suite.invoices.EXPECT().Update(gomock.Any()).Return(nil)

	updated, err := suite.service.ChangeStatus(suite.set, invoice.ID, models.InvoiceIssued)
	suite.Require().NoError(err)
	suite.Equal(models.InvoiceIssued, updated.Status)
	suite.NotNil(updated.IssuedAt)
}

func (suite *InvoiceServiceTestSuite) TestVoidRequiresIssuedState() {
	draft := testutils.NewInvoiceFactory().Create()
	suite.invoices.EXPECT().GetByID(draft.ID).Return(draft, nil)

	_, err := suite.service.ChangeStatus(suite.set, draft.ID, models.InvoiceVoid)
	suite.ErrorIs(err, apperrors.ErrInvoiceNotVoidable)
}

func (suite *InvoiceServiceTestSuite) TestVoidIssuedInvoice() {
	issued := testutils.NewInvoiceFactory().WithStatus(models.InvoiceIssued)
	suite.invoices.EXPECT().GetByID(issued.ID).Return(issued, nil)
	suite.invoices.EXPECT().Update(gomock.Any()).Return(nil)

	updated, err := suite.service.ChangeStatus(suite.set, issued.ID, models.InvoiceVoid)
	suite.Require().NoError(err)
	suite.Equal(models.InvoiceVoid, updated.Status)
}

func (suite *InvoiceServiceTestSuite) TestChangeStatusRejectsUnknownStatus() {
	invoice := testutils.NewInvoiceFactory().Create()
	suite.invoices.EXPECT().GetByID(invoice.ID).Return(invoice, nil)

	_, err := suite.service.ChangeStatus(suite.set, invoice.ID, models.InvoiceStatus("bogus"))
	suite.True(apperrors.IsValidation(err))
}

// TestInvoiceServiceTestSuite runs the test suite
func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
