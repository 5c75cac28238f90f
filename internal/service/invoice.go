package service

import (
	"errors"
	"fmt"
	"time"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceService handles invoice business logic over whatever branch
// accessor set the request resolved to.
type InvoiceService struct {
	validator *validator.Validate
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(validator *validator.Validate) *InvoiceService {
	return &InvoiceService{validator: validator}
}

// CreateInvoiceRequest represents the request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID    uuid.UUID  `json:"customer_id" validate:"required"`
	SubtotalCents int64      `json:"subtotal_cents" validate:"gte=0"`
	TaxCents      int64      `json:"tax_cents" validate:"gte=0"`
	Notes         string     `json:"notes" validate:"max=1000"`
	DueAt         *time.Time `json:"due_at,omitempty"`
}

// Create creates a draft invoice for an existing customer
func (s *InvoiceService) Create(set *repository.BranchSet, req *CreateInvoiceRequest) (*models.Invoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if _, err := set.Customers.GetByID(req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, err
	}

	invoice := &models.Invoice{
		Number:        s.nextNumber(set),
		CustomerID:    req.CustomerID,
		Status:        models.InvoiceDraft,
		SubtotalCents: req.SubtotalCents,
		TaxCents:      req.TaxCents,
		TotalCents:    req.SubtotalCents + req.TaxCents,
		Notes:         req.Notes,
		DueAt:         req.DueAt,
	}
	if err := set.Invoices.Create(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetByID retrieves an invoice
func (s *InvoiceService) GetByID(set *repository.BranchSet, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := set.Invoices.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// List retrieves invoices with pagination
func (s *InvoiceService) List(set *repository.BranchSet, limit, offset int) ([]models.Invoice, int64, error) {
	if limit <= 0 || limit > 100 || offset < 0 {
		return nil, 0, apperrors.ErrInvalidPaginationParams
	}
	return set.Invoices.GetAll(limit, offset)
}

// ChangeStatus transitions an invoice. Issuing stamps the issue time; an
// invoice may be voided only from the issued state.
func (s *InvoiceService) ChangeStatus(set *repository.BranchSet, id uuid.UUID, status models.InvoiceStatus) (*models.Invoice, error) {
	invoice, err := s.GetByID(set, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.InvoiceIssued:
		now := time.Now()
		invoice.IssuedAt = &now
	case models.InvoiceVoid:
		if invoice.Status != models.InvoiceIssued {
			return nil, apperrors.ErrInvoiceNotVoidable
		}
	case models.InvoicePaid, models.InvoiceDraft:
		// no extra bookkeeping
	default:
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown invoice status %q", status))
	}

	invoice.Status = status
	if err := set.Invoices.Update(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// nextNumber derives an invoice number from the branch settings prefix. The
// uniqueness guarantee comes from the unique index, not from this format.
func (s *InvoiceService) nextNumber(set *repository.BranchSet) string {
	prefix := "INV"
	if settings, err := set.Settings.Get(); err == nil && settings.InvoicePrefix != "" {
		prefix = settings.InvoicePrefix
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), uuid.NewString()[:8])
}
