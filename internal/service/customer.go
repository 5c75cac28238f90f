package service

import (
	"errors"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerService handles customer business logic over whatever branch
// accessor set the request resolved to.
type CustomerService struct {
	validator *validator.Validate
}

// NewCustomerService creates a new customer service
func NewCustomerService(validator *validator.Validate) *CustomerService {
	return &CustomerService{validator: validator}
}

// CreateCustomerRequest represents the request to create a customer
type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Phone     string `json:"phone" validate:"max=30"`
	Address   string `json:"address" validate:"max=500"`
	TaxNumber string `json:"tax_number" validate:"max=50"`
}

// UpdateCustomerRequest represents the request to update a customer
type UpdateCustomerRequest struct {
	Name      string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone     string `json:"phone" validate:"max=30"`
	Address   string `json:"address" validate:"max=500"`
	TaxNumber string `json:"tax_number" validate:"max=50"`
}

// Create creates a new customer
func (s *CustomerService) Create(set *repository.BranchSet, req *CreateCustomerRequest) (*models.Customer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if req.Email != "" {
		if _, err := set.Customers.GetByEmail(req.Email); err == nil {
			return nil, apperrors.ErrCustomerExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	customer := &models.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		TaxNumber: req.TaxNumber,
	}
	if err := set.Customers.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID retrieves a customer
func (s *CustomerService) GetByID(set *repository.BranchSet, id uuid.UUID) (*models.Customer, error) {
	customer, err := set.Customers.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// List retrieves customers with pagination
func (s *CustomerService) List(set *repository.BranchSet, limit, offset int) ([]models.Customer, int64, error) {
	if limit <= 0 || limit > 100 || offset < 0 {
		return nil, 0, apperrors.ErrInvalidPaginationParams
	}
	return set.Customers.GetAll(limit, offset)
}

// Update applies partial updates to a customer
func (s *CustomerService) Update(set *repository.BranchSet, id uuid.UUID, req *UpdateCustomerRequest) (*models.Customer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	customer, err := s.GetByID(set, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if req.TaxNumber != "" {
		customer.TaxNumber = req.TaxNumber
	}

	if err := set.Customers.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete soft-deletes a customer
func (s *CustomerService) Delete(set *repository.BranchSet, id uuid.UUID) error {
	if _, err := s.GetByID(set, id); err != nil {
		return err
	}
	return set.Customers.Delete(id)
}
