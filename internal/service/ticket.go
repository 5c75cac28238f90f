package service

import (
	"errors"
	"time"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketService handles support ticket business logic
type TicketService struct {
	validator *validator.Validate
}

// NewTicketService creates a new ticket service
func NewTicketService(validator *validator.Validate) *TicketService {
	return &TicketService{validator: validator}
}

// OpenTicketRequest represents the request to open a support ticket
type OpenTicketRequest struct {
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"max=2000"`
}

// Open creates a new support ticket
func (s *TicketService) Open(set *repository.BranchSet, openedBy uuid.UUID, req *OpenTicketRequest) (*models.SupportTicket, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	ticket := &models.SupportTicket{
		Subject:    req.Subject,
		Body:       req.Body,
		Status:     models.TicketOpen,
		OpenedByID: openedBy,
	}
	if err := set.SupportTickets.Create(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List retrieves tickets with pagination
func (s *TicketService) List(set *repository.BranchSet, limit, offset int) ([]models.SupportTicket, int64, error) {
	if limit <= 0 || limit > 100 || offset < 0 {
		return nil, 0, apperrors.ErrInvalidPaginationParams
	}
	return set.SupportTickets.GetAll(limit, offset)
}

// Close closes an open ticket
func (s *TicketService) Close(set *repository.BranchSet, id uuid.UUID) (*models.SupportTicket, error) {
	ticket, err := set.SupportTickets.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	if ticket.Status == models.TicketClosed {
		return nil, apperrors.ErrTicketAlreadyClosed
	}

	now := time.Now()
	ticket.Status = models.TicketClosed
	ticket.ClosedAt = &now
	if err := set.SupportTickets.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
