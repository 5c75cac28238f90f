package repository

import (
	"branch-billing-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupportTicketRepository handles database operations for one branch's tickets
type SupportTicketRepository struct {
	db *gorm.DB
}

// NewSupportTicketRepository creates a new support ticket repository bound to one connection
func NewSupportTicketRepository(db *gorm.DB) *SupportTicketRepository {
	return &SupportTicketRepository{db: db}
}

// Create opens a new support ticket
func (r *SupportTicketRepository) Create(ticket *models.SupportTicket) error {
	return r.db.Create(ticket).Error
}

// GetByID retrieves a ticket by ID
func (r *SupportTicketRepository) GetByID(id uuid.UUID) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := r.db.First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetAll retrieves all tickets with pagination, newest first
func (r *SupportTicketRepository) GetAll(limit, offset int) ([]models.SupportTicket, int64, error) {
	var tickets []models.SupportTicket
	var total int64

	if err := r.db.Model(&models.SupportTicket{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Order("created_at desc").Find(&tickets).Error
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// GetByStatus retrieves tickets in a given status with pagination
func (r *SupportTicketRepository) GetByStatus(status models.TicketStatus, limit, offset int) ([]models.SupportTicket, int64, error) {
	var tickets []models.SupportTicket
	var total int64

	query := r.db.Model(&models.SupportTicket{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&tickets).Error
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// Update updates a ticket
func (r *SupportTicketRepository) Update(ticket *models.SupportTicket) error {
	return r.db.Save(ticket).Error
}
