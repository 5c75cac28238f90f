package repository

import (
	"branch-billing-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the catalog operations for organizations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByOwnerEmail(email string) (*models.Organization, error)
	GetAll(limit, offset int) ([]models.Organization, int64, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) error
}

// BranchRepositoryInterface defines the catalog operations for branches.
// These are the Tenant Directory lookups: pure reads, no caching. The
// expensive resource is the connection, which is cached one level up.
type BranchRepositoryInterface interface {
	Create(branch *models.Branch) error
	GetByID(id uuid.UUID) (*models.Branch, error)
	GetBySlug(slug string) (*models.Branch, error)
	GetByOrganizationID(orgID uuid.UUID) ([]models.Branch, error)
	GetAll(limit, offset int) ([]models.Branch, int64, error)
	UpdateStatus(slug string, status models.BranchStatus) error
	Archive(slug string) error
}

// UserRepositoryInterface defines operations on one branch's users
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// CustomerRepositoryInterface defines operations on one branch's customers
type CustomerRepositoryInterface interface {
	Create(customer *models.Customer) error
	GetByID(id uuid.UUID) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	GetAll(limit, offset int) ([]models.Customer, int64, error)
	Update(customer *models.Customer) error
	Delete(id uuid.UUID) error
}

// ProductRepositoryInterface defines operations on one branch's products
type ProductRepositoryInterface interface {
	Create(product *models.Product) error
	GetByID(id uuid.UUID) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	GetAll(limit, offset int) ([]models.Product, int64, error)
	Update(product *models.Product) error
	Delete(id uuid.UUID) error
}

// InventoryRepositoryInterface defines operations on one branch's stock levels
type InventoryRepositoryInterface interface {
	Upsert(entry *models.Inventory) error
	GetByProductID(productID uuid.UUID) (*models.Inventory, error)
	GetAll(limit, offset int) ([]models.Inventory, int64, error)
	AdjustQuantity(productID uuid.UUID, delta int64) error
}

// InvoiceRepositoryInterface defines operations on one branch's invoices
type InvoiceRepositoryInterface interface {
	Create(invoice *models.Invoice) error
	GetByID(id uuid.UUID) (*models.Invoice, error)
	GetByNumber(number string) (*models.Invoice, error)
	GetAll(limit, offset int) ([]models.Invoice, int64, error)
	GetByCustomerID(customerID uuid.UUID, limit, offset int) ([]models.Invoice, int64, error)
	Update(invoice *models.Invoice) error
	UpdateStatus(id uuid.UUID, status models.InvoiceStatus) error
}

// StaffLogRepositoryInterface defines operations on one branch's staff logs
type StaffLogRepositoryInterface interface {
	Create(entry *models.StaffLog) error
	GetByUserID(userID uuid.UUID, limit, offset int) ([]models.StaffLog, int64, error)
	GetAll(limit, offset int) ([]models.StaffLog, int64, error)
}

// SettingsRepositoryInterface defines operations on one branch's settings row
type SettingsRepositoryInterface interface {
	Get() (*models.Settings, error)
	Upsert(settings *models.Settings) error
}

// SupportTicketRepositoryInterface defines operations on one branch's tickets
type SupportTicketRepositoryInterface interface {
	Create(ticket *models.SupportTicket) error
	GetByID(id uuid.UUID) (*models.SupportTicket, error)
	GetAll(limit, offset int) ([]models.SupportTicket, int64, error)
	GetByStatus(status models.TicketStatus, limit, offset int) ([]models.SupportTicket, int64, error)
	Update(ticket *models.SupportTicket) error
}

// ActivityLogRepositoryInterface defines operations on one branch's audit trail
type ActivityLogRepositoryInterface interface {
	Create(entry *models.ActivityLog) error
	GetAll(limit, offset int) ([]models.ActivityLog, int64, error)
	GetByEntity(entity string, limit, offset int) ([]models.ActivityLog, int64, error)
}
