package service

import (
	"branch-billing-backend/internal/database/models"
	"branch-billing-backend/internal/repository"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AuthServiceInterface defines the login operations used by handlers.
// Every method receives the branch-bound accessor set of the in-flight
// request; services hold no connection of their own.
type AuthServiceInterface interface {
	Login(set *repository.BranchSet, branchID string, req *LoginRequest) (*LoginResponse, error)
	RegisterUser(set *repository.BranchSet, req *RegisterUserRequest) (*UserProfile, error)
}

// ProvisioningServiceInterface defines the catalog administration operations
type ProvisioningServiceInterface interface {
	CreateOrganization(req *CreateOrganizationRequest) (*OrganizationResponse, error)
	RegisterBranch(req *RegisterBranchRequest) (*BranchResponse, error)
	ListBranches(orgID uuid.UUID) ([]BranchResponse, error)
	ArchiveBranch(slug string) error
}

// InvoiceServiceInterface defines invoice operations over a branch accessor set
type InvoiceServiceInterface interface {
	Create(set *repository.BranchSet, req *CreateInvoiceRequest) (*models.Invoice, error)
	GetByID(set *repository.BranchSet, id uuid.UUID) (*models.Invoice, error)
	List(set *repository.BranchSet, limit, offset int) ([]models.Invoice, int64, error)
	ChangeStatus(set *repository.BranchSet, id uuid.UUID, status models.InvoiceStatus) (*models.Invoice, error)
}

// CustomerServiceInterface defines customer operations over a branch accessor set
type CustomerServiceInterface interface {
	Create(set *repository.BranchSet, req *CreateCustomerRequest) (*models.Customer, error)
	GetByID(set *repository.BranchSet, id uuid.UUID) (*models.Customer, error)
	List(set *repository.BranchSet, limit, offset int) ([]models.Customer, int64, error)
	Update(set *repository.BranchSet, id uuid.UUID, req *UpdateCustomerRequest) (*models.Customer, error)
	Delete(set *repository.BranchSet, id uuid.UUID) error
}

// TicketServiceInterface defines support ticket operations over a branch accessor set
type TicketServiceInterface interface {
	Open(set *repository.BranchSet, openedBy uuid.UUID, req *OpenTicketRequest) (*models.SupportTicket, error)
	List(set *repository.BranchSet, limit, offset int) ([]models.SupportTicket, int64, error)
	Close(set *repository.BranchSet, id uuid.UUID) (*models.SupportTicket, error)
}

// ActivityServiceInterface defines audit trail operations over a branch accessor set
type ActivityServiceInterface interface {
	Record(set *repository.BranchSet, actorID *uuid.UUID, action, entity, entityID string)
	List(set *repository.BranchSet, limit, offset int) ([]models.ActivityLog, int64, error)
}
