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

// ProvisioningService handles catalog administration: creating organizations
// and registering branches. It always runs against the primary catalog
// connection, never a branch one.
type ProvisioningService struct {
	orgs      repository.OrganizationRepositoryInterface
	branches  repository.BranchRepositoryInterface
	validator *validator.Validate
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(orgs repository.OrganizationRepositoryInterface, branches repository.BranchRepositoryInterface, validator *validator.Validate) *ProvisioningService {
	return &ProvisioningService{orgs: orgs, branches: branches, validator: validator}
}

// CreateOrganizationRequest represents the request to create an organization
type CreateOrganizationRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=100"`
	OwnerEmail string          `json:"owner_email" validate:"required,email,max=255"`
	PlanType   models.PlanType `json:"plan_type" validate:"omitempty,oneof=self organization"`
}

// OrganizationResponse represents the response for organization operations
type OrganizationResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail string    `json:"owner_email"`
	Status     string    `json:"status"`
	PlanType   string    `json:"plan_type"`
}

// RegisterBranchRequest represents the request to register a branch
type RegisterBranchRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Name           string    `json:"name" validate:"required,min=1,max=100"`
	Slug           string    `json:"slug" validate:"required,min=1,max=100,lowercase,excludesall= "`
	DSN            string    `json:"dsn" validate:"required,max=512"`
}

// BranchResponse represents the response for branch operations. The DSN is
// never echoed back.
type BranchResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Status         string    `json:"status"`
}

// CreateOrganization creates a new organization account
func (s *ProvisioningService) CreateOrganization(req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if _, err := s.orgs.GetByOwnerEmail(req.OwnerEmail); err == nil {
		return nil, apperrors.ErrOrganizationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	planType := req.PlanType
	if planType == "" {
		planType = models.PlanSelf
	}

	org := &models.Organization{
		Name:       req.Name,
		OwnerEmail: req.OwnerEmail,
		Status:     models.OrganizationActive,
		PlanType:   planType,
	}
	if err := s.orgs.Create(org); err != nil {
		return nil, err
	}

	return organizationResponse(org), nil
}

// RegisterBranch registers a new branch for an organization. The slug is
// immutable once assigned; self-plan accounts may hold only one branch.
func (s *ProvisioningService) RegisterBranch(req *RegisterBranchRequest) (*BranchResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	org, err := s.orgs.GetByID(req.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, err
	}

	if _, err := s.branches.GetBySlug(req.Slug); err == nil {
		return nil, apperrors.ErrBranchExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if org.PlanType == models.PlanSelf {
		existing, err := s.branches.GetByOrganizationID(org.ID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return nil, apperrors.NewValidationError("organization_id", "self-plan organizations may hold only one branch")
		}
	}

	branch := &models.Branch{
		OrganizationID: org.ID,
		Name:           req.Name,
		Slug:           req.Slug,
		DSN:            req.DSN,
		Status:         models.BranchActive,
	}
	if err := s.branches.Create(branch); err != nil {
		return nil, err
	}

	return branchResponse(branch), nil
}

// ListBranches lists all branches of an organization
func (s *ProvisioningService) ListBranches(orgID uuid.UUID) ([]BranchResponse, error) {
	if _, err := s.orgs.GetByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, err
	}

	branches, err := s.branches.GetByOrganizationID(orgID)
	if err != nil {
		return nil, err
	}

	responses := make([]BranchResponse, 0, len(branches))
	for i := range branches {
		responses = append(responses, *branchResponse(&branches[i]))
	}
	return responses, nil
}

// ArchiveBranch archives a branch and soft-deletes its catalog row. Cached
// connections for the branch stay open until process shutdown; only new
// resolutions are refused.
func (s *ProvisioningService) ArchiveBranch(slug string) error {
	err := s.branches.Archive(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrBranchNotFound
	}
	return err
}

func organizationResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:         org.ID,
		Name:       org.Name,
		OwnerEmail: org.OwnerEmail,
		Status:     string(org.Status),
		PlanType:   string(org.PlanType),
	}
}

func branchResponse(branch *models.Branch) *BranchResponse {
	return &BranchResponse{
		ID:             branch.ID,
		OrganizationID: branch.OrganizationID,
		Name:           branch.Name,
		Slug:           branch.Slug,
		Status:         string(branch.Status),
	}
}
