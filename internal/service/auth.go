package service

import (
	"errors"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer issues signed bearer tokens for branch users
type TokenIssuer interface {
	GenerateToken(user *models.User, branchID string) (string, error)
}

// AuthService handles the login flow against a branch-bound user accessor.
// The branch context is resolved before the handler runs, so the service
// only ever sees users of the branch the request was routed to.
type AuthService struct {
	tokens    TokenIssuer
	validator *validator.Validate
}

// NewAuthService creates a new auth service
func NewAuthService(tokens TokenIssuer, validator *validator.Validate) *AuthService {
	return &AuthService{tokens: tokens, validator: validator}
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserProfile is the public shape of a branch user
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	BranchID    string      `json:"branchId,omitempty"`
	Profile     UserProfile `json:"profile"`
}

// RegisterUserRequest represents a new branch user
type RegisterUserRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=8"`
	FirstName string          `json:"first_name" validate:"max=100"`
	LastName  string          `json:"last_name" validate:"max=100"`
	Role      models.UserRole `json:"role" validate:"omitempty,oneof=admin manager staff viewer"`
}

// Login verifies credentials against the branch-bound user accessor and
// issues a token carrying the branch claim.
func (s *AuthService) Login(set *repository.BranchSet, branchID string, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	user, err := set.Users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user, branchID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		BranchID:    branchID,
		Profile:     profileOf(user),
	}, nil
}

// RegisterUser creates a new user in the branch the request resolved to
func (s *AuthService) RegisterUser(set *repository.BranchSet, req *RegisterUserRequest) (*UserProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if _, err := set.Users.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Active:       true,
	}
	if err := set.Users.Create(user); err != nil {
		return nil, err
	}

	profile := profileOf(user)
	return &profile, nil
}

func profileOf(user *models.User) UserProfile {
	return UserProfile{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}
}
