package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this slug"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// BranchUnavailableError is returned when a branch exists in the catalog but its
// status does not allow connections. The status is carried so callers can report
// why the branch was refused.
type BranchUnavailableError struct {
	Slug   string
	Status string
}

func (e *BranchUnavailableError) Error() string {
	return fmt.Sprintf("branch %s is not available (status: %s)", e.Slug, e.Status)
}

// ConnectionError wraps a failure to establish a branch database connection.
// Failed attempts are never cached; a later request retries creation.
type ConnectionError struct {
	Slug string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to branch %s database: %v", e.Slug, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrBranchNotFound       = &NotFoundError{Entity: "branch"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrCustomerNotFound     = &NotFoundError{Entity: "customer"}
	ErrInvoiceNotFound      = &NotFoundError{Entity: "invoice"}
	ErrProductNotFound      = &NotFoundError{Entity: "product"}
	ErrTicketNotFound       = &NotFoundError{Entity: "support ticket"}
	ErrSettingsNotFound     = &NotFoundError{Entity: "settings"}
)

// Already Exists Errors
var (
	ErrOrganizationExists = &AlreadyExistsError{Entity: "organization", Context: "with this owner email"}
	ErrBranchExists       = &AlreadyExistsError{Entity: "branch", Context: "with this slug"}
	ErrUserExists         = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrCustomerExists     = &AlreadyExistsError{Entity: "customer", Context: "with this email"}
)

// Authentication Errors
var (
	ErrMissingCredentials = &AuthenticationError{Message: "authorization credentials are required"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid email or password"}
	ErrUserNotInBranch    = &AuthenticationError{Message: "user does not exist in the resolved branch"}
)

// Authorization Errors
var (
	ErrInsufficientRole = &AuthorizationError{Message: "role is not permitted for this operation"}
)

// Business Logic Errors
var (
	ErrInvoiceNotVoidable      = errors.New("only issued invoices can be voided")
	ErrTicketAlreadyClosed     = errors.New("support ticket is already closed")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
	ErrAmbiguousBranch         = errors.New("organization has more than one branch; an explicit branch is required")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsBranchUnavailable checks if an error is a BranchUnavailableError
func IsBranchUnavailable(err error) bool {
	var unavailableErr *BranchUnavailableError
	return errors.As(err, &unavailableErr)
}

// IsConnectionFailure checks if an error is a ConnectionError
func IsConnectionFailure(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewBranchUnavailableError creates a BranchUnavailableError for a branch and status
func NewBranchUnavailableError(slug, status string) error {
	return &BranchUnavailableError{Slug: slug, Status: status}
}

// NewConnectionError wraps a connection establishment failure for a branch
func NewConnectionError(slug string, err error) error {
	return &ConnectionError{Slug: slug, Err: err}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
