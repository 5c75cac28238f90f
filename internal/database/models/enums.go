package models

// PlanType classifies an organization account
type PlanType string

const (
	// PlanSelf is a single-branch account; its one branch is the implicit
	// tenant for any login attempt by the owner.
	PlanSelf PlanType = "self"
	// PlanOrganization is a multi-branch account; requests must name a branch.
	PlanOrganization PlanType = "organization"
)

// OrganizationStatus represents the lifecycle state of an organization
type OrganizationStatus string

const (
	OrganizationActive   OrganizationStatus = "active"
	OrganizationInactive OrganizationStatus = "inactive"
)

// BranchStatus represents the lifecycle state of a branch.
// Only active branches accept connections.
type BranchStatus string

const (
	BranchActive    BranchStatus = "active"
	BranchSuspended BranchStatus = "suspended"
	BranchArchived  BranchStatus = "archived"
)

// UserRole represents the role of a branch user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
	RoleViewer  UserRole = "viewer"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "draft"
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
	InvoiceVoid   InvoiceStatus = "void"
)

// TicketStatus represents the lifecycle state of a support ticket
type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)
