package repository

import (
	"gorm.io/gorm"
)

// BranchSet is the full entity accessor set bound to one database
// connection. Every request handler works through a BranchSet and never
// through a global repository, so a handler can only ever touch the data of
// the branch its request resolved to.
type BranchSet struct {
	Users          UserRepositoryInterface
	Customers      CustomerRepositoryInterface
	Products       ProductRepositoryInterface
	Inventory      InventoryRepositoryInterface
	Invoices       InvoiceRepositoryInterface
	StaffLogs      StaffLogRepositoryInterface
	Settings       SettingsRepositoryInterface
	SupportTickets SupportTicketRepositoryInterface
	ActivityLogs   ActivityLogRepositoryInterface
}

// NewBranchSet binds the full entity schema set to one connection. It is a
// pure mapping: calling it twice on the same connection yields equivalent
// sets and registers nothing, so re-binding is harmless.
func NewBranchSet(db *gorm.DB) *BranchSet {
	return &BranchSet{
		Users:          NewUserRepository(db),
		Customers:      NewCustomerRepository(db),
		Products:       NewProductRepository(db),
		Inventory:      NewInventoryRepository(db),
		Invoices:       NewInvoiceRepository(db),
		StaffLogs:      NewStaffLogRepository(db),
		Settings:       NewSettingsRepository(db),
		SupportTickets: NewSupportTicketRepository(db),
		ActivityLogs:   NewActivityLogRepository(db),
	}
}
