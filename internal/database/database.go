package database

import (
	"fmt"
	"time"

	"branch-billing-backend/internal/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AutoMigrate     bool
}

func (o *Options) applyDefaults() {
	if o.LogLevel == 0 {
		o.LogLevel = logger.Error
	}
	if o.MaxOpenConns == 0 {
		o.MaxOpenConns = 20
	}
	if o.MaxIdleConns == 0 {
		o.MaxIdleConns = 10
	}
	if o.ConnMaxLifetime == 0 {
		o.ConnMaxLifetime = 30 * time.Minute
	}
	if o.ConnMaxIdleTime == 0 {
		o.ConnMaxIdleTime = 10 * time.Minute
	}
}

// catalogModels are the central directory tables.
var catalogModels = []interface{}{
	&models.Organization{},
	&models.Branch{},
}

// branchModels is the full entity schema bound into every branch database.
var branchModels = []interface{}{
	&models.User{},
	&models.Customer{},
	&models.Product{},
	&models.Inventory{},
	&models.Invoice{},
	&models.StaffLog{},
	&models.Settings{},
	&models.SupportTicket{},
	&models.ActivityLog{},
}

// Initialize opens the primary (catalog) Postgres connection. The primary
// database carries the directory tables and also the full entity schema, so
// the shared fallback context can bind the same accessor set to it.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	db, err := open(dsn, opts)
	if err != nil {
		return nil, err
	}

	// Required for BaseModel's gen_random_uuid() default
	_ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error

	all := append(append([]interface{}{}, catalogModels...), branchModels...)
	if err := db.AutoMigrate(all...); err != nil {
		return nil, fmt.Errorf("auto-migrate catalog: %w", err)
	}

	return db, nil
}

// OpenBranch opens one branch database from its connection descriptor and
// migrates the branch entity schema into it.
func OpenBranch(dsn string, opts *Options) (*gorm.DB, error) {
	db, err := open(dsn, opts)
	if err != nil {
		return nil, err
	}

	_ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error

	if err := db.AutoMigrate(branchModels...); err != nil {
		return nil, fmt.Errorf("auto-migrate branch: %w", err)
	}

	return db, nil
}

func open(dsn string, opts *Options) (*gorm.DB, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.applyDefaults()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	return db, nil
}
