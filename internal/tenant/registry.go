package tenant

import (
	"errors"
	"sync"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/logger"
	"branch-billing-backend/internal/repository"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Directory is the catalog lookup the registry needs to load a branch record
type Directory interface {
	GetBySlug(slug string) (*models.Branch, error)
}

// Opener establishes a live database connection from a branch's connection
// descriptor.
type Opener func(dsn string) (*gorm.DB, error)

// Connection is one cached entry: a live branch connection and the accessor
// set bound to it. All requests for the branch share this pair for the life
// of the process.
type Connection struct {
	DB     *gorm.DB
	Models *repository.BranchSet
}

// Registry is the process-wide connection pool cache. It owns its own
// synchronization; callers only see Get and CloseAll. At most one physical
// connection is ever established per branch slug: concurrent first-time
// callers for the same slug share one in-flight creation and converge on the
// same entry.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection

	group singleflight.Group
	dir   Directory
	open  Opener
	log   *logger.Logger
}

// NewRegistry creates a connection registry over a catalog directory and an
// opener for branch DSNs.
func NewRegistry(dir Directory, open Opener) *Registry {
	return &Registry{
		conns: make(map[string]*Connection),
		dir:   dir,
		open:  open,
		log:   logger.New(),
	}
}

// Get returns the cached connection for a branch slug, creating it on first
// access. Creation runs outside any single request's lifetime, so a caller
// abandoning the request cannot poison an attempt shared with other waiters.
// Failed attempts are not cached; the next call retries creation.
func (r *Registry) Get(slug string) (*Connection, error) {
	r.mu.RLock()
	conn, ok := r.conns[slug]
	r.mu.RUnlock()
	if ok {
		return conn, nil
	}

	v, err, _ := r.group.Do(slug, func() (interface{}, error) {
		// A concurrent caller may have populated the entry between the
		// read above and joining the flight.
		r.mu.RLock()
		conn, ok := r.conns[slug]
		r.mu.RUnlock()
		if ok {
			return conn, nil
		}

		created, err := r.create(slug)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.conns[slug] = created
		r.mu.Unlock()
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Connection), nil
}

func (r *Registry) create(slug string) (*Connection, error) {
	branch, err := r.dir.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBranchNotFound
		}
		return nil, err
	}

	if !branch.IsActive() {
		return nil, apperrors.NewBranchUnavailableError(branch.Slug, string(branch.Status))
	}

	db, err := r.open(branch.DSN)
	if err != nil {
		return nil, apperrors.NewConnectionError(branch.Slug, err)
	}

	r.log.WithBranch(slug).Info("Opened branch database connection")
	return &Connection{
		DB:     db,
		Models: repository.NewBranchSet(db),
	}, nil
}

// Size returns the number of cached branch connections
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll closes every cached connection and clears the cache. It is meant
// for process shutdown, after in-flight requests have drained; a later Get
// would open a fresh connection rather than reuse a closed handle.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]*Connection)
	r.mu.Unlock()

	var errs []error
	for slug, conn := range conns {
		sqlDB, err := conn.DB.DB()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
			continue
		}
		r.log.WithBranch(slug).Info("Closed branch database connection")
	}
	return errors.Join(errs...)
}
