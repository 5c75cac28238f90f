package tenant_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/mocks"
	"branch-billing-backend/internal/tenant"
	"branch-billing-backend/internal/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RegistryTestSuite defines the test suite for the connection registry
type RegistryTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	dir     *mocks.MockBranchRepositoryInterface
	factory *testutils.BranchFactory
}

// SetupTest sets up the test suite
func (suite *RegistryTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.dir = mocks.NewMockBranchRepositoryInterface(suite.ctrl)
	suite.factory = testutils.NewBranchFactory()
}

// TearDownTest cleans up after each test
func (suite *RegistryTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// newMockGorm opens a GORM handle over an in-memory sqlmock connection so
// no real database is touched.
func (suite *RegistryTestSuite) newMockGorm() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	suite.Require().NoError(err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)
	return gdb, mock
}

func (suite *RegistryTestSuite) TestGetUnknownSlug() {
	suite.dir.EXPECT().GetBySlug("missing").Return(nil, gorm.ErrRecordNotFound)

	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		suite.FailNow("opener must not run for an unknown slug")
		return nil, nil
	})

	conn, err := registry.Get("missing")
	suite.Nil(conn)
	suite.ErrorIs(err, apperrors.ErrBranchNotFound)
	suite.Equal(0, registry.Size())
}

func (suite *RegistryTestSuite) TestGetSuspendedBranch() {
	branch := suite.factory.WithSlug("frozen")
	branch.Status = models.BranchSuspended
	suite.dir.EXPECT().GetBySlug("frozen").Return(branch, nil)

	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		suite.FailNow("opener must not run for a suspended branch")
		return nil, nil
	})

	conn, err := registry.Get("frozen")
	suite.Nil(conn)
	suite.True(apperrors.IsBranchUnavailable(err))

	var unavailable *apperrors.BranchUnavailableError
	suite.Require().ErrorAs(err, &unavailable)
	suite.Equal("frozen", unavailable.Slug)
	suite.Equal("suspended", unavailable.Status)
	suite.Equal(0, registry.Size())
}

func (suite *RegistryTestSuite) TestGetArchivedBranch() {
	branch := suite.factory.WithSlug("retired")
	branch.Status = models.BranchArchived
	suite.dir.EXPECT().GetBySlug("retired").Return(branch, nil)

	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		return nil, nil
	})

	_, err := registry.Get("retired")
	suite.True(apperrors.IsBranchUnavailable(err))
}

func (suite *RegistryTestSuite) TestFailedOpenIsNotCached() {
	branch := suite.factory.WithSlug("flaky")
	suite.dir.EXPECT().GetBySlug("flaky").Return(branch, nil).Times(2)

	var attempts atomic.Int32
	gdb, _ := suite.newMockGorm()
	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		return gdb, nil
	})

	_, err := registry.Get("flaky")
	suite.True(apperrors.IsConnectionFailure(err))
	suite.Equal(0, registry.Size())

	// The failure was not cached: the next call retries and succeeds.
	conn, err := registry.Get("flaky")
	suite.NoError(err)
	suite.NotNil(conn)
	suite.Equal(int32(2), attempts.Load())
	suite.Equal(1, registry.Size())
}

func (suite *RegistryTestSuite) TestConcurrentGetOpensOnce() {
	branch := suite.factory.WithSlug("busy")
	suite.dir.EXPECT().GetBySlug("busy").Return(branch, nil).Times(1)

	var opens atomic.Int32
	gdb, _ := suite.newMockGorm()
	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		opens.Add(1)
		return gdb, nil
	})

	const callers = 50
	results := make([]*tenant.Connection, callers)
	errs := make([]error, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = registry.Get("busy")
		}(i)
	}
	start.Done()
	done.Wait()

	suite.Equal(int32(1), opens.Load())
	for i := 0; i < callers; i++ {
		suite.NoError(errs[i])
		suite.Same(results[0], results[i])
	}
	suite.Equal(1, registry.Size())
}

func (suite *RegistryTestSuite) TestRepeatedGetReturnsSameConnection() {
	branch := suite.factory.WithSlug("alpha")
	suite.dir.EXPECT().GetBySlug("alpha").Return(branch, nil).Times(1)

	gdb, _ := suite.newMockGorm()
	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		return gdb, nil
	})

	first, err := registry.Get("alpha")
	suite.Require().NoError(err)
	second, err := registry.Get("alpha")
	suite.Require().NoError(err)
	suite.Same(first, second)
	suite.NotNil(first.Models)
	suite.NotNil(first.Models.Users)
}

func (suite *RegistryTestSuite) TestCloseAllResetsCache() {
	branch := suite.factory.WithSlug("beta")
	suite.dir.EXPECT().GetBySlug("beta").Return(branch, nil).Times(2)

	var opens atomic.Int32
	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		opens.Add(1)
		gdb, mock := suite.newMockGorm()
		mock.ExpectClose()
		return gdb, nil
	})

	first, err := registry.Get("beta")
	suite.Require().NoError(err)
	suite.Equal(1, registry.Size())

	suite.NoError(registry.CloseAll())
	suite.Equal(0, registry.Size())

	// A later Get opens a fresh connection instead of reusing the closed one.
	second, err := registry.Get("beta")
	suite.Require().NoError(err)
	suite.NotSame(first, second)
	suite.Equal(int32(2), opens.Load())
}

func (suite *RegistryTestSuite) TestCloseAllOnEmptyRegistry() {
	registry := tenant.NewRegistry(suite.dir, func(dsn string) (*gorm.DB, error) {
		return nil, nil
	})
	suite.NoError(registry.CloseAll())
	suite.Equal(0, registry.Size())
}

// TestRegistryTestSuite runs the test suite
func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
