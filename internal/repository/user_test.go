//go:build integration
// +build integration

package repository

import (
	"testing"

	"branch-billing-backend/internal/database/models"
	"branch-billing-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository against a branch database
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new user
func (suite *UserRepositoryTestSuite) TestCreate() {
	user := testutils.NewUserFactory().Create()

	err := suite.repo.Create(user)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, user.ID)
	suite.NotZero(user.CreatedAt)
}

// TestCreateStoresHashedPassword tests that the stored hash verifies
func (suite *UserRepositoryTestSuite) TestCreateStoresHashedPassword() {
	user := testutils.NewUserFactory().Create()
	suite.NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByID(user.ID)
	suite.NoError(err)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(retrieved.PasswordHash), []byte("password123")))
}

// TestGetByEmail tests retrieving a user by email
func (suite *UserRepositoryTestSuite) TestGetByEmail() {
	user := testutils.NewUserFactory().WithEmail("cashier@branch.test")
	suite.NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByEmail("cashier@branch.test")

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(user.ID, retrieved.ID)
	suite.Equal(models.RoleStaff, retrieved.Role)
}

// TestGetByEmailNotFound tests retrieving a non-existent user
func (suite *UserRepositoryTestSuite) TestGetByEmailNotFound() {
	user, err := suite.repo.GetByEmail("missing@branch.test")

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(user)
}

// TestGetByIDNotFound tests the miss path used by the auth gate
func (suite *UserRepositoryTestSuite) TestGetByIDNotFound() {
	user, err := suite.repo.GetByID(uuid.New())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(user)
}

// TestGetAll tests listing users with pagination
func (suite *UserRepositoryTestSuite) TestGetAll() {
	for i := 0; i < 4; i++ {
		suite.NoError(suite.repo.Create(testutils.NewUserFactory().Create()))
	}

	users, total, err := suite.repo.GetAll(3, 0)

	suite.NoError(err)
	suite.Len(users, 3)
	suite.Equal(int64(4), total)
}

// TestUpdate tests updating a user
func (suite *UserRepositoryTestSuite) TestUpdate() {
	user := testutils.NewUserFactory().Create()
	suite.NoError(suite.repo.Create(user))

	user.Role = models.RoleManager
	user.Active = false

	suite.NoError(suite.repo.Update(user))

	updated, err := suite.repo.GetByID(user.ID)
	suite.NoError(err)
	suite.Equal(models.RoleManager, updated.Role)
	suite.False(updated.Active)
}

// TestDelete tests soft-deleting a user
func (suite *UserRepositoryTestSuite) TestDelete() {
	user := testutils.NewUserFactory().Create()
	suite.NoError(suite.repo.Create(user))

	suite.NoError(suite.repo.Delete(user.ID))

	_, err := suite.repo.GetByID(user.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// Run the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
