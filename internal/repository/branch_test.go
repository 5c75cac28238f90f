//go:build integration
// +build integration

package repository

import (
	"testing"

	"branch-billing-backend/internal/database/models"
	"branch-billing-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// BranchRepositoryTestSuite tests the BranchRepository
type BranchRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *BranchRepository
	orgRepo       *OrganizationRepository
}

// SetupSuite runs before all tests in the suite
func (suite *BranchRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewBranchRepository(suite.baseTestSuite.DB)
	suite.orgRepo = NewOrganizationRepository(suite.baseTestSuite.DB)
}

// TearDownSuite runs after all tests in the suite
func (suite *BranchRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *BranchRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *BranchRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createOrganization persists a parent organization for branch fixtures
func (suite *BranchRepositoryTestSuite) createOrganization() *models.Organization {
	org := testutils.NewOrganizationFactory().Create()
	suite.Require().NoError(suite.orgRepo.Create(org))
	return org
}

// TestCreate tests registering a new branch
func (suite *BranchRepositoryTestSuite) TestCreate() {
	org := suite.createOrganization()
	branch := testutils.NewBranchFactory().WithOrganization(org.ID)

	err := suite.repo.Create(branch)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, branch.ID)
	suite.NotZero(branch.CreatedAt)
}

// TestCreateDuplicateSlug tests the unique index on slug
func (suite *BranchRepositoryTestSuite) TestCreateDuplicateSlug() {
	org := suite.createOrganization()

	branch1 := testutils.NewBranchFactory().WithOrganization(org.ID)
	branch1.Slug = "downtown"
	suite.NoError(suite.repo.Create(branch1))

	branch2 := testutils.NewBranchFactory().WithOrganization(org.ID)
	branch2.Slug = "downtown"

	err := suite.repo.Create(branch2)
	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetBySlug tests retrieving a branch by slug
func (suite *BranchRepositoryTestSuite) TestGetBySlug() {
	org := suite.createOrganization()
	branch := testutils.NewBranchFactory().WithOrganization(org.ID)
	branch.Slug = "uptown"
	suite.NoError(suite.repo.Create(branch))

	retrieved, err := suite.repo.GetBySlug("uptown")

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(branch.ID, retrieved.ID)
	suite.Equal(branch.DSN, retrieved.DSN)
	suite.Equal(models.BranchActive, retrieved.Status)
}

// TestGetBySlugNotFound tests retrieving a non-existent branch
func (suite *BranchRepositoryTestSuite) TestGetBySlugNotFound() {
	branch, err := suite.repo.GetBySlug("no-such-slug")

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(branch)
}

// TestGetByOrganizationID tests listing an organization's branches
func (suite *BranchRepositoryTestSuite) TestGetByOrganizationID() {
	org := suite.createOrganization()
	other := suite.createOrganization()

	suite.NoError(suite.repo.Create(testutils.NewBranchFactory().WithOrganization(org.ID)))
	suite.NoError(suite.repo.Create(testutils.NewBranchFactory().WithOrganization(org.ID)))
	suite.NoError(suite.repo.Create(testutils.NewBranchFactory().WithOrganization(other.ID)))

	branches, err := suite.repo.GetByOrganizationID(org.ID)

	suite.NoError(err)
	suite.Len(branches, 2)
	for _, b := range branches {
		suite.Equal(org.ID, b.OrganizationID)
	}
}

// TestGetAll tests listing branches with pagination
func (suite *BranchRepositoryTestSuite) TestGetAll() {
	org := suite.createOrganization()
	for i := 0; i < 5; i++ {
		suite.NoError(suite.repo.Create(testutils.NewBranchFactory().WithOrganization(org.ID)))
	}

	branches, total, err := suite.repo.GetAll(2, 0)
	suite.NoError(err)
	suite.Len(branches, 2)
	suite.Equal(int64(5), total)

	branches, total, err = suite.repo.GetAll(10, 4)
	suite.NoError(err)
	suite.Len(branches, 1)
	suite.Equal(int64(5), total)
}

// TestUpdateStatus tests changing the lifecycle status
func (suite *BranchRepositoryTestSuite) TestUpdateStatus() {
	org := suite.createOrganization()
	branch := testutils.NewBranchFactory().WithOrganization(org.ID)
	branch.Slug = "seasonal"
	suite.NoError(suite.repo.Create(branch))

	err := suite.repo.UpdateStatus("seasonal", models.BranchSuspended)
	suite.NoError(err)

	retrieved, err := suite.repo.GetBySlug("seasonal")
	suite.NoError(err)
	suite.Equal(models.BranchSuspended, retrieved.Status)
	suite.False(retrieved.IsActive())
}

// TestUpdateStatusNotFound tests updating a non-existent branch
func (suite *BranchRepositoryTestSuite) TestUpdateStatusNotFound() {
	err := suite.repo.UpdateStatus("ghost", models.BranchSuspended)

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestArchive tests archiving a branch. The row is soft-deleted but the
// status change lands first inside the same transaction.
func (suite *BranchRepositoryTestSuite) TestArchive() {
	org := suite.createOrganization()
	branch := testutils.NewBranchFactory().WithOrganization(org.ID)
	branch.Slug = "closing"
	suite.NoError(suite.repo.Create(branch))

	err := suite.repo.Archive("closing")
	suite.NoError(err)

	// the default scope hides soft-deleted rows
	_, err = suite.repo.GetBySlug("closing")
	suite.Equal(gorm.ErrRecordNotFound, err)

	// the row itself survives with archived status
	var raw models.Branch
	err = suite.baseTestSuite.DB.Unscoped().First(&raw, "slug = ?", "closing").Error
	suite.NoError(err)
	suite.Equal(models.BranchArchived, raw.Status)
	suite.True(raw.DeletedAt.Valid)
}

// TestArchiveNotFound tests archiving a non-existent branch
func (suite *BranchRepositoryTestSuite) TestArchiveNotFound() {
	err := suite.repo.Archive("ghost")

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// Run the test suite
func TestBranchRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(BranchRepositoryTestSuite))
}
