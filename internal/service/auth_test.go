package service_test

import (
	"testing"

	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/mocks"
	"branch-billing-backend/internal/repository"
	"branch-billing-backend/internal/service"
	"branch-billing-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// recordingIssuer is a TokenIssuer stand-in that records what it was asked to sign
type recordingIssuer struct {
	token    string
	branchID string
}

func (s *recordingIssuer) GenerateToken(user *models.User, branchID string) (string, error) {
	s.branchID = branchID
	return s.token, nil
}

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	users   *mocks.MockUserRepositoryInterface
	set     *repository.BranchSet
	issuer  *recordingIssuer
	service *service.AuthService
}

// SetupTest sets up the test suite
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.users = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.set = &repository.BranchSet{Users: suite.users}
	suite.issuer = &recordingIssuer{token: "signed-token"}
	suite.service = service.NewAuthService(suite.issuer, validator.New())
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) TestLoginSuccess() {
	user := testutils.NewUserFactory().WithEmail("clerk@shop.test")
	suite.users.EXPECT().GetByEmail("clerk@shop.test").Return(user, nil)

	resp, err := suite.service.Login(suite.set, "downtown", &service.LoginRequest{
		Email:    "clerk@shop.test",
		Password: "password123",
	})

	suite.Require().NoError(err)
	suite.Equal("signed-token", resp.AccessToken)
	suite.Equal("bearer", resp.TokenType)
	suite.Equal("downtown", resp.BranchID)
	suite.Equal("downtown", suite.issuer.branchID)
	suite.Equal("clerk@shop.test", resp.Profile.Email)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	suite.users.EXPECT().GetByEmail("ghost@shop.test").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Login(suite.set, "downtown", &service.LoginRequest{
		Email:    "ghost@shop.test",
		Password: "password123",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	user := testutils.NewUserFactory().WithEmail("clerk@shop.test")
	suite.users.EXPECT().GetByEmail("clerk@shop.test").Return(user, nil)

	_, err := suite.service.Login(suite.set, "downtown", &service.LoginRequest{
		Email:    "clerk@shop.test",
		Password: "wrong-password",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginInactiveUser() {
	user := testutils.NewUserFactory().Inactive()
	suite.users.EXPECT().GetByEmail(user.Email).Return(user, nil)

	_, err := suite.service.Login(suite.set, "downtown", &service.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginValidation() {
	_, err := suite.service.Login(suite.set, "downtown", &service.LoginRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	suite.True(apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) TestRegisterUserSuccess() {
	suite.users.EXPECT().GetByEmail("new@shop.test").Return(nil, gorm.ErrRecordNotFound)
	suite.users.EXPECT().Create(gomock.Any()).Return(nil)

	profile, err := suite.service.RegisterUser(suite.set, &service.RegisterUserRequest{
		Email:    "new@shop.test",
		Password: "password123",
	})
	suite.Require().NoError(err)
	suite.Equal("new@shop.test", profile.Email)
	suite.Equal("staff", profile.Role)
}

func (suite *AuthServiceTestSuite) TestRegisterUserDuplicateEmail() {
	existing := testutils.NewUserFactory().WithEmail("taken@shop.test")
	suite.users.EXPECT().GetByEmail("taken@shop.test").Return(existing, nil)

	_, err := suite.service.RegisterUser(suite.set, &service.RegisterUserRequest{
		Email:    "taken@shop.test",
		Password: "password123",
	})
	suite.ErrorIs(err, apperrors.ErrUserExists)
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
