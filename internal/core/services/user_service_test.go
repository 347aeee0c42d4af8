package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	"github.com/citycable/cable_collect_app/internal/core/domain"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/core/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsToSubscriberRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Asha Varma",
		Username: "asha.v",
		Password: "correct-horse-battery",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == req.Username && u.Role == domain.RoleSubscriber && u.IsActive && u.WalletBalance.IsZero()
	}), mock.MatchedBy(func(hash string) bool {
		// The stored hash must verify against the plaintext and never equal it
		return hash != req.Password && utils.CheckPasswordHash(req.Password, hash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleSubscriber, user.Role)
	suite.NotEmpty(user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRoleRejected() {
	_, err := suite.service.CreateUser(context.Background(), dto.CreateUserRequest{
		Name:     "X",
		Username: "x",
		Password: "passwordpass",
		Role:     "SUPERUSER",
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsernamePropagates() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Name:     "Dup",
		Username: "taken",
		Password: "passwordpass",
	})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "s3cret-enough"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "asha.v", Role: domain.RoleSubscriber, IsActive: true}

	suite.mockRepo.On("FindUserByUsername", ctx, "asha.v").Return(user, hash, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "asha.v", password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the-real-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "asha.v", IsActive: true}

	suite.mockRepo.On("FindUserByUsername", ctx, "asha.v").Return(user, hash, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "asha.v", "a-guess")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUserMapsToUnauthorized() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, "", apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveUserRejected() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password-123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "old.sub", IsActive: false}

	suite.mockRepo.On("FindUserByUsername", ctx, "old.sub").Return(user, hash, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "old.sub", "password-123")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SelfCanUpdate() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID, Name: "Old Name", IsActive: true}
	newName := "New Name"

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && u.Name == newName && u.LastUpdatedBy == userID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName}, userID)

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
}

func (suite *UserServiceTestSuite) TestUpdateUser_StrangerForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()
	stranger := &domain.User{UserID: uuid.NewString(), Role: domain.RoleCollector, IsActive: true}
	newName := "Hijacked"

	suite.mockRepo.On("FindUserByID", ctx, stranger.UserID).Return(stranger, nil).Once()

	_, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName}, stranger.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser")
}

func (suite *UserServiceTestSuite) TestClearRefreshToken_BlanksStoredHash() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("UpdateRefreshToken", ctx, userID, "", time.Time{}).Return(nil).Once()

	err := suite.service.ClearRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
