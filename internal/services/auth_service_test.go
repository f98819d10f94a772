// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db   *gorm.DB
	auth *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	cfg := testConfig()
	notifications := NewNotificationService(suite.db)
	suite.auth = NewAuthService(suite.db, cfg, notifications)
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:           "new@example.com",
		Username:        "newuser",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "New User",
		Address:         "1 Main St",
	}
}

func (suite *AuthServiceTestSuite) TestRegisterCreatesUserAccount() {
	resp, err := suite.auth.Register(validRegisterRequest())
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "newuser", resp.User.Username)
	assert.Equal(suite.T(), models.RoleUser, resp.User.Role)
	assert.Zero(suite.T(), resp.User.Balance)
	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.NotEmpty(suite.T(), resp.RefreshToken)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)

	// The stored credential is a hash, never the raw password.
	var user models.User
	require.NoError(suite.T(), suite.db.Where("username = ?", "newuser").First(&user).Error)
	assert.NotEqual(suite.T(), "secret123", user.PasswordHash)
	assert.NoError(suite.T(), user.CheckPassword("secret123"))

	var logs []models.ActivityLog
	require.NoError(suite.T(), suite.db.Where("user_id = ?", user.ID).Find(&logs).Error)
	require.Len(suite.T(), logs, 1)
	assert.Contains(suite.T(), logs[0].Action, "registered")
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsShortPassword() {
	req := validRegisterRequest()
	req.Password = "abc"
	req.ConfirmPassword = "abc"

	_, err := suite.auth.Register(req)
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsPasswordMismatch() {
	req := validRegisterRequest()
	req.ConfirmPassword = "different1"

	_, err := suite.auth.Register(req)
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	_, err := suite.auth.Register(validRegisterRequest())
	require.NoError(suite.T(), err)

	req := validRegisterRequest()
	req.Username = "someoneelse"
	_, err = suite.auth.Register(req)
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsDuplicateUsername() {
	_, err := suite.auth.Register(validRegisterRequest())
	require.NoError(suite.T(), err)

	req := validRegisterRequest()
	req.Email = "someoneelse@example.com"
	_, err = suite.auth.Register(req)
	assert.ErrorIs(suite.T(), err, ErrUsernameTaken)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	_, err := suite.auth.Register(validRegisterRequest())
	require.NoError(suite.T(), err)

	resp, err := suite.auth.Login(&LoginRequest{
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "newuser", resp.User.Username)
	assert.NotEmpty(suite.T(), resp.AccessToken)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.auth.Register(validRegisterRequest())
	require.NoError(suite.T(), err)

	_, err = suite.auth.Login(&LoginRequest{
		Email:    "new@example.com",
		Password: "wrongpass",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := suite.auth.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	registered, err := suite.auth.Register(validRegisterRequest())
	require.NoError(suite.T(), err)

	refreshed, err := suite.auth.RefreshToken(registered.RefreshToken)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(suite.T(), refreshed.AccessToken)
}

func (suite *AuthServiceTestSuite) TestRefreshTokenRejectsGarbage() {
	_, err := suite.auth.RefreshToken("not-a-token")
	assert.Error(suite.T(), err)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
