// internal/handlers/auth_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/luxshop/backend/internal/config"
	"github.com/luxshop/backend/internal/models"
	"github.com/luxshop/backend/internal/services"
	"github.com/luxshop/backend/internal/utils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(suite.T(), err)
	sqlDB, err := db.DB()
	require.NoError(suite.T(), err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(suite.T(), db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.ActivityLog{},
	))
	suite.db = db

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "handler-test-secret",
			AccessTokenTTL:  24,
			RefreshTokenTTL: 168,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	notificationService := services.NewNotificationService(db)
	authService := services.NewAuthService(db, cfg, notificationService)
	authHandler := NewAuthHandler(authService)

	suite.router = gin.New()
	auth := suite.router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body map[string]interface{}) *httptest.ResponseRecorder {
	jsonData, err := json.Marshal(body)
	require.NoError(suite.T(), err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonData))
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"email":            "test@example.com",
		"username":         "testuser",
		"password":         "secret123",
		"confirm_password": "secret123",
		"full_name":        "Test User",
	}
}

func (suite *AuthHandlerTestSuite) TestRegister() {
	w := suite.postJSON("/auth/register", registerBody())

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.NotEmpty(suite.T(), data["token"])

	// The session view never includes a password field.
	user := data["user"].(map[string]interface{})
	assert.Equal(suite.T(), "testuser", user["username"])
	_, hasPassword := user["password"]
	assert.False(suite.T(), hasPassword)
	_, hasHash := user["password_hash"]
	assert.False(suite.T(), hasHash)
}

func (suite *AuthHandlerTestSuite) TestRegisterValidationFailure() {
	body := registerBody()
	body["password"] = "abc"
	body["confirm_password"] = "abc"

	w := suite.postJSON("/auth/register", body)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *AuthHandlerTestSuite) TestRegisterDuplicateEmail() {
	w := suite.postJSON("/auth/register", registerBody())
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	body := registerBody()
	body["username"] = "othername"
	w = suite.postJSON("/auth/register", body)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin() {
	w := suite.postJSON("/auth/register", registerBody())
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.postJSON("/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "secret123",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response["success"].(bool))
}

func (suite *AuthHandlerTestSuite) TestLoginBadPassword() {
	w := suite.postJSON("/auth/register", registerBody())
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.postJSON("/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "wrong-password",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
