// internal/services/testutil_test.go
package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/luxshop/backend/internal/config"
	"github.com/luxshop/backend/internal/models"
	"github.com/luxshop/backend/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// An in-memory sqlite database exists per connection; keep the pool
	// at one so every query sees the same data.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Coupon{},
		&models.Order{},
		&models.Notification{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  24,
			RefreshTokenTTL: 168,
		},
		Shop: config.ShopConfig{
			DecrementStock: false,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return cfg
}

func createTestUser(t *testing.T, db *gorm.DB, username string, balance int64) *models.User {
	t.Helper()

	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		FullName: "Test User",
		Role:     models.RoleUser,
		Balance:  balance,
	}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	admin := &models.User{
		Email:    "admin@example.com",
		Username: "admin",
		FullName: "Shop Admin",
		Role:     models.RoleAdmin,
	}
	if err := admin.SetPassword("secret123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price, stock int64) *models.Product {
	t.Helper()

	var category models.Category
	if err := db.Where("id = ?", 1).
		Attrs(models.Category{Name: "Coins"}).
		FirstOrCreate(&category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Stock:       stock,
		CategoryID:  1,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}
