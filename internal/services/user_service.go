// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/models"
	"github.com/luxshop/backend/internal/utils"
)

type UserService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type UpdateProfileRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,username"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Address  string `json:"address" validate:"max=255"`
}

func NewUserService(db *gorm.DB, notifications *NotificationService) *UserService {
	return &UserService{db: db, notifications: notifications}
}

func (s *UserService) GetProfile(userID int64) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// UpdateProfile rewrites the editable identity fields. Uniqueness checks
// exclude the user's own row so resubmitting an unchanged form succeeds.
func (s *UserService) UpdateProfile(userID int64, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", req.Email, userID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", req.Username, userID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND version = ?", user.ID, user.Version).
			Updates(map[string]interface{}{
				"email":     req.Email,
				"username":  req.Username,
				"full_name": req.FullName,
				"address":   req.Address,
				"version":   user.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return s.notifications.LogActionTx(tx, user.ID, "updated profile")
	})
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.Username = req.Username
	user.FullName = req.FullName
	user.Address = req.Address
	user.Version++
	return &user, nil
}
