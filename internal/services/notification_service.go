// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/models"
)

// NotificationService writes user notifications and the append-only
// activity log. Writers inside a transaction use the Tx variants so the
// rows commit or roll back with the rest of the operation.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(userID int64, message string) error {
	return s.NotifyTx(s.db, userID, message)
}

func (s *NotificationService) NotifyTx(tx *gorm.DB, userID int64, message string) error {
	notification := models.Notification{
		UserID:  userID,
		Message: message,
		Read:    false,
	}
	if err := tx.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *NotificationService) LogAction(userID int64, action string) error {
	return s.LogActionTx(s.db, userID, action)
}

func (s *NotificationService) LogActionTx(tx *gorm.DB, userID int64, action string) error {
	entry := models.ActivityLog{
		UserID: userID,
		Action: action,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

func (s *NotificationService) ListForUser(userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips a single notification owned by userID. A notification
// belonging to someone else is reported as not found, not forbidden.
func (s *NotificationService) MarkRead(userID, notificationID int64) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to load notification: %w", err)
	}

	if !notification.Read {
		notification.Read = true
		if err := s.db.Model(&notification).Update("read", true).Error; err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
	}
	return &notification, nil
}

func (s *NotificationService) UnreadCount(userID int64) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}
