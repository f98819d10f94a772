// internal/models/notification.go
package models

type Notification struct {
	BaseModel
	UserID  int64  `json:"user_id" gorm:"not null;index"`
	Message string `json:"message" gorm:"type:text;not null"`
	Read    bool   `json:"read" gorm:"not null;default:false"`
}

// ActivityLog is an append-only record of user-visible actions. Rows are
// created by system events and never mutated.
type ActivityLog struct {
	BaseModel
	UserID int64  `json:"user_id" gorm:"not null;index"`
	Action string `json:"action" gorm:"size:500;not null"`
}
