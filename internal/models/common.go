// internal/models/common.go
package models

import (
	"time"
)

// BaseModel carries the fields shared by every record. IDs are integer
// autoincrements so they line up with the ids used in the seed documents.
type BaseModel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusRejected  OrderStatus = "rejected"
)

// CanTransitionTo reports whether an order may move from s to next.
// pending may become approved or rejected, approved may become delivered.
// delivered and rejected are terminal; nothing re-enters pending.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusApproved || next == OrderStatusRejected
	case OrderStatusApproved:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// Terminal reports whether no further transition is accepted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusRejected
}
