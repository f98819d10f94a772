// internal/models/order.go
package models

import (
	"time"
)

type Order struct {
	BaseModel
	UserID          int64       `json:"user_id" gorm:"not null;index"`
	ProductID       int64       `json:"product_id" gorm:"not null;index"`
	Quantity        int         `json:"quantity" gorm:"not null;default:1"`
	TotalPrice      int64       `json:"total_price" gorm:"not null"`
	CouponID        *int64      `json:"coupon_id,omitempty" gorm:"index"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason string      `json:"rejection_reason,omitempty" gorm:"type:text"`
	Version         int64       `json:"-" gorm:"not null;default:0"`

	// Relationships
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Coupon  *Coupon  `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
}

type Coupon struct {
	BaseModel
	Code      string    `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Discount  int       `json:"discount" gorm:"not null"` // percent off
	ExpiresAt time.Time `json:"expires_at"`
	MaxUses   int64     `json:"max_uses" gorm:"not null;default:0"`
	UsedCount int64     `json:"used_count" gorm:"not null;default:0"`
}

// Usable reports whether the coupon may still be redeemed at time now.
func (c *Coupon) Usable(now time.Time) bool {
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return false
	}
	return c.MaxUses == 0 || c.UsedCount < c.MaxUses
}

// Apply returns price with the coupon discount applied, never below zero.
func (c *Coupon) Apply(price int64) int64 {
	discounted := price - price*int64(c.Discount)/100
	if discounted < 0 {
		return 0
	}
	return discounted
}
