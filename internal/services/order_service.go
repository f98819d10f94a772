// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/config"
	"github.com/luxshop/backend/internal/models"
	"github.com/luxshop/backend/internal/utils"
)

// OrderService owns the purchase flow and the admin approval workflow.
// Every mutation runs inside a transaction so the order, the balance
// movement, the notification, and the activity log commit together.
type OrderService struct {
	db            *gorm.DB
	cfg           *config.Config
	notifications *NotificationService
}

type PlaceOrderRequest struct {
	ProductID  int64  `json:"product_id" validate:"required,gt=0"`
	CouponCode string `json:"coupon_code" validate:"omitempty,max=50"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// PlaceOrderResult carries the created order plus the buyer's balance
// after the deduction, so the client can refresh its session view.
type PlaceOrderResult struct {
	Order   *models.Order `json:"order"`
	Balance int64         `json:"balance"`
}

func NewOrderService(db *gorm.DB, cfg *config.Config, notifications *NotificationService) *OrderService {
	return &OrderService{
		db:            db,
		cfg:           cfg,
		notifications: notifications,
	}
}

// PlaceOrder checks the buyer's balance before the product's stock, and
// both before any write. The order is created pending and the purchase
// amount is deducted immediately; stock is only decremented when the
// shop is configured to do so.
func (s *OrderService) PlaceOrder(buyerID int64, req *PlaceOrderRequest) (*PlaceOrderResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result := &PlaceOrderResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, buyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var product models.Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		price := product.Price
		var coupon *models.Coupon
		if req.CouponCode != "" {
			var c models.Coupon
			if err := tx.Where("code = ?", req.CouponCode).First(&c).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCouponNotUsable
				}
				return fmt.Errorf("database error: %w", err)
			}
			if !c.Usable(time.Now()) {
				return ErrCouponNotUsable
			}
			coupon = &c
			price = c.Apply(price)
		}

		if user.Balance < price {
			return ErrInsufficientBalance
		}
		if !product.InStock() {
			return ErrOutOfStock
		}

		order := &models.Order{
			UserID:     user.ID,
			ProductID:  product.ID,
			Quantity:   1,
			TotalPrice: price,
			Status:     models.OrderStatusPending,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Version-guarded balance deduction; a concurrent spend loses the
		// race and rolls the whole purchase back.
		res := tx.Model(&models.User{}).
			Where("id = ? AND version = ?", user.ID, user.Version).
			Updates(map[string]interface{}{
				"balance": user.Balance - price,
				"version": user.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to deduct balance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if s.cfg.Shop.DecrementStock {
			res = tx.Model(&models.Product{}).
				Where("id = ? AND version = ? AND stock > 0", product.ID, product.Version).
				Updates(map[string]interface{}{
					"stock":   product.Stock - 1,
					"version": product.Version + 1,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrConflict
			}
		}

		if coupon != nil {
			res = tx.Model(&models.Coupon{}).
				Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", coupon.ID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return fmt.Errorf("failed to redeem coupon: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrCouponNotUsable
			}
		}

		message := fmt.Sprintf("Your order #%d for %s has been placed and is awaiting approval", order.ID, product.Name)
		if err := s.notifications.NotifyTx(tx, user.ID, message); err != nil {
			return err
		}
		if err := s.notifications.LogActionTx(tx, user.ID, fmt.Sprintf("placed order #%d for product %q", order.ID, product.Name)); err != nil {
			return err
		}

		order.Product = &product
		result.Order = order
		result.Balance = user.Balance - price
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *OrderService) Approve(orderID, adminID int64) (*models.Order, error) {
	return s.transition(orderID, adminID, models.OrderStatusApproved, "")
}

func (s *OrderService) Reject(orderID, adminID int64, req *RejectOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.transition(orderID, adminID, models.OrderStatusRejected, req.Reason)
}

func (s *OrderService) Deliver(orderID, adminID int64) (*models.Order, error) {
	return s.transition(orderID, adminID, models.OrderStatusDelivered, "")
}

// transition moves an order along pending -> approved -> delivered, or
// pending -> rejected. Delivered and rejected are terminal. The owner is
// notified and the action is logged under the acting admin.
func (s *OrderService) transition(orderID, adminID int64, next models.OrderStatus, reason string) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Product").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !order.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		updates := map[string]interface{}{
			"status":  next,
			"version": order.Version + 1,
		}
		if next == models.OrderStatusRejected && reason != "" {
			updates["rejection_reason"] = reason
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		productName := ""
		if order.Product != nil {
			productName = order.Product.Name
		}

		var message string
		switch next {
		case models.OrderStatusApproved:
			message = fmt.Sprintf("Your order #%d for %s has been approved", order.ID, productName)
		case models.OrderStatusDelivered:
			message = fmt.Sprintf("Your order #%d for %s has been delivered", order.ID, productName)
		case models.OrderStatusRejected:
			message = fmt.Sprintf("Your order #%d for %s has been rejected", order.ID, productName)
			if reason != "" {
				message += fmt.Sprintf(": %s", reason)
			}
		}
		if err := s.notifications.NotifyTx(tx, order.UserID, message); err != nil {
			return err
		}

		action := fmt.Sprintf("%s order #%d", transitionVerb(next), order.ID)
		if err := s.notifications.LogActionTx(tx, adminID, action); err != nil {
			return err
		}

		order.Status = next
		order.Version++
		if next == models.OrderStatusRejected && reason != "" {
			order.RejectionReason = reason
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func transitionVerb(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusApproved:
		return "approved"
	case models.OrderStatusRejected:
		return "rejected"
	case models.OrderStatusDelivered:
		return "delivered"
	default:
		return "updated"
	}
}

func (s *OrderService) GetOrder(orderID int64) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("User").Preload("Product").Preload("Coupon").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// ListOrders returns all orders newest first, optionally filtered by
// status. Admin surface only.
func (s *OrderService) ListOrders(status string, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Preload("User").Preload("Product")

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	query = utils.ApplySort(query, params, []string{"created_at", "status", "total_price"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) ListUserOrders(userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
