// internal/services/admin_service.go
package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/models"
	"github.com/luxshop/backend/internal/utils"
)

// AdminService backs the admin panel: dashboard aggregates, user and
// coupon listings, and the activity log.
type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalUsers      int64          `json:"total_users"`
	TotalProducts   int64          `json:"total_products"`
	TotalOrders     int64          `json:"total_orders"`
	PendingOrders   int64          `json:"pending_orders"`
	ApprovedOrders  int64          `json:"approved_orders"`
	DeliveredOrders int64          `json:"delivered_orders"`
	RejectedOrders  int64          `json:"rejected_orders"`
	TotalRevenue    int64          `json:"total_revenue"`
	RecentOrders    []models.Order `json:"recent_orders"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats recomputes every aggregate from the live tables on
// each call rather than maintaining counters.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	statusCounts := []struct {
		status models.OrderStatus
		dest   *int64
	}{
		{models.OrderStatusPending, &stats.PendingOrders},
		{models.OrderStatusApproved, &stats.ApprovedOrders},
		{models.OrderStatusDelivered, &stats.DeliveredOrders},
		{models.OrderStatusRejected, &stats.RejectedOrders},
	}
	for _, sc := range statusCounts {
		if err := s.db.Model(&models.Order{}).
			Where("status = ?", sc.status).
			Count(sc.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s orders: %w", sc.status, err)
		}
	}

	// Revenue counts accepted money only: approved plus delivered.
	// Pending is not yet earned and rejected never was.
	err := s.db.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{models.OrderStatusApproved, models.OrderStatusDelivered}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	err = s.db.Preload("User").Preload("Product").
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentOrders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	return stats, nil
}

func (s *AdminService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	query = utils.ApplySort(query, params, []string{"created_at", "username", "email", "balance"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) ListCoupons(params utils.PaginationParams) ([]models.Coupon, int64, error) {
	query := s.db.Model(&models.Coupon{})

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(code) LIKE ?", term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	var coupons []models.Coupon
	query = utils.ApplySort(query, params, []string{"created_at", "code", "expires_at", "used_count"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&coupons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}

	return coupons, total, nil
}

func (s *AdminService) ListLogs(params utils.PaginationParams) ([]models.ActivityLog, int64, error) {
	query := s.db.Model(&models.ActivityLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	var logs []models.ActivityLog
	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}

	return logs, total, nil
}
