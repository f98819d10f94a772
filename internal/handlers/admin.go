// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luxshop/backend/internal/services"
	"github.com/luxshop/backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	orderService *services.OrderService
}

func NewAdminHandler(adminService *services.AdminService, orderService *services.OrderService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		orderService: orderService,
	}
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := c.Query("status")

	orders, total, err := h.orderService.ListOrders(status, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// PUT /admin/orders/:id/approve
func (h *AdminHandler) ApproveOrder(c *gin.Context) {
	adminID, orderID, ok := h.actingAdminAndOrder(c)
	if !ok {
		return
	}

	order, err := h.orderService.Approve(orderID, adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// PUT /admin/orders/:id/reject
func (h *AdminHandler) RejectOrder(c *gin.Context) {
	adminID, orderID, ok := h.actingAdminAndOrder(c)
	if !ok {
		return
	}

	var req services.RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.Reject(orderID, adminID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// PUT /admin/orders/:id/deliver
func (h *AdminHandler) DeliverOrder(c *gin.Context) {
	adminID, orderID, ok := h.actingAdminAndOrder(c)
	if !ok {
		return
	}

	order, err := h.orderService.Deliver(orderID, adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// GET /admin/coupons
func (h *AdminHandler) ListCoupons(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	coupons, total, err := h.adminService.ListCoupons(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(coupons, total, params))
}

// GET /admin/logs
func (h *AdminHandler) ListLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.adminService.ListLogs(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, params))
}

func (h *AdminHandler) actingAdminAndOrder(c *gin.Context) (adminID, orderID int64, ok bool) {
	adminID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return 0, 0, false
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return 0, 0, false
	}

	return adminID, orderID, true
}
