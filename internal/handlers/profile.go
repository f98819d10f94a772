// internal/handlers/profile.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luxshop/backend/internal/services"
	"github.com/luxshop/backend/internal/utils"
)

type ProfileHandler struct {
	userService         *services.UserService
	orderService        *services.OrderService
	notificationService *services.NotificationService
}

func NewProfileHandler(
	userService *services.UserService,
	orderService *services.OrderService,
	notificationService *services.NotificationService,
) *ProfileHandler {
	return &ProfileHandler{
		userService:         userService,
		orderService:        orderService,
		notificationService: notificationService,
	}
}

// GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user.Public(),
	})
}

// PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user.Public(),
	})
}

// GET /profile/orders
func (h *ProfileHandler) ListOrders(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orders, err := h.orderService.ListUserOrders(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// GET /profile/notifications
func (h *ProfileHandler) ListNotifications(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	notifications, err := h.notificationService.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	unread, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// PUT /profile/notifications/:id/read
func (h *ProfileHandler) MarkNotificationRead(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID", nil)
		return
	}

	notification, err := h.notificationService.MarkRead(userID, notificationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"notification": notification,
	})
}
