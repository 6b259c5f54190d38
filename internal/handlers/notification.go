package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type NotificationHandler struct {
	notificationService NotificationServiceInterface
}

func NewNotificationHandler(notificationService NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	notifications, err := h.notificationService.ListForUser(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list notifications")
		return
	}

	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}

	_ = c.JSON(200, resp)
}

func (h *NotificationHandler) UnreadCount(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	count, err := h.notificationService.UnreadCount(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to count notifications")
		return
	}

	_ = c.JSON(200, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkAsRead(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid notification id")
		return
	}

	err = h.notificationService.MarkAsRead(context.Background(), notificationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.NotFound("notification not found")
			return
		}
		c.InternalServerError("failed to mark notification as read")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.notificationService.MarkAllAsRead(context.Background(), userID); err != nil {
		c.InternalServerError("failed to mark notifications as read")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all notifications marked as read"})
}
