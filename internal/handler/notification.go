package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	principal := GetPrincipal(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.svc.List(c.Request.Context(), principal.UserID, unreadOnly)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}
	respond(c, http.StatusOK, "Notifications received successfully", responses)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context(), GetPrincipal(c).UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Unread count received", gin.H{"count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), notificationID, GetPrincipal(c).UserID); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.svc.MarkAllRead(c.Request.Context(), GetPrincipal(c).UserID); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "All notifications marked as read", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	notificationID, err := pathID(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), notificationID, GetPrincipal(c).UserID); err != nil {
		writeServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Notification deleted successfully", nil)
}
