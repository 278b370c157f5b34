package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"courtbook/internal/middleware"
	"courtbook/internal/model"
	"courtbook/internal/repository"
)

// NotificationHandler serves a user's own notification feed. All
// operations are scoped to the caller; another user's notification id
// reads as not found.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{Notifications: n}
}

type notificationPart struct {
	ID            uint64    `json:"id"`
	ReservationID *uint64   `json:"reservation_id,omitempty"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

func toNotificationPart(n model.Notification) notificationPart {
	return notificationPart{
		ID:            n.ID,
		ReservationID: n.ReservationID,
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Notifications.ListByUser(ctx, uid)
	if err != nil {
		return serverError(c, "query failed")
	}
	out := make([]notificationPart, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationPart(n))
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": out})
}

// UnreadCount returns how many of the caller's notifications are unread.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := h.Notifications.UnreadCount(ctx, uid)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": n})
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid notification id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "notification not found")
		}
		return serverError(c, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification read"})
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Notifications.MarkAllRead(ctx, uid); err != nil {
		return serverError(c, "update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all notifications read"})
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandler) Delete(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid notification id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Notifications.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "notification not found")
		}
		return serverError(c, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification deleted"})
}
