package model

import "time"

// NotificationType classifies system-generated messages to users.
type NotificationType string

const (
	NotificationReservationCancelled NotificationType = "reservation_cancelled"
	NotificationReservationModified  NotificationType = "reservation_modified"
	NotificationGeneral              NotificationType = "general"
)

// Notification is a best-effort message created by the system for a
// single user.  Users may mark their own notifications read or
// delete them; no user can see another user's notifications.
type Notification struct {
	ID            uint64           // notifications.id
	UserID        uint64           // notifications.user_id
	ReservationID *uint64          // notifications.reservation_id (nullable)
	Type          NotificationType // notifications.type
	Title         string           // notifications.title
	Message       string           // notifications.message
	IsRead        bool             // notifications.is_read
	CreatedAt     time.Time        // notifications.created_at
}
