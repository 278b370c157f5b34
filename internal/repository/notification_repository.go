package repository

import (
	"context"
	"database/sql"

	"courtbook/internal/model"
)

// NotificationRepo stores system-generated messages to users.  Rows are
// created only by the application itself (owner-initiated cancellations
// today); users may list, mark read and delete their own rows and
// nothing else.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo returns a NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts a notification for a user.  Callers on the cancel path
// treat a failure here as best-effort: it is logged and swallowed,
// never propagated into the primary operation's result.
func (r *NotificationRepo) Create(ctx context.Context, userID uint64, typ model.NotificationType, title, message string, reservationID *uint64) error {
	const q = `INSERT INTO notifications (user_id, reservation_id, type, title, message)
	           VALUES ($1, $2, $3, $4, $5)`
	var resID any
	if reservationID != nil {
		resID = *reservationID
	}
	_, err := r.db.ExecContext(ctx, q, userID, resID, string(typ), title, message)
	return err
}

// ListByUser returns all of a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	const q = `SELECT id, user_id, reservation_id, type, title, message, is_read, created_at
	           FROM notifications
	           WHERE user_id = $1
	           ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var resID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.UserID, &resID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if resID.Valid {
			v := uint64(resID.Int64)
			n.ReservationID = &v
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE",
		userID).Scan(&count)
	return count, err
}

// MarkRead flags a single notification as read.  sql.ErrNoRows is
// returned when the notification does not exist or belongs to another
// user.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE", userID)
	return err
}

// Delete removes one of the user's own notifications.  sql.ErrNoRows is
// returned when nothing matched.
func (r *NotificationRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
