package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"courtbook/internal/model"
)

// ReservationRepo provides the live booking ledger: creation under the
// overlap constraint, payment transitions, and the cancel paths that
// move rows into reservation_history.  All coordination happens in the
// database, never in process, so the service can run as multiple
// concurrent instances.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// PlayerReservation is a reservation joined with its court details, as
// shown to the booking player.
type PlayerReservation struct {
	ID            uint64                  `json:"id"`
	CourtID       uint64                  `json:"court_id"`
	CourtName     string                  `json:"court_name"`
	CourtLocation string                  `json:"court_location"`
	PricePerHour  *float64                `json:"price_per_hour,omitempty"`
	StartTime     time.Time               `json:"start_time"`
	EndTime       time.Time               `json:"end_time"`
	Status        model.ReservationStatus `json:"status"`
	PaymentStatus model.PaymentStatus     `json:"payment_status"`
	CreatedAt     time.Time               `json:"created_at"`
}

// OwnerReservation extends PlayerReservation with the booking player's
// identity; it is only ever shown to the court's owner.
type OwnerReservation struct {
	PlayerReservation
	UserID      uint64 `json:"user_id"`
	PlayerName  string `json:"user_fullname"`
	PlayerEmail string `json:"user_email"`
}

// CancelledSnapshot carries the denormalized data read before an
// owner-cancel deletion commits.  The notification message needs the
// court name and start time after the row itself is gone.
type CancelledSnapshot struct {
	ReservationID uint64
	CourtID       uint64
	UserID        uint64
	CourtName     string
	PlayerName    string
	StartTime     time.Time
	EndTime       time.Time
	TotalAmount   float64
}

// Create attempts to insert a confirmed reservation.  The court must
// exist (any status: existence check only at booking).  The overlap
// invariant is enforced by the exclusion constraint as an atomic
// check-and-insert; an overlap loss surfaces as ErrTimeSlotTaken.  On
// success the record's generated fields are populated.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM courts WHERE id = $1)", res.CourtID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrCourtNotFound
	}

	const q = `INSERT INTO reservations (court_id, user_id, start_time, end_time)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, status, payment_status, created_at`
	err := r.db.QueryRowContext(ctx, q, res.CourtID, res.UserID, res.StartTime, res.EndTime).
		Scan(&res.ID, &res.Status, &res.PaymentStatus, &res.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23P01": // exclusion_violation: another booking holds part of this interval
				return ErrTimeSlotTaken
			case "23503": // the court was deleted between the check and the insert
				return ErrCourtNotFound
			}
		}
		return err
	}
	return nil
}

// ListByPlayer returns the caller's live reservations with court
// details, most recent start first.
func (r *ReservationRepo) ListByPlayer(ctx context.Context, userID uint64) ([]PlayerReservation, error) {
	const q = `SELECT r.id, r.court_id, c.name, c.location, c.price_per_hour,
	                  r.start_time, r.end_time, r.status, r.payment_status, r.created_at
	           FROM reservations r
	           JOIN courts c ON c.id = r.court_id
	           WHERE r.user_id = $1
	           ORDER BY r.start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PlayerReservation, 0)
	for rows.Next() {
		var pr PlayerReservation
		var price sql.NullFloat64
		if err := rows.Scan(&pr.ID, &pr.CourtID, &pr.CourtName, &pr.CourtLocation, &price,
			&pr.StartTime, &pr.EndTime, &pr.Status, &pr.PaymentStatus, &pr.CreatedAt); err != nil {
			return nil, err
		}
		if price.Valid {
			v := price.Float64
			pr.PricePerHour = &v
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOwner returns every live reservation on the owner's courts,
// including the booking player's name and email.
func (r *ReservationRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]OwnerReservation, error) {
	const q = `SELECT r.id, r.court_id, c.name, c.location, c.price_per_hour,
	                  r.start_time, r.end_time, r.status, r.payment_status, r.created_at,
	                  r.user_id, u.fullname, u.email
	           FROM reservations r
	           JOIN courts c ON c.id = r.court_id
	           JOIN users u ON u.id = r.user_id
	           WHERE c.owner_id = $1
	           ORDER BY r.start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OwnerReservation, 0)
	for rows.Next() {
		var or OwnerReservation
		var price sql.NullFloat64
		if err := rows.Scan(&or.ID, &or.CourtID, &or.CourtName, &or.CourtLocation, &price,
			&or.StartTime, &or.EndTime, &or.Status, &or.PaymentStatus, &or.CreatedAt,
			&or.UserID, &or.PlayerName, &or.PlayerEmail); err != nil {
			return nil, err
		}
		if price.Valid {
			v := price.Float64
			or.PricePerHour = &v
		}
		out = append(out, or)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkPaid transitions a reservation's payment_status from pending to
// paid.  Only the booking player may pay; a reservation that is missing
// or belongs to someone else answers sql.ErrNoRows, and one that is
// already paid answers ErrAlreadyPaid.  The row is locked for the
// duration so a doubled request cannot pay twice.
func (r *ReservationRepo) MarkPaid(ctx context.Context, reservationID, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status model.PaymentStatus
	err = tx.QueryRowContext(ctx,
		"SELECT payment_status FROM reservations WHERE id = $1 AND user_id = $2 FOR UPDATE",
		reservationID, userID).Scan(&status)
	if err != nil {
		return err
	}
	if status == model.PaymentPaid {
		return ErrAlreadyPaid
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET payment_status = 'paid' WHERE id = $1", reservationID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CancelByPlayer removes the caller's own reservation and archives it
// with status cancelled.  Snapshot, history insert and delete commit as
// one transaction.  A reservation the caller does not own answers
// sql.ErrNoRows, never a forbidden error.  Self-initiated cancellation
// produces no notification.
func (r *ReservationRepo) CancelByPlayer(ctx context.Context, reservationID, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `SELECT r.court_id, r.start_time, r.end_time, r.payment_status, c.price_per_hour
	           FROM reservations r
	           JOIN courts c ON c.id = r.court_id
	           WHERE r.id = $1 AND r.user_id = $2
	           FOR UPDATE OF r`
	var courtID uint64
	var start, end time.Time
	var payment model.PaymentStatus
	var price sql.NullFloat64
	if err := tx.QueryRowContext(ctx, q, reservationID, userID).
		Scan(&courtID, &start, &end, &payment, &price); err != nil {
		return err
	}

	if err := archiveTx(ctx, tx, archiveRow{
		ReservationID: reservationID,
		CourtID:       courtID,
		UserID:        userID,
		StartTime:     start,
		EndTime:       end,
		Status:        model.ReservationCancelled,
		PaymentStatus: payment,
		TotalAmount:   model.TotalAmount(floatPtr(price), start, end),
	}); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = $1", reservationID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CancelByOwner removes a reservation on one of the caller's courts and
// archives it with status cancelled.  The full snapshot (court name,
// player name) is read before deletion because the notification sent
// afterwards needs that denormalized data.  Archive and delete commit
// together; the snapshot is returned only once the commit succeeded, so
// a notification can never describe a cancellation that failed.
func (r *ReservationRepo) CancelByOwner(ctx context.Context, reservationID, ownerID uint64) (*CancelledSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `SELECT r.court_id, r.user_id, r.start_time, r.end_time, r.payment_status,
	                  c.name, c.price_per_hour, u.fullname
	           FROM reservations r
	           JOIN courts c ON c.id = r.court_id
	           JOIN users u ON u.id = r.user_id
	           WHERE r.id = $1 AND c.owner_id = $2
	           FOR UPDATE OF r`
	snap := CancelledSnapshot{ReservationID: reservationID}
	var payment model.PaymentStatus
	var price sql.NullFloat64
	if err := tx.QueryRowContext(ctx, q, reservationID, ownerID).Scan(
		&snap.CourtID, &snap.UserID, &snap.StartTime, &snap.EndTime, &payment,
		&snap.CourtName, &price, &snap.PlayerName); err != nil {
		return nil, err
	}
	snap.TotalAmount = model.TotalAmount(floatPtr(price), snap.StartTime, snap.EndTime)

	if err := archiveTx(ctx, tx, archiveRow{
		ReservationID: reservationID,
		CourtID:       snap.CourtID,
		UserID:        snap.UserID,
		StartTime:     snap.StartTime,
		EndTime:       snap.EndTime,
		Status:        model.ReservationCancelled,
		PaymentStatus: payment,
		TotalAmount:   snap.TotalAmount,
	}); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = $1", reservationID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &snap, nil
}

// ArchiveFinished moves every reservation whose end time has passed
// into reservation_history with status completed.  The move is a single
// statement, so a crash mid-sweep never loses or duplicates rows.  It
// returns the number of reservations archived.
func (r *ReservationRepo) ArchiveFinished(ctx context.Context, now time.Time) (int64, error) {
	const q = `WITH finished AS (
	               DELETE FROM reservations r
	               USING courts c
	               WHERE c.id = r.court_id AND r.end_time <= $1
	               RETURNING r.id, r.court_id, r.user_id, r.start_time, r.end_time,
	                         r.payment_status, c.price_per_hour
	           )
	           INSERT INTO reservation_history
	               (reservation_id, court_id, user_id, start_time, end_time,
	                status, payment_status, total_amount, completed_at)
	           SELECT id, court_id, user_id, start_time, end_time,
	                  'completed', payment_status,
	                  COALESCE(price_per_hour, 0) * EXTRACT(EPOCH FROM (end_time - start_time)) / 3600,
	                  $1
	           FROM finished`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// archiveRow is the snapshot written into reservation_history when a
// reservation leaves the ledger.
type archiveRow struct {
	ReservationID uint64
	CourtID       uint64
	UserID        uint64
	StartTime     time.Time
	EndTime       time.Time
	Status        model.ReservationStatus
	PaymentStatus model.PaymentStatus
	TotalAmount   float64
}

func archiveTx(ctx context.Context, tx *sql.Tx, row archiveRow) error {
	const q = `INSERT INTO reservation_history
	               (reservation_id, court_id, user_id, start_time, end_time,
	                status, payment_status, total_amount, completed_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`
	_, err := tx.ExecContext(ctx, q,
		row.ReservationID, row.CourtID, row.UserID, row.StartTime, row.EndTime,
		string(row.Status), string(row.PaymentStatus), row.TotalAmount)
	return err
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}
