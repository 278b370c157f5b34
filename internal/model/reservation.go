package model

import "time"

// ReservationStatus is the closed set of reservation states.
// Confirmed rows live in the reservations table; cancelled and
// completed are terminal and exist only in reservation_history.
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	return s == ReservationConfirmed || s == ReservationCancelled || s == ReservationCompleted
}

// PaymentStatus tracks whether a reservation has been paid.  The
// only transition is pending to paid; paying twice is rejected.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Reservation records a player's booking of a court for the half-open
// interval [StartTime, EndTime).  For a fixed court no two rows may
// overlap in time; the database enforces this with an exclusion
// constraint so two concurrent bookings can never both commit.
//
// Fields:
//  ID            – primary key identifier.
//  CourtID       – court being reserved.
//  UserID        – player who made the reservation.
//  StartTime     – start of the booked slot (inclusive).
//  EndTime       – end of the booked slot (exclusive), after StartTime.
//  Status        – always confirmed while the row is live.
//  PaymentStatus – pending until the player pays.
//  CreatedAt     – creation timestamp.
type Reservation struct {
	ID            uint64            // reservations.id
	CourtID       uint64            // reservations.court_id
	UserID        uint64            // reservations.user_id
	StartTime     time.Time         // reservations.start_time
	EndTime       time.Time         // reservations.end_time
	Status        ReservationStatus // reservations.status
	PaymentStatus PaymentStatus     // reservations.payment_status
	CreatedAt     time.Time         // reservations.created_at
}

// TotalAmount derives the archived charge for a reservation from the
// court's hourly rate and the booked duration.  A court without a
// configured rate yields zero.
func TotalAmount(pricePerHour *float64, start, end time.Time) float64 {
	if pricePerHour == nil || !end.After(start) {
		return 0
	}
	return *pricePerHour * end.Sub(start).Hours()
}
