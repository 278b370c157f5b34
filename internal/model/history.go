package model

import "time"

// ReservationHistory is an append-only snapshot taken when a
// reservation leaves the live table, either cancelled or completed.
// Rows are never updated or deleted by the application; reporting
// reads them exclusively.
type ReservationHistory struct {
	ID            uint64            // reservation_history.id
	ReservationID uint64            // reservation_history.reservation_id
	CourtID       uint64            // reservation_history.court_id
	UserID        uint64            // reservation_history.user_id
	StartTime     time.Time         // reservation_history.start_time
	EndTime       time.Time         // reservation_history.end_time
	Status        ReservationStatus // reservation_history.status (cancelled or completed)
	PaymentStatus PaymentStatus     // reservation_history.payment_status
	TotalAmount   float64           // reservation_history.total_amount
	CompletedAt   time.Time         // reservation_history.completed_at
}
