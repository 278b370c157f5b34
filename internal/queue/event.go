// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCancelledEvent is published when an owner cancels a player's
// reservation. It carries enough context for downstream consumers to log or
// notify without querying the primary database.
type ReservationCancelledEvent struct {
	EventID        string  `json:"event_id"`
	ReservationID  uint64  `json:"reservation_id"`
	CourtID        uint64  `json:"court_id"`
	CourtName      string  `json:"court_name"`
	PlayerID       uint64  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	OwnerID        uint64  `json:"owner_id"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	TotalAmount    float64 `json:"total_amount"`
	CancelledAt    string  `json:"cancelled_at"`
	CancelledBy    string  `json:"cancelled_by"`
}
