package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"courtbook/internal/model"
)

// ReportRepo runs aggregate queries over reservation_history for court
// owners.  The archive is append-only, so every query here is a pure
// read with no invariants beyond read consistency.  Revenue figures
// count paid reservations only.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo returns a ReportRepo bound to the given database.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// Summary aggregates an owner's entire archive.
type Summary struct {
	TotalCourts           int64   `json:"total_courts"`
	TotalReservations     int64   `json:"total_reservations"`
	CompletedReservations int64   `json:"completed_reservations"`
	CancelledReservations int64   `json:"cancelled_reservations"`
	TotalRevenue          float64 `json:"total_revenue"`
	AvgReservationAmount  float64 `json:"avg_reservation_amount"`
}

// CourtReport is the per-court breakdown of an owner's archive.
type CourtReport struct {
	CourtID               uint64     `json:"court_id"`
	CourtName             string     `json:"court_name"`
	CourtLocation         string     `json:"court_location"`
	TotalReservations     int64      `json:"total_reservations"`
	CompletedReservations int64      `json:"completed_reservations"`
	CancelledReservations int64      `json:"cancelled_reservations"`
	TotalRevenue          float64    `json:"total_revenue"`
	AvgReservationAmount  float64    `json:"avg_reservation_amount"`
	FirstReservationDate  *time.Time `json:"first_reservation_date"`
	LastReservationDate   *time.Time `json:"last_reservation_date"`
}

// MonthlyRevenue is one month's bucket in the revenue-by-month report.
type MonthlyRevenue struct {
	Month                 string  `json:"month"`
	TotalReservations     int64   `json:"total_reservations"`
	CompletedReservations int64   `json:"completed_reservations"`
	Revenue               float64 `json:"revenue"`
}

// HistoryEntry is one archived reservation with its denormalized court
// and player context.
type HistoryEntry struct {
	ID            uint64                  `json:"id"`
	ReservationID uint64                  `json:"reservation_id"`
	CourtID       uint64                  `json:"court_id"`
	CourtName     string                  `json:"court_name"`
	CourtLocation string                  `json:"court_location"`
	UserID        uint64                  `json:"user_id"`
	UserFullName  string                  `json:"user_fullname"`
	UserEmail     string                  `json:"user_email"`
	StartTime     time.Time               `json:"start_time"`
	EndTime       time.Time               `json:"end_time"`
	Status        model.ReservationStatus `json:"status"`
	PaymentStatus model.PaymentStatus     `json:"payment_status"`
	TotalAmount   float64                 `json:"total_amount"`
	CompletedAt   time.Time               `json:"completed_at"`
}

// HistoryFilter narrows the archive listing.  Zero values mean "no
// filter"; Limit defaults to 100 at the handler.
type HistoryFilter struct {
	CourtID   uint64
	Status    model.ReservationStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// HistoryPage is a filtered slice of the archive plus the unfiltered
// page metadata.
type HistoryPage struct {
	Data   []HistoryEntry `json:"data"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TopCustomer aggregates one player's activity across an owner's courts.
type TopCustomer struct {
	UserID                uint64     `json:"user_id"`
	FullName              string     `json:"fullname"`
	Email                 string     `json:"email"`
	TotalReservations     int64      `json:"total_reservations"`
	CompletedReservations int64      `json:"completed_reservations"`
	TotalSpent            float64    `json:"total_spent"`
	LastReservationDate   *time.Time `json:"last_reservation_date"`
}

// GetSummary returns overall archive statistics for the owner.
func (r *ReportRepo) GetSummary(ctx context.Context, ownerID uint64) (*Summary, error) {
	const q = `SELECT
	               COUNT(DISTINCT rh.court_id),
	               COUNT(*),
	               COUNT(*) FILTER (WHERE rh.status = 'completed'),
	               COUNT(*) FILTER (WHERE rh.status = 'cancelled'),
	               COALESCE(SUM(rh.total_amount) FILTER (WHERE rh.payment_status = 'paid'), 0),
	               COALESCE(AVG(rh.total_amount) FILTER (WHERE rh.payment_status = 'paid'), 0)
	           FROM reservation_history rh
	           JOIN courts c ON c.id = rh.court_id
	           WHERE c.owner_id = $1`
	var s Summary
	err := r.db.QueryRowContext(ctx, q, ownerID).Scan(
		&s.TotalCourts, &s.TotalReservations, &s.CompletedReservations,
		&s.CancelledReservations, &s.TotalRevenue, &s.AvgReservationAmount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByCourt returns per-court archive statistics for every court the
// owner has, including courts with no history yet, ordered by revenue.
func (r *ReportRepo) GetByCourt(ctx context.Context, ownerID uint64) ([]CourtReport, error) {
	const q = `SELECT
	               c.id, c.name, c.location,
	               COUNT(rh.id),
	               COUNT(rh.id) FILTER (WHERE rh.status = 'completed'),
	               COUNT(rh.id) FILTER (WHERE rh.status = 'cancelled'),
	               COALESCE(SUM(rh.total_amount) FILTER (WHERE rh.payment_status = 'paid'), 0),
	               COALESCE(AVG(rh.total_amount) FILTER (WHERE rh.payment_status = 'paid'), 0),
	               MIN(rh.completed_at),
	               MAX(rh.completed_at)
	           FROM courts c
	           LEFT JOIN reservation_history rh ON rh.court_id = c.id
	           WHERE c.owner_id = $1
	           GROUP BY c.id, c.name, c.location
	           ORDER BY 7 DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CourtReport, 0)
	for rows.Next() {
		var cr CourtReport
		var first, last sql.NullTime
		if err := rows.Scan(&cr.CourtID, &cr.CourtName, &cr.CourtLocation,
			&cr.TotalReservations, &cr.CompletedReservations, &cr.CancelledReservations,
			&cr.TotalRevenue, &cr.AvgReservationAmount, &first, &last); err != nil {
			return nil, err
		}
		if first.Valid {
			cr.FirstReservationDate = &first.Time
		}
		if last.Valid {
			cr.LastReservationDate = &last.Time
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRevenueByMonth buckets the owner's archive into calendar months
// over the trailing window, newest month first.
func (r *ReportRepo) GetRevenueByMonth(ctx context.Context, ownerID uint64, months int) ([]MonthlyRevenue, error) {
	const q = `SELECT
	               TO_CHAR(rh.completed_at, 'YYYY-MM'),
	               COUNT(*),
	               COUNT(*) FILTER (WHERE rh.status = 'completed'),
	               COALESCE(SUM(rh.total_amount) FILTER (WHERE rh.payment_status = 'paid'), 0)
	           FROM reservation_history rh
	           JOIN courts c ON c.id = rh.court_id
	           WHERE c.owner_id = $1
	             AND rh.completed_at >= CURRENT_DATE - INTERVAL '1 month' * $2
	           GROUP BY TO_CHAR(rh.completed_at, 'YYYY-MM')
	           ORDER BY 1 DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MonthlyRevenue, 0)
	for rows.Next() {
		var mr MonthlyRevenue
		if err := rows.Scan(&mr.Month, &mr.TotalReservations, &mr.CompletedReservations, &mr.Revenue); err != nil {
			return nil, err
		}
		out = append(out, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetHistory returns a filtered, paginated slice of the owner's archive
// together with the total match count.
func (r *ReportRepo) GetHistory(ctx context.Context, ownerID uint64, f HistoryFilter) (*HistoryPage, error) {
	base := `FROM reservation_history rh
	         JOIN courts c ON c.id = rh.court_id
	         JOIN users u ON u.id = rh.user_id
	         WHERE c.owner_id = $1`
	args := []any{ownerID}

	if f.CourtID != 0 {
		args = append(args, f.CourtID)
		base += " AND rh.court_id = $" + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		base += " AND rh.status = $" + strconv.Itoa(len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		base += " AND rh.start_time >= $" + strconv.Itoa(len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		base += " AND rh.end_time <= $" + strconv.Itoa(len(args))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) "+base, args...).Scan(&total); err != nil {
		return nil, err
	}

	sel := `SELECT rh.id, rh.reservation_id, rh.court_id, c.name, c.location,
	               rh.user_id, u.fullname, u.email,
	               rh.start_time, rh.end_time, rh.status, rh.payment_status,
	               rh.total_amount, rh.completed_at ` + base
	args = append(args, f.Limit)
	sel += " ORDER BY rh.completed_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, f.Offset)
	sel += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, sel, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &HistoryPage{Data: make([]HistoryEntry, 0), Total: total, Limit: f.Limit, Offset: f.Offset}
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.CourtID, &e.CourtName, &e.CourtLocation,
			&e.UserID, &e.UserFullName, &e.UserEmail,
			&e.StartTime, &e.EndTime, &e.Status, &e.PaymentStatus,
			&e.TotalAmount, &e.CompletedAt); err != nil {
			return nil, err
		}
		page.Data = append(page.Data, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

// GetTopCustomers returns the owner's most frequent players, ordered by
// reservation count.
func (r *ReportRepo) GetTopCustomers(ctx context.Context, ownerID uint64, limit int) ([]TopCustomer, error) {
	const q = `SELECT
	               u.id, u.fullname, u.email,
	               COUNT(*),
	               COUNT(*) FILTER (WHERE rh.status = 'completed'),
	               COALESCE(SUM(rh.total_amount) FILTER (WHERE rh.payment_status = 'paid'), 0),
	               MAX(rh.completed_at)
	           FROM reservation_history rh
	           JOIN courts c ON c.id = rh.court_id
	           JOIN users u ON u.id = rh.user_id
	           WHERE c.owner_id = $1
	           GROUP BY u.id, u.fullname, u.email
	           ORDER BY 4 DESC
	           LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopCustomer, 0)
	for rows.Next() {
		var tc TopCustomer
		var last sql.NullTime
		if err := rows.Scan(&tc.UserID, &tc.FullName, &tc.Email,
			&tc.TotalReservations, &tc.CompletedReservations, &tc.TotalSpent, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			tc.LastReservationDate = &last.Time
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
