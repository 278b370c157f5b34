// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for court CRUD and the
// public browse queries. Owner scoping is enforced in SQL: every
// owner-side statement filters on owner_id, so a court that exists but
// belongs to someone else is indistinguishable from one that does not
// exist.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"courtbook/internal/model"
)

// ErrCourtNotFound is returned when a court cannot be found, or when it
// exists but is not owned by (or not visible to) the caller.
var ErrCourtNotFound = errors.New("court not found")

// ErrDuplicateCourtName is returned when an insert or update collides
// with the (owner_id, name) uniqueness constraint.
var ErrDuplicateCourtName = errors.New("owner already has a court with this name")

// ErrCourtHasReservations is returned when a court cannot be deleted
// because confirmed reservations still reference it.
var ErrCourtHasReservations = errors.New("court has active reservations")

// CourtRepo encapsulates all database queries related to courts.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo constructs a CourtRepo with the provided DB handle.
func NewCourtRepo(db *sql.DB) *CourtRepo {
	return &CourtRepo{db: db}
}

const courtColumns = "id, owner_id, name, location, capacity, description, price_per_hour, sport, status, created_at, updated_at"

func scanCourt(row interface{ Scan(...any) error }) (*model.Court, error) {
	var c model.Court
	var capacity sql.NullInt64
	var description, sport sql.NullString
	var price sql.NullFloat64
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Location, &capacity, &description, &price, &sport, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if capacity.Valid {
		v := uint32(capacity.Int64)
		c.Capacity = &v
	}
	if description.Valid {
		v := description.String
		c.Description = &v
	}
	if price.Valid {
		v := price.Float64
		c.PricePerHour = &v
	}
	if sport.Valid {
		v := sport.String
		c.Sport = &v
	}
	return &c, nil
}

// Create inserts a new court.  On success the ID, status and timestamp
// fields of the passed court are populated from the database defaults.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	const q = `INSERT INTO courts (owner_id, name, location, capacity, description, price_per_hour, sport)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)
	           RETURNING id, status, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, q,
		c.OwnerID, c.Name, c.Location, nullableUint32(c.Capacity), nullableString(c.Description),
		nullableFloat(c.PricePerHour), nullableString(c.Sport),
	).Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "unique_court_name_per_owner" {
			return ErrDuplicateCourtName
		}
		return err
	}
	return nil
}

// ListByOwner returns all courts for a specific owner, newest first.
func (r *CourtRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDAndOwner fetches a court by id but only if it belongs to the
// specified owner.  If the court doesn't exist or is owned by someone
// else, ErrCourtNotFound is returned.
func (r *CourtRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts WHERE id = $1 AND owner_id = $2`
	c, err := scanCourt(r.db.QueryRowContext(ctx, q, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return c, nil
}

// Update replaces the mutable fields of an owner's court.  It returns
// ErrCourtNotFound when the court does not exist under this owner and
// ErrDuplicateCourtName when the new name collides with another of the
// owner's courts.  On success the court's UpdatedAt is refreshed.
func (r *CourtRepo) Update(ctx context.Context, c *model.Court) error {
	const q = `UPDATE courts
	           SET name = $1, location = $2, capacity = $3, description = $4,
	               price_per_hour = $5, sport = $6, status = $7, updated_at = NOW()
	           WHERE id = $8 AND owner_id = $9
	           RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, q,
		c.Name, c.Location, nullableUint32(c.Capacity), nullableString(c.Description),
		nullableFloat(c.PricePerHour), nullableString(c.Sport), string(c.Status),
		c.ID, c.OwnerID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCourtNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "unique_court_name_per_owner" {
			return ErrDuplicateCourtName
		}
		return err
	}
	return nil
}

// Delete removes an owner's court.  Courts still referenced by live
// reservations cannot be deleted; the foreign key violation is mapped
// to ErrCourtHasReservations.  Reservations are only purged by full
// account deletion, never by a bare court delete.
func (r *CourtRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM courts WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrCourtHasReservations
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCourtNotFound
	}
	return nil
}

// ListActive returns every active court for the public browse listing.
func (r *CourtRepo) ListActive(ctx context.Context) ([]*model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts WHERE status = 'active' ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetActiveByID fetches a single active court for public display.
// Inactive and maintenance courts answer ErrCourtNotFound.
func (r *CourtRepo) GetActiveByID(ctx context.Context, id uint64) (*model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts WHERE id = $1 AND status = 'active'`
	c, err := scanCourt(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return c, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableUint32(n *uint32) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
