package model

import "time"

// CourtStatus is the closed set of court visibility states.  Only
// active courts are listed and bookable publicly; maintenance and
// inactive courts stay visible to their owner.  A status change does
// not touch existing reservations.
type CourtStatus string

const (
	CourtActive      CourtStatus = "active"
	CourtMaintenance CourtStatus = "maintenance"
	CourtInactive    CourtStatus = "inactive"
)

// Valid reports whether s is a known court status.
func (s CourtStatus) Valid() bool {
	return s == CourtActive || s == CourtMaintenance || s == CourtInactive
}

// Court represents a bookable sports court owned by an account
// with the owner role.  The pair (owner_id, name) is unique.
//
// Fields:
//  ID           – primary key identifier.
//  OwnerID      – user ID of the court owner.
//  Name         – unique court name per owner.
//  Location     – human-readable address or venue.
//  Capacity     – optional player capacity.
//  Description  – optional free-form description.
//  PricePerHour – optional hourly rate used for archived totals.
//  Sport        – optional sport discipline label.
//  Status       – active, maintenance or inactive.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Court struct {
	ID           uint64      // courts.id
	OwnerID      uint64      // courts.owner_id
	Name         string      // courts.name
	Location     string      // courts.location
	Capacity     *uint32     // courts.capacity (nullable)
	Description  *string     // courts.description (nullable)
	PricePerHour *float64    // courts.price_per_hour (nullable)
	Sport        *string     // courts.sport (nullable)
	Status       CourtStatus // courts.status
	CreatedAt    time.Time   // courts.created_at
	UpdatedAt    time.Time   // courts.updated_at
}
