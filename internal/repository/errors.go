// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. Note
// that ownership failures are deliberately reported as sql.ErrNoRows
// by the individual repositories: the API answers 404 rather than 403
// when a caller lacks rights over a resource, so nothing above the
// repository ever needs to know whether the row existed at all.
package repository

import "errors"

// ErrTimeSlotTaken is returned when a booking loses the overlap race:
// the exclusion constraint on reservations rejected the insert because
// another confirmed reservation occupies part of the requested
// interval. Handlers translate this into HTTP 409.
var ErrTimeSlotTaken = errors.New("time slot already booked for this court")

// ErrAlreadyPaid is returned when a payment is attempted on a
// reservation whose payment_status is already paid. Handlers
// translate this into HTTP 400.
var ErrAlreadyPaid = errors.New("reservation already paid")
