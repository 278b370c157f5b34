package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migrate applies the schema in order.  Every statement is idempotent so
// the function can run on each startup.  The btree_gist extension is
// required by the exclusion constraint on reservations.
func Migrate(db *sql.DB) error {
	migrations := []string{
		createBtreeGistExtension,
		createUsersTable,
		createCourtsTable,
		createReservationsTable,
		createReservationHistoryTable,
		createNotificationsTable,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	log.Println("database migrations completed")
	return nil
}

const createBtreeGistExtension = `
CREATE EXTENSION IF NOT EXISTS btree_gist;`

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    fullname VARCHAR(255) NOT NULL DEFAULT '',
    role VARCHAR(10) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CHECK (role IN ('owner', 'player'))
);`

const createCourtsTable = `
CREATE TABLE IF NOT EXISTS courts (
    id BIGSERIAL PRIMARY KEY,
    owner_id BIGINT NOT NULL REFERENCES users(id),
    name VARCHAR(255) NOT NULL,
    location VARCHAR(255) NOT NULL,
    capacity INTEGER,
    description TEXT,
    price_per_hour DECIMAL(10,2),
    sport VARCHAR(100),
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT unique_court_name_per_owner UNIQUE (owner_id, name),
    CHECK (status IN ('active', 'maintenance', 'inactive'))
);`

// The exclusion constraint is the heart of the booking subsystem: for a
// fixed court no two confirmed rows may have overlapping [start, end)
// ranges.  The database evaluates it at commit time, so two concurrent
// inserts for overlapping slots can never both succeed; the loser fails
// with SQLSTATE 23P01.
const createReservationsTable = `
CREATE TABLE IF NOT EXISTS reservations (
    id BIGSERIAL PRIMARY KEY,
    court_id BIGINT NOT NULL REFERENCES courts(id),
    user_id BIGINT NOT NULL REFERENCES users(id),
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
    payment_status VARCHAR(10) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CHECK (start_time < end_time),
    CHECK (status IN ('confirmed', 'cancelled', 'completed')),
    CHECK (payment_status IN ('pending', 'paid')),
    CONSTRAINT no_overlapping_reservations EXCLUDE USING gist (
        court_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    )
);`

const createReservationHistoryTable = `
CREATE TABLE IF NOT EXISTS reservation_history (
    id BIGSERIAL PRIMARY KEY,
    reservation_id BIGINT NOT NULL,
    court_id BIGINT NOT NULL,
    user_id BIGINT NOT NULL,
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    status VARCHAR(20) NOT NULL,
    payment_status VARCHAR(10) NOT NULL,
    total_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
    completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CHECK (status IN ('cancelled', 'completed'))
);`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    reservation_id BIGINT,
    type VARCHAR(30) NOT NULL DEFAULT 'general',
    title VARCHAR(255) NOT NULL,
    message TEXT NOT NULL,
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CHECK (type IN ('reservation_cancelled', 'reservation_modified', 'general'))
);`
