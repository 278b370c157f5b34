package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"courtbook/internal/model"
	"courtbook/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.  The email is normalized to
// lower case so lookups are case-insensitive.
func (r *UserRepo) Create(ctx context.Context, email, password, fullname string, role model.Role, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var id uint64
	err = r.DB.QueryRowContext(ctx,
		"INSERT INTO users (email, password_hash, fullname, role) VALUES ($1,$2,$3,$4) RETURNING id",
		email, hash, fullname, string(role)).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return id, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,fullname,role,created_at FROM users WHERE email=$1 LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,fullname,role,created_at FROM users WHERE id=$1 LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	return u, err
}

// DeleteCascade removes an account and everything hanging off it: the
// user's own bookings, and for owners also their courts plus every
// reservation on those courts.  The whole cascade runs in a single
// transaction; reservation_history is left untouched on purpose, it is
// the immutable audit record.  Returns the deleted account's email, or
// sql.ErrNoRows when the user does not exist.
func (r *UserRepo) DeleteCascade(ctx context.Context, userID uint64) (string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var role model.Role
	if err := tx.QueryRowContext(ctx, "SELECT role FROM users WHERE id=$1", userID).Scan(&role); err != nil {
		return "", err
	}

	// Bookings made by this account as a player.
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE user_id=$1", userID); err != nil {
		return "", err
	}

	if role == model.RoleOwner {
		// Reservations held by other players on this owner's courts go first,
		// then the courts themselves.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM reservations WHERE court_id IN (SELECT id FROM courts WHERE owner_id=$1)", userID); err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM courts WHERE owner_id=$1", userID); err != nil {
			return "", err
		}
	}

	var email string
	if err := tx.QueryRowContext(ctx, "DELETE FROM users WHERE id=$1 RETURNING email", userID).Scan(&email); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return email, nil
}
