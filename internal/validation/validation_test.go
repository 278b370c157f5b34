package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerBody struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	FullName string `validate:"required"`
	Role     string `validate:"required,oneof=owner player"`
}

type bookingBody struct {
	CourtID   uint64    `validate:"required"`
	StartTime time.Time `validate:"required"`
	EndTime   time.Time `validate:"required,gtfield=StartTime"`
}

func TestValidateRegister(t *testing.T) {
	base := func() registerBody {
		return registerBody{
			Email:    "ana@example.com",
			Password: "supersecret",
			FullName: "Ana Petrova",
			Role:     "player",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*registerBody)
		wantErr string
	}{
		{name: "valid", mutate: func(*registerBody) {}},
		{
			name:    "missing email",
			mutate:  func(b *registerBody) { b.Email = "" },
			wantErr: "Email: is required",
		},
		{
			name:    "bad email",
			mutate:  func(b *registerBody) { b.Email = "not-an-email" },
			wantErr: "Email: must be a valid email address",
		},
		{
			name:    "short password",
			mutate:  func(b *registerBody) { b.Password = "short" },
			wantErr: "Password: must be at least 8 characters",
		},
		{
			name:    "unknown role",
			mutate:  func(b *registerBody) { b.Role = "admin" },
			wantErr: "Role: must be one of: owner player",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := base()
			tc.mutate(&body)
			err := Validate(&body)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateBooking(t *testing.T) {
	now := time.Now().Truncate(time.Hour)

	t.Run("valid window", func(t *testing.T) {
		err := Validate(&bookingBody{CourtID: 1, StartTime: now, EndTime: now.Add(2 * time.Hour)})
		assert.NoError(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		err := Validate(&bookingBody{CourtID: 1, StartTime: now, EndTime: now.Add(-time.Hour)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EndTime: must be after StartTime")
	})

	t.Run("end equals start", func(t *testing.T) {
		err := Validate(&bookingBody{CourtID: 1, StartTime: now, EndTime: now})
		require.Error(t, err)
	})

	t.Run("missing court", func(t *testing.T) {
		err := Validate(&bookingBody{StartTime: now, EndTime: now.Add(time.Hour)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CourtID: is required")
	})
}

func TestValidateNonStruct(t *testing.T) {
	err := Validate("not a struct")
	assert.Error(t, err)
}
