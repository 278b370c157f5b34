package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalAmount(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	price := 20.0

	tests := []struct {
		name  string
		price *float64
		start time.Time
		end   time.Time
		want  float64
	}{
		{"one hour", &price, base, base.Add(time.Hour), 20},
		{"ninety minutes", &price, base, base.Add(90 * time.Minute), 30},
		{"no configured rate", nil, base, base.Add(time.Hour), 0},
		{"empty interval", &price, base, base, 0},
		{"inverted interval", &price, base.Add(time.Hour), base, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalAmount(tt.price, tt.start, tt.end), 1e-9)
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RolePlayer.Valid())
	assert.False(t, Role("admin").Valid())

	assert.True(t, CourtActive.Valid())
	assert.False(t, CourtStatus("closed").Valid())

	assert.True(t, ReservationConfirmed.Valid())
	assert.True(t, ReservationCancelled.Valid())
	assert.True(t, ReservationCompleted.Valid())
	assert.False(t, ReservationStatus("held").Valid())
}
