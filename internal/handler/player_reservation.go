package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"courtbook/internal/middleware"
	"courtbook/internal/model"
	"courtbook/internal/repository"
	"courtbook/internal/validation"
)

// PlayerReservationHandler serves the player-side booking endpoints.
type PlayerReservationHandler struct {
	Reservations *repository.ReservationRepo
}

func NewPlayerReservationHandler(r *repository.ReservationRepo) *PlayerReservationHandler {
	return &PlayerReservationHandler{Reservations: r}
}

type bookReq struct {
	CourtID   uint64    `json:"court_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

type reservationPart struct {
	ID            uint64    `json:"id"`
	CourtID       uint64    `json:"court_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Book reserves a court for [start_time, end_time). The slot is claimed
// atomically: when two players race for the same window, exactly one
// insert commits and the loser gets a conflict.
func (h *PlayerReservationHandler) Book(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	var req bookReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validation.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	res := &model.Reservation{
		CourtID:       req.CourtID,
		UserID:        uid,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.ReservationConfirmed,
		PaymentStatus: model.PaymentPending,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reservations.Create(ctx, res); err != nil {
		if errors.Is(err, repository.ErrCourtNotFound) {
			return notFound(c, "court not found")
		}
		if errors.Is(err, repository.ErrTimeSlotTaken) {
			return conflict(c, "time slot already booked for this court")
		}
		return serverError(c, "create reservation failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{"reservation": reservationPart{
		ID:            res.ID,
		CourtID:       res.CourtID,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		Status:        string(res.Status),
		PaymentStatus: string(res.PaymentStatus),
		CreatedAt:     res.CreatedAt,
	}})
}

// List returns the caller's live reservations with court details.
func (h *PlayerReservationHandler) List(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Reservations.ListByPlayer(ctx, uid)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Pay marks one of the caller's reservations as paid. Paying twice is
// rejected; payment is a one-way flag, there are no refunds here.
func (h *PlayerReservationHandler) Pay(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid reservation id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reservations.MarkPaid(ctx, id, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "reservation not found")
		}
		if errors.Is(err, repository.ErrAlreadyPaid) {
			return badRequest(c, "reservation already paid")
		}
		return serverError(c, "payment failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment recorded"})
}

// Cancel removes one of the caller's reservations and archives it as
// cancelled. The freed slot is immediately bookable again.
func (h *PlayerReservationHandler) Cancel(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid reservation id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reservations.CancelByPlayer(ctx, id, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "reservation not found")
		}
		return serverError(c, "cancel reservation failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}
