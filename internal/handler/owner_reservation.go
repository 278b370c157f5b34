package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"courtbook/internal/middleware"
	"courtbook/internal/model"
	"courtbook/internal/queue"
	"courtbook/internal/repository"
	"courtbook/internal/service"
)

// OwnerReservationHandler serves the owner-side view of reservations on
// the caller's courts, including forced cancellation.
type OwnerReservationHandler struct {
	Reservations  *repository.ReservationRepo
	Notifications *repository.NotificationRepo
}

func NewOwnerReservationHandler(r *repository.ReservationRepo, n *repository.NotificationRepo) *OwnerReservationHandler {
	return &OwnerReservationHandler{Reservations: r, Notifications: n}
}

// List returns every live reservation across the caller's courts,
// including the booking player's identity.
func (h *OwnerReservationHandler) List(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Reservations.ListByOwner(ctx, uid)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Cancel removes a reservation on one of the caller's courts. The
// archive and delete commit first; only then is the player notified, so
// a notification can never describe a cancellation that did not happen.
// Notification and broker publishing are best effort: their failures
// are logged and the cancellation still succeeds.
func (h *OwnerReservationHandler) Cancel(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid reservation id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	snap, err := h.Reservations.CancelByOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "reservation not found")
		}
		return serverError(c, "cancel reservation failed")
	}

	h.notifyPlayer(ctx, snap)

	now := time.Now().UTC()
	event := queue.ReservationCancelledEvent{
		EventID:       uuid.NewString(),
		ReservationID: snap.ReservationID,
		CourtID:       snap.CourtID,
		CourtName:     snap.CourtName,
		PlayerID:      snap.UserID,
		PlayerName:    snap.PlayerName,
		OwnerID:       uid,
		StartTime:     snap.StartTime.Format(time.RFC3339),
		EndTime:       snap.EndTime.Format(time.RFC3339),
		TotalAmount:   snap.TotalAmount,
		CancelledAt:   now.Format(time.RFC3339),
		CancelledBy:   "owner",
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = service.PublishReservationCancelled(pubCtx, event)
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

func (h *OwnerReservationHandler) notifyPlayer(ctx context.Context, snap *repository.CancelledSnapshot) {
	title := "Reservation cancelled"
	msg := fmt.Sprintf("Your reservation at %s on %s was cancelled by the court owner.",
		snap.CourtName, snap.StartTime.Format("2006-01-02 15:04"))
	rid := snap.ReservationID
	if err := h.Notifications.Create(ctx, snap.UserID, model.NotificationReservationCancelled, title, msg, &rid); err != nil {
		log.Printf("owner-cancel: create notification failed: %v", err)
	}
}
