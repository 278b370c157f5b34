package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"courtbook/internal/middleware"
	"courtbook/internal/model"
	"courtbook/internal/repository"
	"courtbook/internal/validation"
)

// OwnerCourtHandler serves the owner-side court CRUD. Every query is
// scoped to the caller's owner id, so a court belonging to someone else
// reads as not found.
type OwnerCourtHandler struct {
	Courts *repository.CourtRepo
}

func NewOwnerCourtHandler(courts *repository.CourtRepo) *OwnerCourtHandler {
	return &OwnerCourtHandler{Courts: courts}
}

// ----- DTOs -----

type courtCreateReq struct {
	Name         string   `json:"name" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Capacity     *uint32  `json:"capacity" validate:"omitempty,gt=0"`
	Description  *string  `json:"description"`
	PricePerHour *float64 `json:"price_per_hour" validate:"omitempty,gt=0"`
	Sport        *string  `json:"sport"`
	Status       string   `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
}

type courtUpdateReq struct {
	Name         *string  `json:"name"`
	Location     *string  `json:"location"`
	Capacity     *uint32  `json:"capacity" validate:"omitempty,gt=0"`
	Description  *string  `json:"description"`
	PricePerHour *float64 `json:"price_per_hour" validate:"omitempty,gt=0"`
	Sport        *string  `json:"sport"`
	Status       *string  `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
}

// ownerCourt is the owner-side projection: unlike the public one it
// carries status and timestamps.
type ownerCourt struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Capacity     *uint32   `json:"capacity,omitempty"`
	Description  *string   `json:"description,omitempty"`
	PricePerHour *float64  `json:"price_per_hour,omitempty"`
	Sport        *string   `json:"sport,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toOwnerCourt(c *model.Court) ownerCourt {
	return ownerCourt{
		ID:           c.ID,
		Name:         c.Name,
		Location:     c.Location,
		Capacity:     c.Capacity,
		Description:  c.Description,
		PricePerHour: c.PricePerHour,
		Sport:        c.Sport,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// Create registers a new court for the caller. Court names are unique
// per owner; a second court with the same name is a client error, not a
// conflict, mirroring how the client form reports it.
func (h *OwnerCourtHandler) Create(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	var req courtCreateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if err := validation.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	status := model.CourtActive
	if req.Status != "" {
		status = model.CourtStatus(req.Status)
	}

	ct := &model.Court{
		OwnerID:      uid,
		Name:         req.Name,
		Location:     req.Location,
		Capacity:     req.Capacity,
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		Sport:        req.Sport,
		Status:       status,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courts.Create(ctx, ct); err != nil {
		if errors.Is(err, repository.ErrDuplicateCourtName) {
			return badRequest(c, "you already have a court with this name")
		}
		return serverError(c, "create court failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"court": toOwnerCourt(ct)})
}

// List returns all of the caller's courts, newest first.
func (h *OwnerCourtHandler) List(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	courts, err := h.Courts.ListByOwner(ctx, uid)
	if err != nil {
		return serverError(c, "query failed")
	}
	out := make([]ownerCourt, 0, len(courts))
	for _, ct := range courts {
		out = append(out, toOwnerCourt(ct))
	}
	return c.JSON(http.StatusOK, echo.Map{"courts": out})
}

// Get returns one of the caller's courts.
func (h *OwnerCourtHandler) Get(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid court id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Courts.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrCourtNotFound) {
			return notFound(c, "court not found")
		}
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"court": toOwnerCourt(ct)})
}

// Update applies the provided fields to one of the caller's courts.
// Omitted fields keep their current values; explicit nulls are not
// distinguished from omissions except for the free-text columns, which
// can be cleared by sending an empty string.
func (h *OwnerCourtHandler) Update(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid court id")
	}

	var req courtUpdateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validation.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Courts.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrCourtNotFound) {
			return notFound(c, "court not found")
		}
		return serverError(c, "query failed")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return badRequest(c, "name must not be empty")
		}
		ct.Name = name
	}
	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if loc == "" {
			return badRequest(c, "location must not be empty")
		}
		ct.Location = loc
	}
	if req.Capacity != nil {
		ct.Capacity = req.Capacity
	}
	if req.Description != nil {
		ct.Description = req.Description
	}
	if req.PricePerHour != nil {
		ct.PricePerHour = req.PricePerHour
	}
	if req.Sport != nil {
		ct.Sport = req.Sport
	}
	if req.Status != nil {
		ct.Status = model.CourtStatus(*req.Status)
	}

	if err := h.Courts.Update(ctx, ct); err != nil {
		if errors.Is(err, repository.ErrDuplicateCourtName) {
			return badRequest(c, "you already have a court with this name")
		}
		if errors.Is(err, repository.ErrCourtNotFound) {
			return notFound(c, "court not found")
		}
		return serverError(c, "update court failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"court": toOwnerCourt(ct)})
}

// Delete removes one of the caller's courts. A court with live
// reservations cannot be deleted; the owner must cancel them first.
func (h *OwnerCourtHandler) Delete(c echo.Context) error {
	uid, _ := middleware.CallerID(c)
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid court id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courts.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrCourtHasReservations) {
			return conflict(c, "court has active reservations")
		}
		if errors.Is(err, repository.ErrCourtNotFound) {
			return notFound(c, "court not found")
		}
		return serverError(c, "delete court failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "court deleted"})
}
