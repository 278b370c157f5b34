package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"courtbook/internal/model"
	"courtbook/internal/repository"
)

// PublicCourtHandler serves the unauthenticated browse endpoints. Only
// active courts are visible here, and only through a restricted
// projection that omits owner identity and internal status.
type PublicCourtHandler struct {
	Courts *repository.CourtRepo
}

func NewPublicCourtHandler(courts *repository.CourtRepo) *PublicCourtHandler {
	return &PublicCourtHandler{Courts: courts}
}

// publicCourt is the browse projection of a court.
type publicCourt struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Capacity     *uint32  `json:"capacity,omitempty"`
	Description  *string  `json:"description,omitempty"`
	PricePerHour *float64 `json:"price_per_hour,omitempty"`
	Sport        *string  `json:"sport,omitempty"`
}

func toPublicCourt(c *model.Court) publicCourt {
	return publicCourt{
		ID:           c.ID,
		Name:         c.Name,
		Location:     c.Location,
		Capacity:     c.Capacity,
		Description:  c.Description,
		PricePerHour: c.PricePerHour,
		Sport:        c.Sport,
	}
}

// ListActive returns every active court.
func (h *PublicCourtHandler) ListActive(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	courts, err := h.Courts.ListActive(ctx)
	if err != nil {
		return serverError(c, "query failed")
	}

	out := make([]publicCourt, 0, len(courts))
	for _, ct := range courts {
		out = append(out, toPublicCourt(ct))
	}
	return c.JSON(http.StatusOK, echo.Map{"courts": out})
}

// GetActive returns one active court by id. Courts in maintenance or
// inactive status are indistinguishable from missing ones here.
func (h *PublicCourtHandler) GetActive(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return badRequest(c, "invalid court id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Courts.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCourtNotFound) {
			return notFound(c, "court not found")
		}
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"court": toPublicCourt(ct)})
}
