package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"courtbook/internal/middleware"
	"courtbook/internal/model"
	"courtbook/internal/repository"
)

// ReportHandler serves the owner analytics endpoints. Everything here
// reads from reservation_history, so deleting accounts or courts never
// rewrites past revenue.
type ReportHandler struct {
	Reports *repository.ReportRepo
}

func NewReportHandler(r *repository.ReportRepo) *ReportHandler {
	return &ReportHandler{Reports: r}
}

// Summary returns the overall archive statistics for the caller.
func (h *ReportHandler) Summary(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Reports.GetSummary(ctx, uid)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"summary": s})
}

// ByCourt returns per-court archive statistics, best earners first.
func (h *ReportHandler) ByCourt(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.GetByCourt(ctx, uid)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"courts": rows})
}

// RevenueByMonth returns the monthly revenue series. The ?months=
// parameter defaults to 12 and is clamped to [1, 60].
func (h *ReportHandler) RevenueByMonth(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	months := queryInt(c, "months", 12)
	if months < 1 {
		months = 1
	}
	if months > 60 {
		months = 60
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.GetRevenueByMonth(ctx, uid, months)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"months": rows})
}

// History returns a filtered, paginated slice of the caller's archive.
// Filters: ?court_id=, ?status= (cancelled|completed), ?start_date=,
// ?end_date= (YYYY-MM-DD or RFC 3339), ?limit= (default 100, max 500),
// ?offset=.
func (h *ReportHandler) History(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	f := repository.HistoryFilter{
		CourtID: uint64(queryInt(c, "court_id", 0)),
		Limit:   queryInt(c, "limit", 100),
		Offset:  queryInt(c, "offset", 0),
	}
	if f.Limit < 1 || f.Limit > 500 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	if s := c.QueryParam("status"); s != "" {
		st := model.ReservationStatus(s)
		if !st.Valid() {
			return badRequest(c, "invalid status filter")
		}
		f.Status = st
	}
	var err error
	if f.StartDate, err = queryDate(c, "start_date"); err != nil {
		return badRequest(c, "invalid start_date")
	}
	if f.EndDate, err = queryDate(c, "end_date"); err != nil {
		return badRequest(c, "invalid end_date")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	page, err := h.Reports.GetHistory(ctx, uid, f)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, page)
}

// TopCustomers returns the caller's most active players. The ?limit=
// parameter defaults to 10 and is clamped to [1, 100].
func (h *ReportHandler) TopCustomers(c echo.Context) error {
	uid, _ := middleware.CallerID(c)

	limit := queryInt(c, "limit", 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Reports.GetTopCustomers(ctx, uid, limit)
	if err != nil {
		return serverError(c, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"customers": rows})
}

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
