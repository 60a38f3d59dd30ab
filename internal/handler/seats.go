package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
	"github.com/iliyamo/cinema-seat-booking/internal/session"
)

type seatsResp struct {
	Session  string          `json:"session"`
	Rows     []seating.Row   `json:"rows"`
	Cols     int             `json:"cols"`
	Summary  seating.Summary `json:"summary"`
	Declared *int            `json:"declared,omitempty"`
}

func toSeatsResp(v session.View, sh session.Showing) seatsResp {
	r := seatsResp{Session: v.Key.String(), Rows: v.Rows(), Cols: v.State.Grid.Cols, Summary: v.Summary()}
	if sh.Declared.Valid {
		n := sh.Declared.Count
		r.Declared = &n
	}
	return r
}

// GetSeats answers GET /v1/seats: the seat map as the browser enters the
// step.
func (h *BookingHandler) GetSeats(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	ctx := c.Request().Context()
	sh := h.showing(ctx, p, c.QueryParam("taken"))
	v := h.Sessions.Open(ctx, middleware.Browser(c), sh)
	return c.JSON(http.StatusOK, toSeatsResp(v, sh))
}

type toggleReq struct {
	Seat string `json:"seat"`
}

// ToggleSeat answers POST /v1/seats/toggle with {"seat": "B5"}.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	var req toggleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id := seating.NormalizeSeatID(req.Seat)
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat required"})
	}
	ctx := c.Request().Context()
	sh := h.showing(ctx, p, c.QueryParam("taken"))
	v, err := h.Sessions.Toggle(ctx, middleware.Browser(c), sh, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toSeatsResp(v, sh))
}

// Reserve answers POST /v1/seats/reserve: it hands the current selection
// over to the fare step.
func (h *BookingHandler) Reserve(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	ctx := c.Request().Context()
	sh := h.showing(ctx, p, c.QueryParam("taken"))
	v := h.Sessions.Current(ctx, middleware.Browser(c), sh)
	sum := v.Summary()
	if !sum.CanReserve {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no seat selected"})
	}
	p.Seats = sum.Selected
	return c.JSON(http.StatusOK, echo.Map{"seats": sum.Selected, "next": next("tarif", p)})
}
