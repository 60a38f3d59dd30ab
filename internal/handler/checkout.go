package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/payment"
)

// Pay answers POST /v1/payment.  The body is the payment form; the flow
// parameters say what is being paid for.
func (h *BookingHandler) Pay(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	var form payment.Form
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := h.Checkout.Pay(c.Request().Context(), middleware.Browser(c), p, form)
	if err != nil {
		return fail(c, err)
	}
	n := next("ticket", p)
	n.Query += "&ref=" + t.Reference
	return c.JSON(http.StatusCreated, echo.Map{
		"ticket": t,
		"brand":  payment.Brand(form.Card.Number),
		"next":   n,
	})
}

// Ticket answers GET /v1/ticket: the e-ticket for the parameters and the
// reference issued at payment.
func (h *BookingHandler) Ticket(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	t, err := h.Checkout.Ticket(p, c.QueryParam("ref"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Reset answers POST /v1/reset: back home, everything the browser stored
// is forgotten.
func (h *BookingHandler) Reset(c echo.Context) error {
	if err := h.Sessions.Reset(c.Request().Context(), middleware.Browser(c)); err != nil {
		h.Log.Warn("reset failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DebugBookings answers GET /v1/debug/bookings with the raw snapshots of
// the browser.
func (h *BookingHandler) DebugBookings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Sessions.Snapshots(c.Request().Context(), middleware.Browser(c)))
}
