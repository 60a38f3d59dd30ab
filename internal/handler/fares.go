package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/fare"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/session"
)

type fareResp struct {
	Tariffs []fare.Tariff `json:"tariffs"`
	Quote   fare.Quote    `json:"quote"`
	Empty   string        `json:"empty,omitempty"`
	Next    *nextStep     `json:"next,omitempty"`
}

const emptyBasket = "Aucun tarif sélectionné"

func toFareResp(q fare.Quote) fareResp {
	r := fareResp{Tariffs: fare.Tariffs, Quote: q}
	if len(q.Lines) == 0 {
		r.Empty = emptyBasket
	}
	return r
}

// GetFares answers GET /v1/fares: the price list and the basket restored
// from the session, else from the tarifs parameter.
func (h *BookingHandler) GetFares(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	ctx := c.Request().Context()
	v := h.Sessions.Current(ctx, middleware.Browser(c), h.showing(ctx, p, ""))
	basket, promo := fare.NewBasket(p.Fares), p.Promo
	if v.Fares != nil {
		basket, promo = fare.NewBasket(v.Fares.Quantities), v.Fares.Promo
	}
	return c.JSON(http.StatusOK, toFareResp(basket.Quote(len(p.Seats), promo)))
}

type fareReq struct {
	Quantities map[string]int `json:"quantities"`
	Op         string         `json:"op"` // inc | dec
	Code       string         `json:"code"`
	Promo      *string        `json:"promo"`
}

// UpdateFares answers POST /v1/fares.  The body carries the basket, an
// optional +1/-1 on one code and the promo code.  The result is saved with
// the seat snapshot and, when complete, handed to the snack step.
func (h *BookingHandler) UpdateFares(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	var req fareReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	browser := middleware.Browser(c)
	sh := h.showing(ctx, p, "")

	basket, promo := fare.NewBasket(p.Fares), p.Promo
	if v := h.Sessions.Current(ctx, browser, sh); v.Fares != nil {
		basket, promo = fare.NewBasket(v.Fares.Quantities), v.Fares.Promo
	}
	if req.Quantities != nil {
		basket = fare.NewBasket(req.Quantities)
	}
	switch strings.ToLower(req.Op) {
	case "":
	case "inc":
		err = basket.Inc(req.Code)
	case "dec":
		err = basket.Dec(req.Code)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown op"})
	}
	if err != nil {
		return fail(c, err)
	}
	if req.Promo != nil {
		promo = *req.Promo
	}

	q := basket.Quote(len(p.Seats), promo)
	h.Sessions.SaveFares(ctx, browser, sh, session.FareSelection{
		Quantities: basket,
		Promo:      q.Promo,
		TotalCents: q.TotalCents,
		Tickets:    q.Tickets,
	})

	resp := toFareResp(q)
	if q.CanContinue {
		p.Fares, p.Promo, p.TotalCents = basket, q.Promo, q.TotalCents
		n := next("snacks", p)
		resp.Next = &n
	}
	return c.JSON(http.StatusOK, resp)
}
