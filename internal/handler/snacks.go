package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/snack"
)

type snacksResp struct {
	Categories []snack.Category `json:"categories"`
	Message    string           `json:"message,omitempty"`
	Cart       snack.Summary    `json:"cart"`
	Next       *nextStep        `json:"next,omitempty"`
}

// ticketsTotal prefers what the fare step saved in the session over the
// total carried in the query.
func (h *BookingHandler) ticketsTotal(ctx context.Context, browser string, p flow.Params) (int64, int) {
	v := h.Sessions.Current(ctx, browser, h.showing(ctx, p, ""))
	if v.Fares != nil {
		return v.Fares.TotalCents, v.Fares.Tickets
	}
	return p.TotalCents, p.Tickets()
}

func (h *BookingHandler) snacksResp(menu snack.Menu, menuErr error, cart snack.Cart, ticketsCents int64, tickets int, p flow.Params) snacksResp {
	r := snacksResp{Categories: menu.Categories, Cart: snack.Summarize(cart, ticketsCents, tickets)}
	if menuErr != nil {
		r.Categories = []snack.Category{}
		r.Message = snack.LoadFailedMessage
	}
	if r.Categories == nil {
		r.Categories = []snack.Category{}
	}
	if r.Cart.CanContinue {
		p.TotalCents = r.Cart.TotalCents
		n := next("paiement", p)
		r.Next = &n
	}
	return r
}

func (h *BookingHandler) menu() (snack.Menu, error) {
	m, err := h.Menu()
	if err != nil {
		h.Log.Warn("snack menu unavailable", zap.Error(err))
	}
	return m, err
}

// GetSnacks answers GET /v1/snacks: the menu and the showtime's cart.
func (h *BookingHandler) GetSnacks(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	ctx := c.Request().Context()
	browser := middleware.Browser(c)
	menu, menuErr := h.menu()
	cart := h.Carts.Load(ctx, browser, p.Key())
	total, tickets := h.ticketsTotal(ctx, browser, p)
	return c.JSON(http.StatusOK, h.snacksResp(menu, menuErr, cart, total, tickets, p))
}

type cartReq struct {
	Action string `json:"action"`
	Name   string `json:"name"`
}

// UpdateCart answers POST /v1/snacks/cart with {"action": "add", "name": ...}.
func (h *BookingHandler) UpdateCart(c echo.Context) error {
	p, err := bindParams(c)
	if err != nil {
		return invalidParams(c, err)
	}
	var req cartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	browser := middleware.Browser(c)
	menu, menuErr := h.menu()
	cart, err := h.Carts.Update(ctx, browser, p.Key(), func(cart snack.Cart) error {
		return cart.Apply(menu, snack.Action(req.Action), req.Name)
	})
	if err != nil {
		return fail(c, err)
	}
	total, tickets := h.ticketsTotal(ctx, browser, p)
	return c.JSON(http.StatusOK, h.snacksResp(menu, menuErr, cart, total, tickets, p))
}
