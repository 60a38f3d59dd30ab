package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
	"github.com/iliyamo/cinema-seat-booking/internal/session"
	"github.com/iliyamo/cinema-seat-booking/internal/snack"
)

// BookingHandler serves the steps after the film list: seats, fares,
// snacks, payment and ticket.
type BookingHandler struct {
	Feed     catalogue.Feed
	Sessions *session.Manager
	Seating  config.SeatingConfig
	Carts    *snack.Carts
	Menu     func() (snack.Menu, error)
	Checkout *service.Checkout
	Log      *zap.Logger
}

// showing resolves the live inputs of the showtime p points at.  A feed
// failure leaves the declared count unknown, which renders the structural
// holds and the restored snapshot only.
func (h *BookingHandler) showing(ctx context.Context, p flow.Params, override string) session.Showing {
	sh := session.Showing{Key: p.Key(), Lang: p.Lang}
	if st, err := flow.Resolve(ctx, p, h.Feed); err == nil {
		sh.Declared = st.Declared()
	} else {
		h.Log.Warn("declared count unavailable", zap.String("session", sh.Key.String()), zap.Error(err))
	}
	sh.Extra = append(sh.Extra, h.Seating.DebugTaken...)
	if h.Seating.DebugOverride && override != "" {
		sh.Extra = append(sh.Extra, seating.ParseSeatIDs(override)...)
	}
	return sh
}
