// Package service holds the end of the booking flow: payment check, ticket
// issue and the booking event.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/payment"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/ticket"
)

// EventPublisher is satisfied by *queue.Publisher.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// Checkout turns a valid payment form into a signed ticket.
type Checkout struct {
	checker *payment.Checker
	signer  ticket.Signer
	events  EventPublisher
	log     *zap.Logger
	now     func() time.Time
}

// NewCheckout wires a checkout.  events may be nil when the broker is
// disabled.
func NewCheckout(checker *payment.Checker, signer ticket.Signer, events EventPublisher, log *zap.Logger) *Checkout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checkout{checker: checker, signer: signer, events: events, log: log, now: time.Now}
}

// Pay checks the form, issues the ticket and announces the booking.  A
// broker failure is logged and does not fail the payment.
func (c *Checkout) Pay(ctx context.Context, browser string, p flow.Params, form payment.Form) (ticket.Ticket, error) {
	if err := c.checker.Check(form); err != nil {
		return ticket.Ticket{}, err
	}
	t, err := c.Ticket(p, "")
	if err != nil {
		return ticket.Ticket{}, err
	}
	if c.events != nil {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := c.events.PublishBookingConfirmed(pctx, bookingEvent(browser, p, form, t)); err != nil {
			c.log.Warn("booking event not published", zap.String("ref", t.Reference), zap.Error(err))
		}
	}
	c.log.Info("booking confirmed", zap.String("ref", t.Reference), zap.String("film", t.Film), zap.Int64("total_cents", t.TotalCents))
	return t, nil
}

// Ticket rebuilds and signs the ticket of p.  An empty ref draws a new
// reference.
func (c *Checkout) Ticket(p flow.Params, ref string) (ticket.Ticket, error) {
	t := ticket.Build(p, ref, c.now())
	token, err := c.signer.Sign(t)
	if err != nil {
		return ticket.Ticket{}, err
	}
	t.Token = token
	return t, nil
}

func bookingEvent(browser string, p flow.Params, form payment.Form, t ticket.Ticket) queue.BookingConfirmedEvent {
	seats := make([]string, len(t.Seats))
	for i, id := range t.Seats {
		seats[i] = string(id)
	}
	tickets := p.Tickets()
	if tickets == 0 {
		tickets = len(seats)
	}
	method := strings.ToLower(strings.TrimSpace(form.Method))
	if method == "" {
		method = payment.MethodCard
	}
	return queue.BookingConfirmedEvent{
		Reference:   t.Reference,
		Browser:     browser,
		Film:        t.Film,
		Room:        t.Room,
		Start:       t.Start,
		End:         t.End,
		Lang:        t.Lang,
		Seats:       seats,
		Tickets:     tickets,
		TotalCents:  t.TotalCents,
		Method:      method,
		ConfirmedAt: t.IssuedAt.Format(time.RFC3339),
	}
}

