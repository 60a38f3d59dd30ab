// Package fare prices the tickets of a booking: quantities per tariff,
// promo codes and the rule that ties the ticket count to the seat count.
package fare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/money"
)

var ErrUnknownTariff = errors.New("unknown tariff")

// Tariff is one purchasable ticket type.
type Tariff struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

// Tariffs is the price list, in display order.
var Tariffs = []Tariff{
	{Code: "MATIN", Label: "Matin", PriceCents: 990},
	{Code: "U14", Label: "Moins de 14 ans", PriceCents: 650},
}

// Lookup finds a tariff by code.
func Lookup(code string) (Tariff, bool) {
	for _, t := range Tariffs {
		if t.Code == code {
			return t, true
		}
	}
	return Tariff{}, false
}

// Basket holds ticket quantities per tariff code.
type Basket map[string]int

// NewBasket keeps the known codes with a positive quantity.
func NewBasket(q map[string]int) Basket {
	b := Basket{}
	for code, n := range q {
		if _, ok := Lookup(code); ok && n > 0 {
			b[code] = n
		}
	}
	return b
}

// Inc adds one ticket of code.
func (b Basket) Inc(code string) error {
	if _, ok := Lookup(code); !ok {
		return fmt.Errorf("%s: %w", code, ErrUnknownTariff)
	}
	b[code]++
	return nil
}

// Dec removes one ticket of code; quantities never go below zero.
func (b Basket) Dec(code string) error {
	if _, ok := Lookup(code); !ok {
		return fmt.Errorf("%s: %w", code, ErrUnknownTariff)
	}
	if b[code] > 1 {
		b[code]--
	} else {
		delete(b, code)
	}
	return nil
}

// Tickets is the total quantity.
func (b Basket) Tickets() int {
	n := 0
	for _, q := range b {
		n += q
	}
	return n
}

// Line is one non-empty tariff line of the basket.
type Line struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	Qty        int    `json:"qty"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

// Lines lists the non-empty lines in price list order.
func (b Basket) Lines() []Line {
	out := []Line{}
	for _, t := range Tariffs {
		q := b[t.Code]
		if q <= 0 {
			continue
		}
		c := int64(q) * t.PriceCents
		out = append(out, Line{Code: t.Code, Label: t.Label, Qty: q, TotalCents: c, Total: money.FormatEUR(c)})
	}
	return out
}

// Subtotal is the basket total before promo.
func (b Basket) Subtotal() int64 {
	var sum int64
	for _, l := range b.Lines() {
		sum += l.TotalCents
	}
	return sum
}

// Promo codes.
const (
	PromoCinepass = "CINEPASS" // 10 % off
	PromoReduc2   = "REDUC2"   // 2 € off from 10 €
)

// ApplyPromo returns the total after the promo code.  Unknown codes are
// ignored and the result is never negative.
func ApplyPromo(subtotal int64, code string) int64 {
	total := subtotal
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case PromoCinepass:
		total = (subtotal*9 + 5) / 10
	case PromoReduc2:
		if subtotal >= 1000 {
			total = subtotal - 200
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// SeatHint is the line shown above the tariffs.
func SeatHint(tickets, seats int) string {
	switch {
	case seats > 0:
		return fmt.Sprintf("Billets à sélectionner : %d/%d", tickets, seats)
	case tickets > 0:
		return fmt.Sprintf("Billets sélectionnés : %d", tickets)
	}
	return "Sélectionnez au moins un billet"
}

// CanContinue requires at least one ticket, and exactly one per seat when
// seats were picked.  Without seats the placement is free.
func CanContinue(tickets, seats int) bool {
	return tickets > 0 && (seats == 0 || tickets == seats)
}

// Quote is the full pricing of a basket.
type Quote struct {
	Lines         []Line `json:"lines"`
	Tickets       int    `json:"tickets"`
	Seats         int    `json:"seats"`
	SubtotalCents int64  `json:"subtotal_cents"`
	Promo         string `json:"promo,omitempty"`
	TotalCents    int64  `json:"total_cents"`
	Total         string `json:"total"`
	Hint          string `json:"hint"`
	Note          string `json:"note,omitempty"`
	CanContinue   bool   `json:"can_continue"`
}

// Quote prices b for a booking of seats seats.
func (b Basket) Quote(seats int, promo string) Quote {
	sub := b.Subtotal()
	total := ApplyPromo(sub, promo)
	q := Quote{
		Lines:         b.Lines(),
		Tickets:       b.Tickets(),
		Seats:         seats,
		SubtotalCents: sub,
		Promo:         strings.ToUpper(strings.TrimSpace(promo)),
		TotalCents:    total,
		Total:         money.FormatEUR(total),
	}
	q.Hint = SeatHint(q.Tickets, seats)
	if seats > 0 {
		q.Note = fmt.Sprintf("Billets : %d/%d", q.Tickets, seats)
	}
	q.CanContinue = CanContinue(q.Tickets, seats)
	return q
}
