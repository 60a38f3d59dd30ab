package snack

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/kvstore"
	"github.com/iliyamo/cinema-seat-booking/internal/money"
	"github.com/iliyamo/cinema-seat-booking/internal/session"
)

// Item is one cart line as persisted, keyed by product name.
type Item struct {
	Price  float64 `json:"prix"`
	Qty    int     `json:"qty"`
	Image  string  `json:"image,omitempty"`
	Points int     `json:"points,omitempty"`
}

// Cart maps product names to cart lines.
type Cart map[string]Item

// Add puts one more p in the cart.
func (c Cart) Add(p Product) {
	it := c[p.Name]
	it.Price, it.Image, it.Points = p.Price, p.Image, p.Points
	it.Qty++
	c[p.Name] = it
}

// Remove takes one unit of name out; the line goes away at zero.
func (c Cart) Remove(name string) {
	it, ok := c[name]
	if !ok {
		return
	}
	if it.Qty <= 1 {
		delete(c, name)
		return
	}
	it.Qty--
	c[name] = it
}

// Delete drops the whole line.
func (c Cart) Delete(name string) { delete(c, name) }

// Clear empties the cart.
func (c Cart) Clear() {
	for k := range c {
		delete(c, k)
	}
}

// TotalCents is the cart total.
func (c Cart) TotalCents() int64 {
	var sum int64
	for _, it := range c {
		sum += int64(it.Qty) * Product{Price: it.Price}.PriceCents()
	}
	return sum
}

// Line is a cart line as rendered.
type Line struct {
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	Image      string `json:"image,omitempty"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

// Lines lists the cart by product name.
func (c Cart) Lines() []Line {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Line, 0, len(names))
	for _, n := range names {
		it := c[n]
		t := int64(it.Qty) * Product{Price: it.Price}.PriceCents()
		out = append(out, Line{Name: n, Qty: it.Qty, Image: it.Image, TotalCents: t, Total: money.FormatEUR(t)})
	}
	return out
}

// Action is a cart mutation requested by the browser.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionDelete Action = "delete"
	ActionClear  Action = "clear"
)

var ErrUnknownAction = errors.New("unknown cart action")

// Apply runs one action against the cart.  Adding needs the product to be
// on the menu.
func (c Cart) Apply(m Menu, a Action, name string) error {
	switch a {
	case ActionAdd:
		p, ok := m.Find(name)
		if !ok {
			return fmt.Errorf("%q: %w", name, ErrUnknownProduct)
		}
		c.Add(p)
	case ActionRemove:
		c.Remove(name)
	case ActionDelete:
		c.Delete(name)
	case ActionClear:
		c.Clear()
	default:
		return fmt.Errorf("%q: %w", a, ErrUnknownAction)
	}
	return nil
}

// Summary is the snack step recap: both totals and whether the visitor may
// go on to payment.
type Summary struct {
	Lines        []Line `json:"lines"`
	SnacksCents  int64  `json:"snacks_cents"`
	TicketsCents int64  `json:"tickets_cents"`
	TotalCents   int64  `json:"total_cents"`
	Total        string `json:"total"`
	CanContinue  bool   `json:"can_continue"`
}

// Summarize adds the ticket total to the cart.  Continuing needs something
// to pay for: snacks or at least one ticket.
func Summarize(c Cart, ticketsCents int64, tickets int) Summary {
	s := Summary{Lines: c.Lines(), SnacksCents: c.TotalCents(), TicketsCents: ticketsCents}
	s.TotalCents = s.SnacksCents + ticketsCents
	s.Total = money.FormatEUR(s.TotalCents)
	s.CanContinue = len(c) > 0 || tickets > 0
	return s
}

// Carts persists snack carts, one per showtime, in the browser's namespace.
type Carts struct {
	store kvstore.Store
	locks *session.Locks
	log   *zap.Logger
}

// NewCarts builds the cart store.  locks must be the one the session
// manager uses so that a reset and a cart write never interleave; nil gives
// the carts a lock of their own.
func NewCarts(store kvstore.Store, locks *session.Locks, log *zap.Logger) *Carts {
	if log == nil {
		log = zap.NewNop()
	}
	if locks == nil {
		locks = session.NewLocks()
	}
	return &Carts{store: store, locks: locks, log: log}
}

type carts map[string]Cart

// Load returns the cart of key.  An unreadable store gives an empty cart.
func (s *Carts) Load(ctx context.Context, browser string, key session.Key) Cart {
	unlock := s.locks.Lock(browser)
	defer unlock()
	return s.loadAll(ctx, browser).cart(key)
}

// Update runs fn on the cart of key and saves the result, holding the
// browser's lock from the read to the write.  Nothing is written when fn
// fails.  A failed write is logged and the updated cart still returned.
func (s *Carts) Update(ctx context.Context, browser string, key session.Key, fn func(Cart) error) (Cart, error) {
	unlock := s.locks.Lock(browser)
	defer unlock()

	all := s.loadAll(ctx, browser)
	c := all.cart(key)
	if err := fn(c); err != nil {
		return c, err
	}
	all[key.String()] = c
	_ = s.saveAll(ctx, browser, key, all)
	return c, nil
}

func (all carts) cart(key session.Key) Cart {
	if c, ok := all[key.String()]; ok && c != nil {
		return c
	}
	return Cart{}
}

func (s *Carts) saveAll(ctx context.Context, browser string, key session.Key, all carts) error {
	if err := kvstore.SetJSON(ctx, s.store, browser, session.SnackCartKey, all); err != nil {
		s.log.Warn("snack cart not saved", zap.String("session", key.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *Carts) loadAll(ctx context.Context, browser string) carts {
	all := carts{}
	err := kvstore.GetJSON(ctx, s.store, browser, session.SnackCartKey, &all)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		s.log.Warn("snack carts unreadable, starting empty", zap.String("browser", browser), zap.Error(err))
		return carts{}
	}
	if all == nil {
		all = carts{}
	}
	return all
}
