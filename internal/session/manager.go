package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/kvstore"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

// Venue is the static configuration of the room: its grid and the
// structural holds.
type Venue struct {
	Grid  seating.Grid
	Holds seating.Holds
}

// Showing identifies the showtime a request works on together with the
// live inputs the catalogue feed and the request supply for it.
type Showing struct {
	Key      Key
	Lang     string
	Declared seating.Declared
	// Extra seats merged into the fixed holds before anything else.
	Extra []seating.SeatID
}

// View is the state of one showtime as rendered to the browser.
type View struct {
	Key    Key
	State  seating.State
	Holds  seating.Holds
	Custom map[seating.SeatID]string
	Fares  *FareSelection
}

func (v View) Summary() seating.Summary { return seating.Summarize(v.State) }
func (v View) Rows() []seating.Row      { return seating.Render(v.State, v.Holds) }

// Manager runs the seat selection session of every browser.  Store failures
// never fail a request: reads degrade to an empty session and failed writes
// are logged.
type Manager struct {
	store kvstore.Store
	venue Venue
	log   *zap.Logger
	locks *Locks
}

func NewManager(store kvstore.Store, venue Venue, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, venue: venue, log: log, locks: NewLocks()}
}

// Locks is the per-browser lock the manager holds around every write.
// Other stores of the browser namespace take it too.
func (m *Manager) Locks() *Locks { return m.locks }

// Open computes the state shown when a browser enters the seat step: the
// structural holds, the restored snapshot if any, then reconciliation with
// the declared remaining count.  A restored snapshot that reconciliation
// changed is written back so later toggles start from what was rendered.
func (m *Manager) Open(ctx context.Context, browser string, sh Showing) View {
	unlock := m.locks.Lock(browser)
	defer unlock()

	all := m.load(ctx, browser)
	v, restored := m.restore(all, sh)
	before := v.State
	v.State = seating.Reconcile(v.State, v.Holds, sh.Declared)
	if restored && !sameState(before, v.State) {
		_ = m.persist(ctx, browser, all, sh, v)
	}
	return v
}

// Toggle flips one seat and persists the result exactly once.  The base
// state is the last persisted snapshot; without one it is the state Open
// would render.
func (m *Manager) Toggle(ctx context.Context, browser string, sh Showing, id seating.SeatID) (View, error) {
	unlock := m.locks.Lock(browser)
	defer unlock()

	v, all := m.current(ctx, browser, sh)
	next, err := seating.Toggle(v.State, v.Holds, id)
	if err != nil {
		return v, fmt.Errorf("toggle %s: %w", id, err)
	}
	v.State = next
	_ = m.persist(ctx, browser, all, sh, v)
	return v, nil
}

// Current returns the state toggles would start from, without writing.
func (m *Manager) Current(ctx context.Context, browser string, sh Showing) View {
	unlock := m.locks.Lock(browser)
	defer unlock()
	v, _ := m.current(ctx, browser, sh)
	return v
}

// SaveFares stores the fare step output next to the seat snapshot.
func (m *Manager) SaveFares(ctx context.Context, browser string, sh Showing, fs FareSelection) View {
	unlock := m.locks.Lock(browser)
	defer unlock()

	v, all := m.current(ctx, browser, sh)
	v.Fares = &fs
	_ = m.persist(ctx, browser, all, sh, v)
	return v
}

// Reset clears every namespace key of the browser: bookings of all
// showtimes and snack carts alike.
func (m *Manager) Reset(ctx context.Context, browser string) error {
	unlock := m.locks.Lock(browser)
	defer unlock()
	if err := m.store.Clear(ctx, browser); err != nil {
		m.log.Warn("session reset failed", zap.String("browser", browser), zap.Error(err))
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// Snapshots returns every persisted snapshot of the browser, keyed by
// session key.
func (m *Manager) Snapshots(ctx context.Context, browser string) map[string]Snapshot {
	unlock := m.locks.Lock(browser)
	defer unlock()
	return m.load(ctx, browser)
}

func (m *Manager) current(ctx context.Context, browser string, sh Showing) (View, bookings) {
	all := m.load(ctx, browser)
	v, restored := m.restore(all, sh)
	if !restored {
		v.State = seating.Reconcile(v.State, v.Holds, sh.Declared)
	}
	return v, all
}

func (m *Manager) restore(all bookings, sh Showing) (View, bool) {
	holds := m.venue.Holds.WithExtra(sh.Extra...)
	v := View{Key: sh.Key, Holds: holds, State: seating.NewState(m.venue.Grid, holds)}

	snap, ok := all[sh.Key.String()]
	if !ok {
		return v, false
	}
	if !snap.compatible() {
		m.log.Warn("ignoring snapshot with unknown version",
			zap.String("session", sh.Key.String()), zap.Int("version", snap.Version))
		return v, false
	}
	v.State = seating.Restore(v.State, holds, snap.Cols, snap.Taken, snap.Selected)
	v.Custom = snap.Custom
	v.Fares = snap.Fares
	return v, true
}

func (m *Manager) load(ctx context.Context, browser string) bookings {
	all := bookings{}
	err := kvstore.GetJSON(ctx, m.store, browser, BookingKey, &all)
	switch {
	case err == nil:
	case errors.Is(err, kvstore.ErrNotFound):
	default:
		m.log.Warn("booking store unreadable, starting empty", zap.String("browser", browser), zap.Error(err))
		return bookings{}
	}
	if all == nil {
		all = bookings{}
	}
	return all
}

func (m *Manager) persist(ctx context.Context, browser string, all bookings, sh Showing, v View) error {
	all[sh.Key.String()] = Snapshot{
		Version:  SnapshotVersion,
		Film:     sh.Key.Film,
		Room:     sh.Key.Room,
		Start:    sh.Key.Start,
		Lang:     sh.Lang,
		Selected: v.State.Selected.Sorted(),
		Taken:    v.State.Taken.Sorted(),
		Custom:   v.Custom,
		Cols:     v.State.Grid.Cols,
		Fares:    v.Fares,
	}
	if err := kvstore.SetJSON(ctx, m.store, browser, BookingKey, all); err != nil {
		m.log.Warn("booking snapshot not saved", zap.String("session", sh.Key.String()), zap.Error(err))
		return err
	}
	return nil
}

func sameState(a, b seating.State) bool {
	return a.Grid.Cols == b.Grid.Cols && sameSet(a.Taken, b.Taken) && sameSet(a.Selected, b.Selected)
}

func sameSet(a, b seating.SeatSet) bool {
	if a.Len() != b.Len() {
		return false
	}
	for id := range a {
		if !b.Has(id) {
			return false
		}
	}
	return true
}
