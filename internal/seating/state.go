package seating

import "errors"

var (
	// ErrNotASeat is returned when a toggle targets a gap or a cell outside the grid.
	ErrNotASeat = errors.New("not a seat")
	// ErrSeatUnavailable is returned when a toggle targets a held or taken seat.
	ErrSeatUnavailable = errors.New("seat unavailable")
)

// State is the availability of one showtime.  Taken and Selected only ever
// contain real seats of Grid and are disjoint.
type State struct {
	Grid     Grid
	Taken    SeatSet
	Selected SeatSet
}

// NewState computes the structural unavailability of g: the baseline taken
// set is every fixed hold and every restricted seat that is a real seat.
func NewState(g Grid, h Holds) State {
	return State{Grid: g, Taken: h.Structural(g), Selected: NewSeatSet()}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{Grid: s.Grid, Taken: s.Taken.Clone(), Selected: s.Selected.Clone()}
}

// Free is the number of seats neither taken nor selected.
func (s State) Free() int {
	return s.Grid.Capacity() - s.Taken.Len() - s.Selected.Len()
}

// Restore merges a previously persisted snapshot into s.  The selection is
// replaced; the taken set is unioned with the freshly computed one, so seats
// taken in a past visit stay taken.  cols lets a grid grown in a previous
// visit come back at its grown width.
func Restore(s State, h Holds, cols int, taken, selected []SeatID) State {
	out := s.Clone()
	if cols > out.Grid.Cols {
		out.Grid.Cols = min(cols, out.Grid.ColLimit())
	}
	for _, id := range taken {
		out.Taken.Add(id)
	}
	out.Selected = NewSeatSet(selected...)
	return out.normalize(h)
}

// normalize drops ids that are not seats of the grid, re-adds structural
// holds (the grid may have grown over some) and removes taken seats from the
// selection.
func (s State) normalize(h Holds) State {
	for id := range h.Structural(s.Grid) {
		s.Taken.Add(id)
	}
	for id := range s.Taken {
		if !s.Grid.IsSeat(id) {
			s.Taken.Delete(id)
		}
	}
	for id := range s.Selected {
		if !s.Grid.IsSeat(id) || s.Taken.Has(id) {
			s.Selected.Delete(id)
		}
	}
	return s
}

// Declared is the remaining-seats count announced by the feed for a showtime.
// Valid is false when the feed lacks the figure or carries garbage.
type Declared struct {
	Count int
	Valid bool
}

// DeclaredCount wraps a known count.  Negative counts are not valid.
func DeclaredCount(n int) Declared {
	return Declared{Count: n, Valid: n >= 0}
}

// Reconcile grows the grid to fit the declared count and adjusts the taken
// set so that exactly clamp(count, 0, capacity) seats are free.  Surplus free
// seats are taken in row-major order; missing free seats are released from
// the taken seats that are not structural holds, also in row-major order.
// Selected seats are never touched, so the target may be unreachable; the
// result is then the closest feasible state.  An invalid count, or one the
// grid could not hold even at its column limit, leaves the state as
// restored.
func Reconcile(s State, h Holds, d Declared) State {
	out := s.Clone()
	if !d.Valid || d.Count > out.Grid.MaxCapacity() {
		return out.normalize(h)
	}
	out.Grid = out.Grid.Grow(d.Count)
	out = out.normalize(h)

	capacity := out.Grid.Capacity()
	target := d.Count
	if target > capacity {
		target = capacity
	}
	if target < 0 {
		target = 0
	}
	free := capacity - out.Taken.Len() - out.Selected.Len()

	switch {
	case free > target:
		need := free - target
		for _, id := range out.Grid.Seats() {
			if need == 0 {
				break
			}
			if out.Taken.Has(id) || out.Selected.Has(id) {
				continue
			}
			out.Taken.Add(id)
			need--
		}
	case free < target:
		need := target - free
		for _, id := range out.Taken.Sorted() {
			if need == 0 {
				break
			}
			if h.Immutable(id) {
				continue
			}
			out.Taken.Delete(id)
			need--
		}
	}
	return out
}

// Toggle flips the selection of id.  Only free and selected seats can be
// toggled.
func Toggle(s State, h Holds, id SeatID) (State, error) {
	switch Classify(s, h, id) {
	case CategoryGap:
		return s, ErrNotASeat
	case CategoryRestricted, CategoryFixedHold, CategoryTaken:
		return s, ErrSeatUnavailable
	}
	out := s.Clone()
	if out.Selected.Has(id) {
		out.Selected.Delete(id)
	} else {
		out.Selected.Add(id)
	}
	return out, nil
}

// Summary is the recap shown next to the seat map.
type Summary struct {
	Free       int      `json:"free"`
	Selected   []SeatID `json:"selected"`
	CanReserve bool     `json:"can_reserve"`
}

// Summarize derives the recap of s.
func Summarize(s State) Summary {
	sel := s.Selected.Sorted()
	return Summary{Free: s.Free(), Selected: sel, CanReserve: len(sel) > 0}
}
