package seating

// Restriction is the per-seat marker configured for a venue.  It is decided
// once when the venue configuration is loaded.
type Restriction uint8

const (
	RestrictionNone          Restriction = iota
	RestrictionAccessibility             // unavailable and flagged as an accessibility place
)

// Holds are the structural holds of a venue: seats that never become free.
type Holds struct {
	Fixed      SeatSet // house-rule holds, plus any debug override
	Restricted SeatSet // accessibility-restricted seats
}

// NewHolds builds the holds from the fixed-hold list and the per-seat
// restriction map.
func NewHolds(fixed []SeatID, restrictions map[SeatID]Restriction) Holds {
	h := Holds{Fixed: NewSeatSet(), Restricted: NewSeatSet()}
	for _, id := range fixed {
		if id.Valid() {
			h.Fixed.Add(id)
		}
	}
	for id, r := range restrictions {
		if r == RestrictionAccessibility && id.Valid() {
			h.Restricted.Add(id)
		}
	}
	return h
}

// WithExtra returns a copy of h with ids merged into the fixed holds.  It is
// used for externally supplied overrides (demo or test lists) and must be
// applied before any other computation.
func (h Holds) WithExtra(ids ...SeatID) Holds {
	out := Holds{Fixed: h.Fixed.Clone(), Restricted: h.Restricted.Clone()}
	for _, id := range ids {
		if id.Valid() {
			out.Fixed.Add(id)
		}
	}
	return out
}

// Immutable reports whether id can never be released by reconciliation.
func (h Holds) Immutable(id SeatID) bool {
	return h.Fixed.Has(id) || h.Restricted.Has(id)
}

// Structural returns the holds that are real seats of g.
func (h Holds) Structural(g Grid) SeatSet {
	out := NewSeatSet()
	for id := range h.Fixed {
		if g.IsSeat(id) {
			out.Add(id)
		}
	}
	for id := range h.Restricted {
		if g.IsSeat(id) {
			out.Add(id)
		}
	}
	return out
}
