package seating

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessible(ids ...SeatID) map[SeatID]Restriction {
	m := map[SeatID]Restriction{}
	for _, id := range ids {
		m[id] = RestrictionAccessibility
	}
	return m
}

// venue mirrors the main room: 16x18 with aisles at 4 and 15.
func venue() (Grid, Holds) {
	g := NewGrid(16, 18, []int{4, 15}, nil)
	h := NewHolds([]SeatID{"G9", "G10", "A1"}, accessible("A7", "A8", "A9", "A10", "A11", "A12"))
	return g, h
}

func assertDisjoint(t *testing.T, s State) {
	t.Helper()
	for id := range s.Selected {
		assert.False(t, s.Taken.Has(id), "seat %s is both taken and selected", id)
	}
}

func TestNewState_StructuralHolds(t *testing.T) {
	g, h := venue()
	s := NewState(g, h)

	assert.Equal(t, 256, g.Capacity())
	assert.Equal(t, 9, s.Taken.Len())
	assert.ElementsMatch(t, []SeatID{"A1", "A7", "A8", "A9", "A10", "A11", "A12", "G9", "G10"}, s.Taken.Sorted())
	assert.Empty(t, s.Selected)
}

func TestNewState_GapHoldIgnored(t *testing.T) {
	g := NewGrid(4, 6, []int{4}, []SeatID{"B2"})
	h := NewHolds([]SeatID{"A4", "B2", "C1"}, nil)
	s := NewState(g, h)

	assert.Equal(t, []SeatID{"C1"}, s.Taken.Sorted())
}

func TestReconcile_MainRoomScenario(t *testing.T) {
	g, h := venue()
	s := Reconcile(NewState(g, h), h, DeclaredCount(240))

	assert.Equal(t, 18, s.Grid.Cols, "no growth expected")
	assert.Equal(t, 16, s.Taken.Len())
	assert.Equal(t, 240, s.Free())
	for _, id := range []SeatID{"A2", "A3", "A5", "A6", "A13", "A14", "A16"} {
		assert.True(t, s.Taken.Has(id), "expected %s taken", id)
	}
	assert.False(t, s.Taken.Has("A17"))
}

func TestReconcile_InvalidCountKeepsStructuralOnly(t *testing.T) {
	g, h := venue()
	base := NewState(g, h)
	s := Reconcile(base, h, Declared{})

	assert.Equal(t, base.Taken, s.Taken)
	assert.Equal(t, 18, s.Grid.Cols)

	s = Reconcile(base, h, DeclaredCount(-3))
	assert.Equal(t, base.Taken, s.Taken)
}

func TestReconcile_ZeroTakesEverySeat(t *testing.T) {
	g, h := venue()
	s := Reconcile(NewState(g, h), h, DeclaredCount(0))

	assert.Equal(t, 0, s.Free())
	for _, id := range s.Grid.Seats() {
		assert.True(t, s.Taken.Has(id))
	}
	assert.False(t, s.Taken.Has("A4"))
	assert.False(t, s.Taken.Has("P15"))
}

func TestReconcile_GrowsColumns(t *testing.T) {
	g, h := venue()
	s := Reconcile(NewState(g, h), h, DeclaredCount(300))

	assert.Equal(t, 21, s.Grid.Cols)
	assert.Equal(t, 304, s.Grid.Capacity())
	// the nine structural holds cannot be released
	assert.Equal(t, 295, s.Free())
}

func TestGrid_GrowSkipsAisleColumns(t *testing.T) {
	g := NewGrid(2, 2, []int{3}, nil)
	grown := g.Grow(6)

	// column 3 is an aisle and adds nothing, so columns 4 and 5 are needed
	assert.Equal(t, 5, grown.Cols)
	assert.Equal(t, 8, grown.Capacity())
}

func TestGrid_GrowIdempotent(t *testing.T) {
	g, _ := venue()
	once := g.Grow(300)
	assert.Equal(t, once, once.Grow(300))
	assert.Equal(t, once, once.Grow(120))
	assert.Equal(t, g, g.Grow(0))
}

func TestGrid_GrowStopsAtColumnLimit(t *testing.T) {
	g, _ := venue()
	g.MaxCols = 20
	grown := g.Grow(1000)

	assert.Equal(t, 20, grown.Cols)
	assert.Equal(t, 16*18, grown.Capacity())
	assert.Equal(t, 16*18, g.MaxCapacity())

	wide := NewGrid(2, 150, nil, nil)
	assert.Equal(t, 150, wide.ColLimit(), "a grid configured wider keeps its width")
}

func TestReconcile_HugeCountDegrades(t *testing.T) {
	g, h := venue()
	base := NewState(g, h)

	for _, n := range []int{2_000_000_000, g.MaxCapacity() + 1} {
		s := Reconcile(base, h, DeclaredCount(n))
		assert.Equal(t, 18, s.Grid.Cols, "n=%d", n)
		assert.Equal(t, base.Taken, s.Taken, "n=%d", n)
		assert.Len(t, Render(s, h), 16)
	}

	s := Reconcile(base, h, DeclaredCount(g.MaxCapacity()))
	assert.Equal(t, DefaultMaxCols, s.Grid.Cols)
	assert.Equal(t, 9, s.Taken.Len())
}

func TestRestore_CapsPersistedWidth(t *testing.T) {
	g, h := venue()
	s := Restore(NewState(g, h), h, 1_000_000, nil, nil)
	assert.Equal(t, DefaultMaxCols, s.Grid.Cols)
}

func TestReconcile_ReleasesOnlyDynamicSeats(t *testing.T) {
	g, h := venue()
	s := Restore(NewState(g, h), h, 0, []SeatID{"B1", "B2", "B3", "C1"}, nil)
	require.Equal(t, 13, s.Taken.Len())

	s = Reconcile(s, h, DeclaredCount(245))
	assert.Equal(t, 245, s.Free())
	assert.False(t, s.Taken.Has("B1"))
	assert.False(t, s.Taken.Has("B2"))
	assert.True(t, s.Taken.Has("B3"))
	assert.True(t, s.Taken.Has("C1"))
	for id := range h.Structural(s.Grid) {
		assert.True(t, s.Taken.Has(id))
	}
}

func TestReconcile_InfeasibleTargetStopsAtHolds(t *testing.T) {
	g, h := venue()
	s := Restore(NewState(g, h), h, 0, []SeatID{"B1"}, []SeatID{"C3", "C5"})
	s = Reconcile(s, h, DeclaredCount(1000))

	// every non-structural seat is free or selected
	assert.Equal(t, 9, s.Taken.Len())
	assert.Equal(t, s.Grid.Capacity()-9-2, s.Free())
	assert.Len(t, s.Selected, 2)
}

func TestReconcile_PropertyFreeMatchesTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g, h := venue()
	for i := 0; i < 200; i++ {
		s := NewState(g, h)
		var sel []SeatID
		for _, id := range g.Seats() {
			if rng.Intn(20) == 0 && !s.Taken.Has(id) {
				sel = append(sel, id)
			}
		}
		s = Restore(s, h, 0, nil, sel)
		r := rng.Intn(320)
		out := Reconcile(s, h, DeclaredCount(r))

		capacity := out.Grid.Capacity()
		target := r
		if target > capacity {
			target = capacity
		}
		maxFree := capacity - 9 - out.Selected.Len()
		if target > maxFree {
			assert.Equal(t, maxFree, out.Free(), "r=%d", r)
		} else {
			assert.Equal(t, target, out.Free(), "r=%d", r)
		}
		assert.Equal(t, len(sel), out.Selected.Len())
		assertDisjoint(t, out)
		for id := range out.Taken {
			assert.True(t, out.Grid.IsSeat(id))
		}
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	g, h := venue()
	once := Reconcile(NewState(g, h), h, DeclaredCount(200))
	twice := Reconcile(once, h, DeclaredCount(200))
	assert.Equal(t, once, twice)
}

func TestRestore_AdditiveAndDisjoint(t *testing.T) {
	g, h := venue()
	base := NewState(g, h)
	s := Restore(base, h, 0, []SeatID{"D4", "D5", "Z1"}, []SeatID{"D5", "E6", "A4", "G9"})

	// D4 is an aisle and Z1 is outside the grid
	assert.True(t, s.Taken.Has("D5"))
	assert.False(t, s.Taken.Has("D4"))
	assert.False(t, s.Taken.Has("Z1"))
	assert.Equal(t, []SeatID{"E6"}, s.Selected.Sorted())
	for id := range base.Taken {
		assert.True(t, s.Taken.Has(id))
	}
	assertDisjoint(t, s)
}

func TestRestore_KeepsGrownWidth(t *testing.T) {
	g, h := venue()
	s := Restore(NewState(g, h), h, 21, []SeatID{"A20"}, []SeatID{"B21"})

	assert.Equal(t, 21, s.Grid.Cols)
	assert.True(t, s.Taken.Has("A20"))
	assert.True(t, s.Selected.Has("B21"))
}

func TestWithExtra_MergesIntoFixed(t *testing.T) {
	_, h := venue()
	ext := h.WithExtra("B3", "bad", "C7")

	assert.True(t, ext.Fixed.Has("B3"))
	assert.True(t, ext.Fixed.Has("C7"))
	assert.False(t, ext.Fixed.Has("bad"))
	assert.False(t, h.Fixed.Has("B3"), "original holds must not change")
}
