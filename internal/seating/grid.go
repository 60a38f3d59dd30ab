package seating

// DefaultMaxCols bounds column growth of a grid that sets no MaxCols.
const DefaultMaxCols = 100

// Grid is the physical layout of a room.  Rows is fixed; Cols only ever
// grows, up to MaxCols.  Aisles are 1-based columns that are gaps in every
// row, Gaps are additional cells that are not seats (walls, pillars).
type Grid struct {
	Rows    int
	Cols    int
	MaxCols int // 0 means DefaultMaxCols
	Aisles  []int
	Gaps    SeatSet
}

// NewGrid builds a grid.  Gap ids are normalized; invalid ones are ignored.
func NewGrid(rows, cols int, aisles []int, gaps []SeatID) Grid {
	set := NewSeatSet()
	for _, id := range gaps {
		if id.Valid() {
			set.Add(id)
		}
	}
	return Grid{Rows: rows, Cols: cols, Aisles: append([]int(nil), aisles...), Gaps: set}
}

func (g Grid) isAisle(col int) bool {
	for _, a := range g.Aisles {
		if a == col {
			return true
		}
	}
	return false
}

// Contains reports whether the id falls inside the current bounds.
func (g Grid) Contains(id SeatID) bool {
	row, col, ok := id.Position()
	return ok && row < g.Rows && col <= g.Cols
}

// IsGap reports whether the id is a non-seat cell: an aisle, a listed gap, or
// anything outside the grid.
func (g Grid) IsGap(id SeatID) bool {
	if !g.Contains(id) {
		return true
	}
	_, col, _ := id.Position()
	return g.isAisle(col) || g.Gaps.Has(id)
}

// IsSeat is the negation of IsGap.
func (g Grid) IsSeat(id SeatID) bool { return !g.IsGap(id) }

// Seats enumerates every usable seat in row-major order, low column first.
func (g Grid) Seats() []SeatID {
	out := make([]SeatID, 0, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 1; c <= g.Cols; c++ {
			id := NewSeatID(r, c)
			if !g.isAisle(c) && !g.Gaps.Has(id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// columnCapacity is the number of usable seats column col contributes.
func (g Grid) columnCapacity(col int) int {
	if g.isAisle(col) {
		return 0
	}
	n := g.Rows
	for r := 0; r < g.Rows; r++ {
		if g.Gaps.Has(NewSeatID(r, col)) {
			n--
		}
	}
	return n
}

// Capacity is the number of usable seats: cells minus gaps.
func (g Grid) Capacity() int {
	n := 0
	for c := 1; c <= g.Cols; c++ {
		n += g.columnCapacity(c)
	}
	return n
}

// ColLimit is the widest the grid may grow.  A grid configured wider than
// its limit keeps its width.
func (g Grid) ColLimit() int {
	limit := g.MaxCols
	if limit <= 0 {
		limit = DefaultMaxCols
	}
	if g.Cols > limit {
		return g.Cols
	}
	return limit
}

// MaxCapacity is the capacity of the grid grown to its column limit.
func (g Grid) MaxCapacity() int {
	w := g
	w.Cols = g.ColLimit()
	return w.Capacity()
}

// Grow adds columns one at a time until Capacity reaches target or the grid
// reaches its column limit.  Columns are never removed, so growing again
// with a smaller or equal target is a no-op.
func (g Grid) Grow(target int) Grid {
	if g.Rows <= 0 {
		return g
	}
	limit := g.ColLimit()
	capacity := g.Capacity()
	for capacity < target && g.Cols < limit {
		g.Cols++
		capacity += g.columnCapacity(g.Cols)
	}
	return g
}
