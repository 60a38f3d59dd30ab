package seating

// Category is the state of a single cell, in classification priority order.
type Category uint8

const (
	CategoryGap        Category = iota // not a seat: aisle, wall or outside the grid
	CategoryRestricted                 // accessibility-restricted, never available
	CategoryFixedHold                  // permanently held by house rule
	CategoryTaken                      // taken for this showtime
	CategorySelected                   // claimed by the current visitor
	CategoryFree
)

var categoryNames = [...]string{
	CategoryGap:        "gap",
	CategoryRestricted: "restricted",
	CategoryFixedHold:  "fixed_hold",
	CategoryTaken:      "taken",
	CategorySelected:   "selected",
	CategoryFree:       "free",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// MarshalText lets categories travel as their names in JSON.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Selectable reports whether a visitor may click a cell of this category.
func (c Category) Selectable() bool {
	return c == CategoryFree || c == CategorySelected
}

// Classify resolves the category of id.  Gaps are checked first because a
// gap is never a seat whatever else claims it.
func Classify(s State, h Holds, id SeatID) Category {
	switch {
	case s.Grid.IsGap(id):
		return CategoryGap
	case h.Restricted.Has(id):
		return CategoryRestricted
	case h.Fixed.Has(id):
		return CategoryFixedHold
	case s.Taken.Has(id):
		return CategoryTaken
	case s.Selected.Has(id):
		return CategorySelected
	}
	return CategoryFree
}

// Cell is one rendered position of the map.
type Cell struct {
	ID       SeatID   `json:"id"`
	Category Category `json:"category"`
}

// Row is one rendered row of the map.
type Row struct {
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// Render lays out every cell of the grid with its category, row by row.
func Render(s State, h Holds) []Row {
	rows := make([]Row, 0, s.Grid.Rows)
	for r := 0; r < s.Grid.Rows; r++ {
		row := Row{Label: rowLabel(r), Cells: make([]Cell, 0, s.Grid.Cols)}
		for c := 1; c <= s.Grid.Cols; c++ {
			id := NewSeatID(r, c)
			row.Cells = append(row.Cells, Cell{ID: id, Category: Classify(s, h, id)})
		}
		rows = append(rows, row)
	}
	return rows
}
