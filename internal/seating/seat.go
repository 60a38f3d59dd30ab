// Package seating holds the seat-map engine of a showtime: the room grid,
// the structural holds of the venue, the availability state of one
// showtime and the reconciliation of that state against the remaining-seats
// count declared by the catalogue feed.  Every function in this package is
// pure; persistence lives in the session package.
package seating

import (
	"sort"
	"strconv"
	"strings"
)

// SeatID identifies a seat by row label and 1-based column, e.g. "A1" or "P18".
type SeatID string

// NewSeatID builds the id of the seat at the zero-based row and 1-based column.
func NewSeatID(row, col int) SeatID {
	return SeatID(rowLabel(row) + strconv.Itoa(col))
}

// NormalizeSeatID trims and upper-cases raw user input.
func NormalizeSeatID(raw string) SeatID {
	return SeatID(strings.ToUpper(strings.TrimSpace(raw)))
}

// ParseSeatIDs splits a comma separated list ("A1, b3,,C4") into normalized
// ids, dropping empty entries and duplicates while keeping first-seen order.
func ParseSeatIDs(raw string) []SeatID {
	out := []SeatID{}
	seen := map[SeatID]bool{}
	for _, part := range strings.Split(raw, ",") {
		id := NormalizeSeatID(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Position returns the zero-based row index and 1-based column of the id.
// ok is false when the id is not of the canonical form <letters><digits>
// (no leading zero in the column).
func (id SeatID) Position() (row, col int, ok bool) {
	s := string(id)
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) || s[i] == '0' {
		return -1, -1, false
	}
	row, ok = rowIndex(s[:i])
	if !ok {
		return -1, -1, false
	}
	col, err := strconv.Atoi(s[i:])
	if err != nil || col < 1 {
		return -1, -1, false
	}
	return row, col, true
}

// Valid reports whether the id parses as a seat position.
func (id SeatID) Valid() bool {
	_, _, ok := id.Position()
	return ok
}

// Less orders seats by row then numeric column, so "A2" sorts before "A10".
// Unparseable ids sort last, lexically.
func Less(a, b SeatID) bool {
	ra, ca, okA := a.Position()
	rb, cb, okB := b.Position()
	switch {
	case okA && okB:
		if ra != rb {
			return ra < rb
		}
		return ca < cb
	case okA != okB:
		return okA
	}
	return a < b
}

// SortSeats sorts ids in place in row-then-column order.
func SortSeats(ids []SeatID) {
	sort.Slice(ids, func(i, j int) bool { return Less(ids[i], ids[j]) })
}

// JoinSeats renders ids with the given separator.
func JoinSeats(ids []SeatID, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, sep)
}

// rowLabel converts a zero-based index to an alphabetical row label like A, B, AA.
func rowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []byte{}
	for {
		res = append(res, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// rowIndex converts a row label like A or AA into its zero-based index.
func rowIndex(label string) (int, bool) {
	if label == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}

// SeatSet is an unordered set of seat ids.
type SeatSet map[SeatID]struct{}

// NewSeatSet builds a set from ids.
func NewSeatSet(ids ...SeatID) SeatSet {
	s := make(SeatSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SeatSet) Has(id SeatID) bool {
	_, ok := s[id]
	return ok
}

func (s SeatSet) Add(id SeatID)    { s[id] = struct{}{} }
func (s SeatSet) Delete(id SeatID) { delete(s, id) }
func (s SeatSet) Len() int         { return len(s) }

// Clone returns an independent copy; a nil set clones to an empty one.
func (s SeatSet) Clone() SeatSet {
	out := make(SeatSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the members in row-then-column order.
func (s SeatSet) Sorted() []SeatID {
	out := make([]SeatID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	SortSeats(out)
	return out
}
