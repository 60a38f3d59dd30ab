package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowLabelRoundTrip(t *testing.T) {
	cases := map[int]string{0: "A", 15: "P", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for idx, label := range cases {
		assert.Equal(t, label, rowLabel(idx))
		got, ok := rowIndex(label)
		assert.True(t, ok)
		assert.Equal(t, idx, got)
	}
	assert.Equal(t, "", rowLabel(-1))
	_, ok := rowIndex("")
	assert.False(t, ok)
}

func TestSeatID_Position(t *testing.T) {
	row, col, ok := SeatID("P18").Position()
	assert.True(t, ok)
	assert.Equal(t, 15, row)
	assert.Equal(t, 18, col)

	for _, bad := range []SeatID{"", "A", "12", "A0", "A01", "a1", "A1B", "A-1"} {
		assert.False(t, bad.Valid(), "%q should be invalid", bad)
	}
}

func TestParseSeatIDs(t *testing.T) {
	assert.Equal(t, []SeatID{"A1", "B3", "C4"}, ParseSeatIDs(" a1, b3,,C4 ,A1"))
	assert.Empty(t, ParseSeatIDs(""))
}

func TestSortSeats_NumericColumns(t *testing.T) {
	ids := []SeatID{"B10", "junk", "A10", "B2", "A2", "AA1"}
	SortSeats(ids)
	assert.Equal(t, []SeatID{"A2", "A10", "B2", "B10", "AA1", "junk"}, ids)
	assert.Equal(t, "A2, A10", JoinSeats(ids[:2], ", "))
}

func TestSeatSet_CloneIsIndependent(t *testing.T) {
	var nilSet SeatSet
	c := nilSet.Clone()
	c.Add("A1")
	assert.True(t, c.Has("A1"))

	s := NewSeatSet("A1", "B2")
	cp := s.Clone()
	cp.Delete("A1")
	assert.True(t, s.Has("A1"))
	assert.Equal(t, 1, cp.Len())
}

func TestGrid_GapsAndCapacity(t *testing.T) {
	g := NewGrid(16, 18, []int{4, 15}, []SeatID{"A5", "A6", "P1", "P18", "E5", "bogus"})
	assert.Equal(t, 256-5, g.Capacity())
	assert.Len(t, g.Seats(), g.Capacity())
	assert.True(t, g.IsGap("A4"))
	assert.True(t, g.IsGap("E5"))
	assert.True(t, g.IsGap("Q1"))
	assert.True(t, g.IsGap("A19"))
	assert.True(t, g.IsSeat("A7"))
}
