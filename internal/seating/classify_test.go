package seating

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Priority(t *testing.T) {
	g := NewGrid(4, 6, []int{3}, []SeatID{"D6"})
	h := NewHolds([]SeatID{"A1", "A3", "B1"}, accessible("B1", "C1"))
	s := NewState(g, h)
	s = Restore(s, h, 0, []SeatID{"C2"}, []SeatID{"D1"})

	cases := map[SeatID]Category{
		"A3": CategoryGap, // held but an aisle
		"D6": CategoryGap,
		"Z9": CategoryGap,
		"B1": CategoryRestricted, // restricted wins over fixed hold
		"C1": CategoryRestricted,
		"A1": CategoryFixedHold,
		"C2": CategoryTaken,
		"D1": CategorySelected,
		"D2": CategoryFree,
	}
	for id, want := range cases {
		assert.Equal(t, want, Classify(s, h, id), id)
	}
	assert.True(t, CategoryFree.Selectable())
	assert.True(t, CategorySelected.Selectable())
	assert.False(t, CategoryTaken.Selectable())
	assert.Equal(t, "unknown", Category(42).String())
}

func TestToggle(t *testing.T) {
	g, h := venue()
	s := NewState(g, h)

	_, err := Toggle(s, h, "A4")
	assert.ErrorIs(t, err, ErrNotASeat)
	_, err = Toggle(s, h, "Q1")
	assert.ErrorIs(t, err, ErrNotASeat)
	_, err = Toggle(s, h, "A1")
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	_, err = Toggle(s, h, "A8")
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	on, err := Toggle(s, h, "B5")
	require.NoError(t, err)
	assert.True(t, on.Selected.Has("B5"))
	assert.False(t, s.Selected.Has("B5"), "input state must not change")

	off, err := Toggle(on, h, "B5")
	require.NoError(t, err)
	assert.Equal(t, s, off)
}

func TestSummarize(t *testing.T) {
	g, h := venue()
	s := Restore(NewState(g, h), h, 0, nil, []SeatID{"B10", "A2", "B2"})
	sum := Summarize(s)

	assert.Equal(t, []SeatID{"A2", "B2", "B10"}, sum.Selected)
	assert.Equal(t, 256-9-3, sum.Free)
	assert.True(t, sum.CanReserve)
	assert.False(t, Summarize(NewState(g, h)).CanReserve)
}

func TestRender(t *testing.T) {
	g := NewGrid(2, 3, []int{2}, nil)
	h := NewHolds([]SeatID{"B3"}, nil)
	rows := Render(NewState(g, h), h)

	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[1].Label)
	assert.Equal(t, []Cell{{"B1", CategoryFree}, {"B2", CategoryGap}, {"B3", CategoryFixedHold}}, rows[1].Cells)

	raw, err := json.Marshal(rows[1].Cells[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"B3","category":"fixed_hold"}`, string(raw))
}
