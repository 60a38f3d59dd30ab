package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

func TestBuild(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	p := flow.Params{Film: "Wishy", Room: "1", Lang: "VF", Start: "10:30",
		Seats: []seating.SeatID{"B10", "A2", "B2"}, TotalCents: 1980}
	tk := Build(p, "ref-1", now)

	assert.Equal(t, "ref-1", tk.Reference)
	assert.Equal(t, "Salle 1", tk.RoomLabel)
	assert.Equal(t, "A2, B2, B10", tk.SeatsLabel)
	assert.Equal(t, "19,80 €", tk.Total)
	assert.Equal(t, flow.NoTime, tk.End)
	assert.Equal(t, []seating.SeatID{"B10", "A2", "B2"}, p.Seats, "params untouched")
}

func TestBuild_Defaults(t *testing.T) {
	tk := Build(flow.Params{Film: flow.DefaultFilm, Room: flow.DefaultValue}, "", time.Now())
	assert.NotEmpty(t, tk.Reference)
	assert.Equal(t, flow.NoTime, tk.Start)
	assert.Equal(t, flow.DefaultValue, tk.SeatsLabel)
	assert.Equal(t, "0,00 €", tk.Total)
	assert.NotNil(t, tk.Seats)
}

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	tk := Build(flow.Params{Film: "F", Room: "3", Start: "14:00", Seats: []seating.SeatID{"C4"}, TotalCents: 990}, "r", time.Now())

	token, err := s.Sign(tk)
	require.NoError(t, err)
	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "r", claims.Subject)
	assert.Equal(t, []string{"C4"}, claims.Seats)
	assert.Equal(t, int64(990), claims.TotalCents)

	_, err = NewSigner("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_Expired(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	tk := Build(flow.Params{Film: "F"}, "r", time.Now().Add(-time.Hour))
	token, err := s.Sign(tk)
	require.NoError(t, err)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
