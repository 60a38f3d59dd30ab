package flow

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

var fixture = catalogue.FileFeed{Path: "../catalogue/testdata/films.json"}

type failingFeed struct{}

func (failingFeed) Films(context.Context) ([]catalogue.Film, error) {
	return nil, errors.New("feed down")
}

func TestDecode_Defaults(t *testing.T) {
	p := Decode(url.Values{})
	assert.Equal(t, DefaultFilm, p.Film)
	assert.Equal(t, DefaultValue, p.Room)
	assert.Equal(t, DefaultValue, p.Lang)
	assert.Empty(t, p.Start)
	assert.Equal(t, int64(0), p.TotalCents)
	assert.Empty(t, p.Seats)
}

func TestDecode_FullQuery(t *testing.T) {
	q, err := url.ParseQuery("film=Les+%C3%89vanouis&salle=3&langue=VF&seance=14:00&fin=16:08" +
		"&seats=b2,a1,B2&tarifs=%7B%22MATIN%22:2%7D&promo=cinepass&total=17,82&format=4k")
	require.NoError(t, err)
	p := Decode(q)

	assert.Equal(t, "Les Évanouis", p.Film)
	assert.Equal(t, "16:08", p.End, "fin is an alias of end")
	assert.Equal(t, []seating.SeatID{"B2", "A1"}, p.Seats)
	assert.Equal(t, map[string]int{"MATIN": 2}, p.Fares)
	assert.Equal(t, 2, p.Tickets())
	assert.Equal(t, "CINEPASS", p.Promo)
	assert.Equal(t, int64(1782), p.TotalCents)
	assert.Equal(t, "4K", p.Format)
	assert.Equal(t, "Les Évanouis|3|14:00", p.Key().String())
}

func TestDecode_GarbageIsLenient(t *testing.T) {
	p := Decode(url.Values{"total": {"abc"}, "tarifs": {"{nope"}, "seance": {"--:--"}, "end": {"—:—"}})
	assert.Equal(t, int64(0), p.TotalCents)
	assert.Nil(t, p.Fares)
	assert.Empty(t, p.Start)
	assert.Empty(t, p.End)
}

func TestEncode_RoundTrip(t *testing.T) {
	in := Params{
		Film: "Wishy", Room: "1", Lang: "VF", Start: "10:30", End: "12:05",
		Seats: []seating.SeatID{"C3", "C4"}, Fares: map[string]int{"U14": 2}, TotalCents: 1300,
	}
	q := in.Encode()
	assert.Equal(t, "C3,C4", q.Get("seats"))
	assert.Equal(t, "13.00", q.Get("total"))
	assert.Equal(t, in, Decode(q))
}

func TestValidator(t *testing.T) {
	v := NewValidator()
	ok := Params{Film: "F", Start: "9:05", Seats: []seating.SeatID{"A1"}, Fares: map[string]int{"MATIN": 1}}
	require.NoError(t, v.Struct(ok))

	bad := []Params{
		{Film: ""},
		{Film: "F", Start: "25:00"},
		{Film: "F", End: "12h30"},
		{Film: "F", Seats: []seating.SeatID{"A0"}},
		{Film: "F", Fares: map[string]int{"VIP": 1}},
		{Film: "F", Fares: map[string]int{"U14": -1}},
		{Film: "F", TotalCents: -5},
		{Film: "F", Format: "3D"},
	}
	for i, p := range bad {
		assert.Error(t, v.Struct(p), "case %d", i)
	}
}

func TestHydrate_FromParams(t *testing.T) {
	p := Params{Film: "Les Évanouis", Room: "3", Lang: "VF", Start: "14:00", End: "16:10",
		Poster: "https://cdn.example/img/evanouis.jpg?v=2", Format: "IMAX"}
	h := Hydrate(context.Background(), p, failingFeed{}, zap.NewNop())

	assert.Equal(t, "evanouis.jpg", h.Poster)
	assert.Equal(t, "Fin prévue à 16:10", h.EndLabel)
	assert.False(t, h.Degraded)
}

func TestHydrate_FromFeed(t *testing.T) {
	p := Params{Film: "les evanouis", Room: "3", Lang: "VOST", Start: "20:15"}
	h := Hydrate(context.Background(), p, fixture, zap.NewNop())

	assert.Equal(t, PlaceholderPoster, h.Poster)
	assert.Equal(t, "22:23", h.End)
	assert.Equal(t, "Fin prévue à 22:23", h.EndLabel)
	assert.Equal(t, "IMAX", h.Format)
}

func TestHydrate_FeedDown(t *testing.T) {
	h := Hydrate(context.Background(), Decode(url.Values{"film": {"X"}}), failingFeed{}, zap.NewNop())
	assert.True(t, h.Degraded)
	assert.Equal(t, "Fin prévue —:—", h.EndLabel)
	assert.Equal(t, NoTime, h.Start)
}
