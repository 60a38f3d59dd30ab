// Package flow carries the booking between the steps of the site.  Each step
// receives the previous step's output as query parameters and hands an
// extended copy to the next one.
package flow

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/cinema-seat-booking/internal/fare"
	"github.com/iliyamo/cinema-seat-booking/internal/money"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
	"github.com/iliyamo/cinema-seat-booking/internal/session"
)

// Defaults applied when a step is reached with missing parameters.
const (
	DefaultFilm  = "Film"
	DefaultValue = "—"
	NoTime       = "—:—"
)

// Params is the inter-step schema.
type Params struct {
	Film       string           `json:"film" validate:"required"`
	Room       string           `json:"salle"`
	Lang       string           `json:"langue"`
	Start      string           `json:"seance,omitempty" validate:"omitempty,hhmm"`
	End        string           `json:"end,omitempty" validate:"omitempty,hhmm"`
	Poster     string           `json:"poster,omitempty"`
	Format     string           `json:"format,omitempty" validate:"omitempty,oneof=IMAX 4K"`
	Seats      []seating.SeatID `json:"seats" validate:"dive,seatid"`
	Fares      map[string]int   `json:"tarifs,omitempty" validate:"dive,keys,tariff,endkeys,min=0"`
	Promo      string           `json:"promo,omitempty"`
	TotalCents int64            `json:"total_cents" validate:"min=0"`
}

// Key is the session key of the showtime the params point at.
func (p Params) Key() session.Key {
	return session.Key{Film: p.Film, Room: p.Room, Start: p.Start}
}

// Tickets is the number of tickets in Fares.
func (p Params) Tickets() int {
	n := 0
	for _, q := range p.Fares {
		if q > 0 {
			n += q
		}
	}
	return n
}

// Decode reads params from a query string.  It never fails: garbage totals
// read as zero and a malformed tarifs document is dropped.
func Decode(q url.Values) Params {
	p := Params{
		Film:   orDefault(q.Get("film"), DefaultFilm),
		Room:   orDefault(q.Get("salle"), DefaultValue),
		Lang:   orDefault(q.Get("langue"), DefaultValue),
		Start:  cleanTime(q.Get("seance")),
		End:    cleanTime(firstOf(q.Get("end"), q.Get("fin"))),
		Poster: strings.TrimSpace(q.Get("poster")),
		Format: strings.ToUpper(strings.TrimSpace(q.Get("format"))),
		Seats:  seating.ParseSeatIDs(q.Get("seats")),
		Promo:  strings.ToUpper(strings.TrimSpace(q.Get("promo"))),
	}
	if raw := q.Get("tarifs"); raw != "" {
		var fares map[string]int
		if err := json.Unmarshal([]byte(raw), &fares); err == nil && len(fares) > 0 {
			p.Fares = fares
		}
	}
	if cents, err := money.ParseCents(q.Get("total")); err == nil && cents > 0 {
		p.TotalCents = cents
	}
	return p
}

// Encode is the query string handed to the next step.
func (p Params) Encode() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("film", p.Film)
	set("salle", p.Room)
	set("langue", p.Lang)
	set("seance", p.Start)
	set("end", p.End)
	set("poster", p.Poster)
	set("format", p.Format)
	set("seats", seating.JoinSeats(p.Seats, ","))
	if len(p.Fares) > 0 {
		raw, _ := json.Marshal(p.Fares)
		q.Set("tarifs", string(raw))
	}
	set("promo", p.Promo)
	q.Set("total", money.Decimal(p.TotalCents))
	return q
}

var hhmm = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// NewValidator returns a validator that knows the flow's custom tags:
// hhmm, seatid and tariff.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmm.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("seatid", func(fl validator.FieldLevel) bool {
		return seating.SeatID(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("tariff", func(fl validator.FieldLevel) bool {
		_, ok := fare.Lookup(fl.Field().String())
		return ok
	})
	return v
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// cleanTime drops the placeholders earlier steps write for unknown times.
func cleanTime(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case NoTime, "--:--", "—", "-":
		return ""
	}
	return s
}
