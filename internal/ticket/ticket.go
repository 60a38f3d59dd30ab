// Package ticket builds the e-ticket shown at the end of the flow and signs
// the token encoded in its QR code.
package ticket

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/money"
	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

// Ticket is the rendered e-ticket.
type Ticket struct {
	Reference  string           `json:"reference"`
	Film       string           `json:"film"`
	Room       string           `json:"salle"`
	RoomLabel  string           `json:"salle_label"`
	Start      string           `json:"seance"`
	End        string           `json:"end"`
	Lang       string           `json:"langue"`
	Format     string           `json:"format,omitempty"`
	Poster     string           `json:"poster,omitempty"`
	Seats      []seating.SeatID `json:"seats"`
	SeatsLabel string           `json:"seats_label"`
	TotalCents int64            `json:"total_cents"`
	Total      string           `json:"total"`
	IssuedAt   time.Time        `json:"issued_at"`
	Token      string           `json:"token,omitempty"`
}

// Build lays out the ticket of p.  ref is kept when the browser already
// holds a reference, a new one is drawn otherwise.
func Build(p flow.Params, ref string, now time.Time) Ticket {
	if ref == "" {
		ref = uuid.NewString()
	}
	seats := append([]seating.SeatID(nil), p.Seats...)
	seating.SortSeats(seats)
	label := seating.JoinSeats(seats, ", ")
	if label == "" {
		label = flow.DefaultValue
	}
	t := Ticket{
		Reference:  ref,
		Film:       p.Film,
		Room:       p.Room,
		RoomLabel:  "Salle " + p.Room,
		Start:      orTime(p.Start),
		End:        orTime(p.End),
		Lang:       p.Lang,
		Format:     p.Format,
		Poster:     p.Poster,
		Seats:      seats,
		SeatsLabel: label,
		TotalCents: p.TotalCents,
		Total:      money.FormatEUR(p.TotalCents),
		IssuedAt:   now.UTC(),
	}
	if t.Seats == nil {
		t.Seats = []seating.SeatID{}
	}
	return t
}

func orTime(s string) string {
	if s == "" {
		return flow.NoTime
	}
	return s
}
