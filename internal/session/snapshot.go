// Package session keeps the in-progress seat selection of one browser for one
// showtime in sync with the key-value store.  The seat engine itself is pure
// (package seating); this package owns the read-restore-reconcile-persist
// cycle around it.
package session

import (
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

// Store keys shared by every step of the flow.  Each holds one JSON document
// per browser namespace, itself a map from Key.String() to a per-showtime
// entry.
const (
	BookingKey   = "pathe_reservation"
	SnackCartKey = "pathe_cart_snacks"
)

// SnapshotVersion is the schema version written with every snapshot.
const SnapshotVersion = 1

// Key scopes persisted state to one showtime instance.
type Key struct {
	Film  string `json:"film"`
	Room  string `json:"salle"`
	Start string `json:"seance"`
}

func (k Key) String() string {
	return strings.Join([]string{k.Film, k.Room, k.Start}, "|")
}

// FareSelection is the fare step's output kept with the seat snapshot so
// that coming back to the fare step restores the quantities.
type FareSelection struct {
	Quantities map[string]int `json:"quantities"`
	Promo      string         `json:"promo,omitempty"`
	TotalCents int64          `json:"total_cents"`
	Tickets    int            `json:"tickets"`
}

// Snapshot is the persisted state of one showtime for one browser.
type Snapshot struct {
	Version  int                       `json:"v"`
	Film     string                    `json:"film"`
	Room     string                    `json:"salle"`
	Start    string                    `json:"seance"`
	Lang     string                    `json:"langue,omitempty"`
	Selected []seating.SeatID          `json:"selected"`
	Taken    []seating.SeatID          `json:"taken"`
	Custom   map[seating.SeatID]string `json:"custom,omitempty"`
	Cols     int                       `json:"cols,omitempty"`
	Fares    *FareSelection            `json:"tarifs,omitempty"`
}

// bookings is the document stored under BookingKey.
type bookings map[string]Snapshot

// compatible reports whether the snapshot can be restored by this version.
// Snapshots written before versioning carry no version and are read as v1.
func (s Snapshot) compatible() bool {
	return s.Version == 0 || s.Version == SnapshotVersion
}
