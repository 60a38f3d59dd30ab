// Package queue defines the booking events exchanged over the message broker
// and the consumer that journals them.
package queue

// BookingQueue is the durable queue booking confirmations go through.
const BookingQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a payment goes through and the
// ticket is issued.  It carries everything the journal needs so consumers
// never call back into the service.
type BookingConfirmedEvent struct {
	Reference   string   `json:"reference"`
	Browser     string   `json:"browser"`
	Film        string   `json:"film"`
	Room        string   `json:"salle"`
	Start       string   `json:"seance"`
	End         string   `json:"end,omitempty"`
	Lang        string   `json:"langue,omitempty"`
	Seats       []string `json:"seats"`
	Tickets     int      `json:"tickets"`
	TotalCents  int64    `json:"total_cents"`
	Method      string   `json:"method"`
	ConfirmedAt string   `json:"confirmed_at"`
}
