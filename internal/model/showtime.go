package model

import "database/sql"

// Showtime is one row of the showtimes table.  Start and End are "HH:MM"
// strings as the feed carries them; Remaining is the declared count of free
// seats, NULL when the source does not know it.
type Showtime struct {
	FilmID     uint64        // showtimes.film_id
	Start      string        // showtimes.horaire
	End        string        // showtimes.fin
	Room       string        // showtimes.salle
	IMAX       bool          // showtimes.imax
	FourK      bool          // showtimes.fourk
	VF         bool          // showtimes.vf
	VOST       bool          // showtimes.vost
	Accessible bool          // showtimes.handicap
	Remaining  sql.NullInt64 // showtimes.libres (nullable)
}
