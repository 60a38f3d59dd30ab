package config

import (
	"strconv"

	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

// SeatingConfig is the venue layout and the house holds.  Accessibility
// places are resolved to a typed restriction here, once.
type SeatingConfig struct {
	Grid  seating.Grid
	Holds seating.Holds
	// DebugTaken seats are merged into the fixed holds of every showtime.
	DebugTaken []seating.SeatID
	// DebugOverride allows the ?taken= query parameter to add holds per
	// request and exposes the raw snapshots.  Off by default outside
	// development.
	DebugOverride bool
}

// LoadSeating reads the venue from SEAT_* variables.  Defaults describe
// the main room: 16 rows of 18 columns with aisles at 4 and 15.
func LoadSeating() SeatingConfig {
	var aisles []int
	for _, a := range envList("SEAT_AISLES", "4,15") {
		if n, err := strconv.Atoi(a); err == nil && n > 0 {
			aisles = append(aisles, n)
		}
	}
	restrictions := map[seating.SeatID]seating.Restriction{}
	for _, id := range seatList("SEAT_ACCESSIBLE", "A7-A12") {
		restrictions[id] = seating.RestrictionAccessibility
	}
	grid := seating.NewGrid(
		envInt("SEAT_ROWS", 16),
		envInt("SEAT_COLS", 18),
		aisles,
		seatList("SEAT_GAPS", "A5,A6,A13,A14,P1,P18,E5"),
	)
	grid.MaxCols = envInt("SEAT_MAX_COLS", seating.DefaultMaxCols)
	return SeatingConfig{
		Grid:          grid,
		Holds:         seating.NewHolds(seatList("SEAT_FIXED_HOLDS", "G9,G10,A1"), restrictions),
		DebugTaken:    seatList("SEAT_DEBUG_TAKEN", ""),
		DebugOverride: envBool("SEAT_DEBUG_OVERRIDE", isDevelopment(getenv("APP_ENV", "dev"))),
	}
}

// isDevelopment reports whether env names a development setup.  Debug
// switches default to on there and off everywhere else.
func isDevelopment(env string) bool {
	switch env {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

// seatList reads a list of seat ids.  An item may be a same-row range such
// as A7-A12.
func seatList(k, def string) []seating.SeatID {
	var out []seating.SeatID
	for _, item := range envList(k, def) {
		out = append(out, expandRange(item)...)
	}
	return out
}

func expandRange(item string) []seating.SeatID {
	for i := 0; i < len(item); i++ {
		if item[i] != '-' {
			continue
		}
		from := seating.NormalizeSeatID(item[:i])
		to := seating.NormalizeSeatID(item[i+1:])
		r1, c1, ok1 := from.Position()
		r2, c2, ok2 := to.Position()
		if !ok1 || !ok2 || r1 != r2 || c2 < c1 {
			return nil
		}
		ids := make([]seating.SeatID, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			ids = append(ids, seating.NewSeatID(r1, c))
		}
		return ids
	}
	return []seating.SeatID{seating.NormalizeSeatID(item)}
}
