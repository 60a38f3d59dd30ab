// Package catalogue reads the film and showtime feed and answers the
// questions the booking flow asks of it: which films match the filters,
// which showtime a visitor picked and how many seats it declares free.
// The feed is read-only; nothing here mutates it.
package catalogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/seating"
)

var (
	ErrFilmNotFound     = errors.New("film not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
)

// Film is one entry of the feed.  JSON names follow the published feed.
type Film struct {
	Title           string     `json:"titre"`
	Genres          []string   `json:"genre"`
	DurationMinutes int        `json:"durée_minutes"`
	MinAge          *int       `json:"âge_minimum,omitempty"`
	ViolenceWarning bool       `json:"avertissement_violence,omitempty"`
	Thrill          Flag       `json:"mention_frisson,omitempty"`
	New             bool       `json:"nouveau"`
	Poster          string     `json:"image"`
	Showtimes       []Showtime `json:"séances"`
}

// UnmarshalJSON accepts "seances" as an alias of "séances".
func (f *Film) UnmarshalJSON(b []byte) error {
	type plain Film
	var aux struct {
		plain
		Seances []Showtime `json:"seances"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*f = Film(aux.plain)
	if len(f.Showtimes) == 0 && len(aux.Seances) > 0 {
		f.Showtimes = aux.Seances
	}
	return nil
}

// Has4K reports whether any showtime is in 4K.
func (f Film) Has4K() bool {
	for _, s := range f.Showtimes {
		if s.FourK {
			return true
		}
	}
	return false
}

// HasLang reports whether any showtime matches lang ("VF" or "VOST").
// "Tous" and unknown values match everything.
func (f Film) HasLang(lang string) bool {
	switch lang {
	case LangVF:
		for _, s := range f.Showtimes {
			if s.VF {
				return true
			}
		}
		return false
	case LangVOST:
		for _, s := range f.Showtimes {
			if s.VOST {
				return true
			}
		}
		return false
	}
	return true
}

// Badges lists the labels shown above the title.
func (f Film) Badges() []string {
	var out []string
	if f.New {
		out = append(out, "Nouveau")
	}
	if f.Thrill {
		out = append(out, "Frisson")
	}
	if f.MinAge != nil {
		out = append(out, strconv.Itoa(*f.MinAge)+"+")
	}
	if f.ViolenceWarning {
		out = append(out, "Violence")
	}
	return out
}

// Language and format labels.
const (
	LangAll  = "Tous"
	LangVF   = "VF"
	LangVOST = "VOST"
	NoValue  = "—"
)

// Showtime is one screening of a film.
type Showtime struct {
	Start      string          `json:"horaire"`
	End        string          `json:"fin"`
	Room       Room            `json:"salle"`
	IMAX       bool            `json:"imax"`
	FourK      bool            `json:"4k"`
	VF         bool            `json:"vf"`
	VOST       bool            `json:"vost"`
	Accessible bool            `json:"handicap"`
	Remaining  json.RawMessage `json:"libres,omitempty"`
}

// LangLabel is VF, else VOST, else a dash.
func (s Showtime) LangLabel() string {
	switch {
	case s.VF:
		return LangVF
	case s.VOST:
		return LangVOST
	}
	return NoValue
}

// FormatLabel is IMAX, else 4K, else empty.
func (s Showtime) FormatLabel() string {
	switch {
	case s.IMAX:
		return "IMAX"
	case s.FourK:
		return "4K"
	}
	return ""
}

// Declared parses the remaining-seats figure.  Integers and integer strings
// are valid when non-negative; anything else (absent, null, fractional,
// text) is not.
func (s Showtime) Declared() seating.Declared {
	raw := bytes.TrimSpace(s.Remaining)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return seating.Declared{}
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		raw = []byte(strings.TrimSpace(text))
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 {
		return seating.Declared{}
	}
	return seating.DeclaredCount(int(f))
}

// Room is a room identifier.  The feed writes it as a number or a string.
type Room string

func (r *Room) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = Room(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = Room(n.String())
	return nil
}

// Flag is a truthy feed value: true, a non-empty string or a non-zero number.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*f = Flag(t)
	case string:
		*f = Flag(strings.TrimSpace(t) != "")
	case float64:
		*f = Flag(t != 0)
	default:
		*f = false
	}
	return nil
}

// FormatDuration renders minutes as "1h05".  Negative values render as 0h00.
func FormatDuration(mins int) string {
	if mins < 0 {
		mins = 0
	}
	return strconv.Itoa(mins/60) + "h" + leftPad2(mins%60)
}

func leftPad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
