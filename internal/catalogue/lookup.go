package catalogue

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FindFilm matches by normalised title, then by substring of the
// normalised title ("Titre" finds "Titre (2025)").
func FindFilm(films []Film, title string) (Film, error) {
	want := Normalize(title)
	for _, f := range films {
		if Normalize(f.Title) == want {
			return f, nil
		}
	}
	if want != "" {
		for _, f := range films {
			if strings.Contains(Normalize(f.Title), want) {
				return f, nil
			}
		}
	}
	return Film{}, fmt.Errorf("%q: %w", title, ErrFilmNotFound)
}

// FindShowtime resolves the showtime a visitor picked: exact start and
// room, else the first showtime in that room, else the film's first one.
func FindShowtime(films []Film, title, room, start string) (Film, Showtime, error) {
	f, err := FindFilm(films, title)
	if err != nil {
		return Film{}, Showtime{}, err
	}
	if len(f.Showtimes) == 0 {
		return f, Showtime{}, fmt.Errorf("%q: %w", title, ErrShowtimeNotFound)
	}
	start = strings.TrimSpace(start)
	for _, s := range f.Showtimes {
		if strings.TrimSpace(s.Start) == start && string(s.Room) == room {
			return f, s, nil
		}
	}
	for _, s := range f.Showtimes {
		if string(s.Room) == room {
			return f, s, nil
		}
	}
	return f, f.Showtimes[0], nil
}

// Trailers maps normalised titles to embeddable trailer URLs.
type Trailers map[string]string

// DefaultTrailers are used when no trailer file is configured.
func DefaultTrailers() Trailers {
	return Trailers{
		"evanouis":          "https://www.youtube.com/embed/eDBLToWrnBU",
		"le monde de wishy": "https://www.youtube.com/embed/wiWYHjlhTKc",
	}
}

// LoadTrailers reads a JSON object of title -> URL.  Keys are normalised.
func LoadTrailers(path string) (Trailers, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trailers: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode trailers: %w", err)
	}
	out := make(Trailers, len(m))
	for k, v := range m {
		out[normalizeKey(k)] = v
	}
	return out, nil
}

// Lookup finds the trailer of title, falling back to any key contained in
// the normalised title ("evanouis" matches "Les Évanouis (2025)").  The
// shortest matching key wins so the result does not depend on map order.
func (t Trailers) Lookup(title string) (string, bool) {
	key := normalizeKey(title)
	if u, ok := t[key]; ok {
		return u, true
	}
	best := ""
	for k := range t {
		if k != "" && strings.Contains(key, k) && (best == "" || len(k) < len(best) || (len(k) == len(best) && k < best)) {
			best = k
		}
	}
	if best == "" {
		return "", false
	}
	return t[best], true
}

// EmbedURL adds the autoplay parameters of the trailer player.
func EmbedURL(u string) string {
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "autoplay=1&rel=0"
}
