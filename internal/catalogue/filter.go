package catalogue

import (
	"net/url"
	"strings"
)

// Filter is the set of catalogue filters.  Zero values match everything.
type Filter struct {
	Genre string // "Tous" or empty for all
	FourK bool
	Lang  string // "Tous", "VF" or "VOST"
	Query string // free text on title or genres
}

// FilterFromQuery reads genre, 4k, langue and q.
func FilterFromQuery(q url.Values) Filter {
	v := q.Get("4k")
	return Filter{
		Genre: q.Get("genre"),
		FourK: v == "1" || strings.EqualFold(v, "true"),
		Lang:  q.Get("langue"),
		Query: q.Get("q"),
	}
}

// Match reports whether film passes every filter.
func (f Filter) Match(film Film) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		genres := strings.ToLower(strings.Join(film.Genres, " "))
		if !strings.Contains(strings.ToLower(film.Title), q) && !strings.Contains(genres, q) {
			return false
		}
	}
	if f.Genre != "" && f.Genre != LangAll && !contains(film.Genres, f.Genre) {
		return false
	}
	if f.FourK && !film.Has4K() {
		return false
	}
	return film.HasLang(f.Lang)
}

// Apply returns the films matching f, in feed order.
func Apply(films []Film, f Filter) []Film {
	out := make([]Film, 0, len(films))
	for _, film := range films {
		if f.Match(film) {
			out = append(out, film)
		}
	}
	return out
}

// Genres lists the distinct genres in French order, preceded by "Tous".
func Genres(films []Film) []string {
	seen := map[string]bool{}
	var list []string
	for _, f := range films {
		for _, g := range f.Genres {
			if g != "" && !seen[g] {
				seen[g] = true
				list = append(list, g)
			}
		}
	}
	sortFrench(list)
	return append([]string{LangAll}, list...)
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
