package catalogue

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks: "Évanouis" becomes "Evanouis".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lower-cases, strips accents and trims a title for comparison.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(foldAccents(s)))
}

// normalizeKey is Normalize restricted to [a-z0-9: ] with collapsed
// spaces.  Trailer keys use it.
func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range Normalize(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ':':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// sortFrench sorts in place with French collation.
func sortFrench(ss []string) {
	c := collate.New(language.French)
	sort.SliceStable(ss, func(i, j int) bool { return c.CompareString(ss[i], ss[j]) < 0 })
}
