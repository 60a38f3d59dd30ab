// Package money formats and parses euro amounts.  Amounts are carried as
// integer cents everywhere; only the edges deal with decimal strings.
package money

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.French)

// FormatEUR renders cents the fr-FR way: "9,90 €".  The space before the
// sign is a no-break space.
func FormatEUR(cents int64) string {
	return printer.Sprintf("%.2f", float64(cents)/100) + " €"
}

// Decimal renders cents as a plain "9.90" for query strings.
func Decimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	frac := strconv.FormatInt(cents%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + frac
}

// ParseCents reads "19.8", "19,80" or "19" into cents.  An empty string is
// zero.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if f < 0 {
		return -int64(-f*100 + 0.5), nil
	}
	return int64(f*100 + 0.5), nil
}
